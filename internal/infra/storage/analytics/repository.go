package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/psqlbuilder"
)

// Repository агрегирующие запросы для дашборда администратора
// Все методы учитывают ограничение по отраслям (IndustryIDs == nil - без ограничения)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аналитики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountByStatus количество бронирований по статусам за период
func (r *Repository) CountByStatus(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error) {
	return r.countBy(ctx, "CountByStatus", squirrel.Expr("b.status AS key"), filter)
}

// CountByType количество бронирований по типам за период
func (r *Repository) CountByType(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error) {
	return r.countBy(ctx, "CountByType", squirrel.Expr("b.type AS key"), filter)
}

// CountByMonth количество бронирований по месяцам (YYYY-MM) за период
// Месяц определяется в часовом поясе фильтра, а не сессии БД
func (r *Repository) CountByMonth(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error) {
	key := squirrel.Expr("to_char(b.created_at AT TIME ZONE ?, 'YYYY-MM') AS key", filter.TimezoneName())
	return r.countBy(ctx, "CountByMonth", key, filter)
}

func (r *Repository) countBy(ctx context.Context, op string, key squirrel.Sqlizer, filter domain.AnalyticsFilter) ([]domain.CountByKey, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingsInRange(psqlbuilder.Select().Column(key).Column("COUNT(*)"), filter).
		GroupBy("key").
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.CountByKey, 0)
	for rows.Next() {
		var item domain.CountByKey
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

// CountByIndustry количество бронирований по отраслям за период
func (r *Repository) CountByIndustry(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.IndustryCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("b.industry_id", "i.name", "COUNT(*)")
	query, args, err := bookingsInRange(selectBuilder, filter).
		Join("industries i ON i.id = b.industry_id").
		GroupBy("b.industry_id", "i.name").
		OrderBy("COUNT(*) DESC", "i.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByIndustry - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByIndustry - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.IndustryCount, 0)
	for rows.Next() {
		var item domain.IndustryCount
		if err := rows.Scan(&item.IndustryID, &item.IndustryName, &item.Count); err != nil {
			return nil, fmt.Errorf("%w: CountByIndustry - scan row: %w", ErrScanRow, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByIndustry - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Revenue сумма оплаченных бронирований по дате оплаты
func (r *Repository) Revenue(ctx context.Context, filter domain.AnalyticsFilter) (int64, error) {
	selectBuilder := psqlbuilder.Select("COALESCE(SUM(b.amount), 0)").
		From("bookings b").
		Where(squirrel.Eq{"b.status": domain.StatusPaid}).
		Where(squirrel.GtOrEq{"b.paid_at": filter.From}).
		Where(squirrel.Lt{"b.paid_at": filter.To})

	return r.scalar(ctx, "Revenue", scoped(selectBuilder, "b.industry_id", filter.IndustryIDs))
}

// CountCompanies количество компаний
func (r *Repository) CountCompanies(ctx context.Context, industryIDs []int64) (int64, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").From("companies")
	return r.scalar(ctx, "CountCompanies", scoped(selectBuilder, "industry_id", industryIDs))
}

// CountOpenInternships количество открытых стажировок на дату today
func (r *Repository) CountOpenInternships(ctx context.Context, industryIDs []int64, today time.Time) (int64, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("internships").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"deadline": nil},
			squirrel.GtOrEq{"deadline": today.Format(domain.DateFormat)},
		})
	return r.scalar(ctx, "CountOpenInternships", scoped(selectBuilder, "industry_id", industryIDs))
}

// CountActiveMentors количество активных менторов
func (r *Repository) CountActiveMentors(ctx context.Context, industryIDs []int64) (int64, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("mentors").
		Where(squirrel.Eq{"is_active": true})
	return r.scalar(ctx, "CountActiveMentors", scoped(selectBuilder, "industry_id", industryIDs))
}

// CountStudents количество студентов
// Для ограниченного администратора считаются студенты, имеющие бронирования в его отраслях
func (r *Repository) CountStudents(ctx context.Context, industryIDs []int64) (int64, error) {
	if industryIDs == nil {
		selectBuilder := psqlbuilder.Select("COUNT(*)").
			From("users").
			Where(squirrel.Eq{"role": domain.RoleStudent})
		return r.scalar(ctx, "CountStudents", selectBuilder)
	}

	selectBuilder := psqlbuilder.Select("COUNT(DISTINCT user_id)").From("bookings")
	return r.scalar(ctx, "CountStudents", scoped(selectBuilder, "industry_id", industryIDs))
}

func (r *Repository) scalar(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var value int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: %s - scan value: %w", ErrScanRow, op, err)
	}

	return value, nil
}

func bookingsInRange(selectBuilder squirrel.SelectBuilder, filter domain.AnalyticsFilter) squirrel.SelectBuilder {
	selectBuilder = selectBuilder.
		From("bookings b").
		Where(squirrel.GtOrEq{"b.created_at": filter.From}).
		Where(squirrel.Lt{"b.created_at": filter.To})
	return scoped(selectBuilder, "b.industry_id", filter.IndustryIDs)
}

// scoped ограничивает выборку отраслями; пустой не-nil слайс дает пустой результат
func scoped(selectBuilder squirrel.SelectBuilder, column string, industryIDs []int64) squirrel.SelectBuilder {
	if industryIDs == nil {
		return selectBuilder
	}
	return selectBuilder.Where(squirrel.Expr(column+" = ANY(?)", pq.Array(industryIDs)))
}
