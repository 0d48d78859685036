package internship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/psqlbuilder"
)

const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

var internshipColumns = []string{
	"i.id",
	"i.company_id",
	"i.industry_id",
	"c.name",
	"i.title",
	"i.description",
	"i.location",
	"i.duration",
	"i.stipend",
	"i.deadline",
	"i.is_active",
	"i.created_at",
	"i.updated_at",
}

// Repository репозиторий стажировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория стажировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает стажировку. IndustryID должен быть заполнен из компании
func (r *Repository) Create(ctx context.Context, in *domain.Internship) (*domain.Internship, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("internships").
		Columns("company_id", "industry_id", "title", "description", "location", "duration", "stipend", "deadline", "is_active").
		Values(in.CompanyID, in.IndustryID, in.Title, in.Description, in.Location, in.Duration, in.Stipend, dateValue(in), in.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidCompany
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return in, nil
}

// Update обновляет стажировку
func (r *Repository) Update(ctx context.Context, in *domain.Internship) (*domain.Internship, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("internships").
		Set("company_id", in.CompanyID).
		Set("industry_id", in.IndustryID).
		Set("title", in.Title).
		Set("description", in.Description).
		Set("location", in.Location).
		Set("duration", in.Duration).
		Set("stipend", in.Stipend).
		Set("deadline", dateValue(in)).
		Set("is_active", in.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": in.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInternshipNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidCompany
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return in, nil
}

// SyncIndustry переносит стажировки компании в новую отрасль
func (r *Repository) SyncIndustry(ctx context.Context, companyID, industryID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("internships").
		Set("industry_id", industryID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.NotEq{"industry_id": industryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SyncIndustry - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SyncIndustry - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает стажировку по ID вместе с названием компании
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Internship, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	in, err := scanInternship(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInternshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan internship: %w", ErrScanRow, err)
	}

	return in, nil
}

// List получает стажировки по фильтру с пагинацией
// Поиск Query выполняется по названию и описанию (ILIKE)
func (r *Repository) List(ctx context.Context, filter domain.InternshipsFilter) ([]*domain.Internship, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(baseSelect(), filter).
		OrderBy("i.created_at DESC", "i.id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	internships := make([]*domain.Internship, 0)
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		internships = append(internships, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return internships, nil
}

// Count считает стажировки по фильтру без пагинации
func (r *Repository) Count(ctx context.Context, filter domain.InternshipsFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("internships i").
		Join("companies c ON c.id = i.company_id")

	query, args, err := applyFilter(selectBuilder, filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %w", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}

	return total, nil
}

// Delete удаляет стажировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("internships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isReferenceViolation(err) {
			return ErrInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInternshipNotFound
	}

	return nil
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(internshipColumns...).
		From("internships i").
		Join("companies c ON c.id = i.company_id")
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.InternshipsFilter) squirrel.SelectBuilder {
	if filter.IndustryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"i.industry_id": *filter.IndustryID})
	}
	if filter.CompanyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"i.company_id": *filter.CompanyID})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"i.title": pattern},
			squirrel.ILike{"i.description": pattern},
		})
	}
	if filter.OpenOnly {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"i.is_active": true}).
			Where(squirrel.Or{
				squirrel.Eq{"i.deadline": nil},
				squirrel.GtOrEq{"i.deadline": filter.Today.Format(domain.DateFormat)},
			})
	}
	return selectBuilder
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func dateValue(in *domain.Internship) interface{} {
	if in.Deadline == nil {
		return nil
	}
	return in.Deadline.Format(domain.DateFormat)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInternship(row rowScanner) (*domain.Internship, error) {
	var in domain.Internship
	err := row.Scan(
		&in.ID,
		&in.CompanyID,
		&in.IndustryID,
		&in.CompanyName,
		&in.Title,
		&in.Description,
		&in.Location,
		&in.Duration,
		&in.Stipend,
		&in.Deadline,
		&in.IsActive,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// isReferenceViolation заявки не дают удалить стажировку (RESTRICT или CHECK на bookings)
func isReferenceViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && (pqErr.Code == pqForeignKeyViolation || pqErr.Code == pqCheckViolation)
}
