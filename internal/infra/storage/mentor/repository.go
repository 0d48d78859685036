package mentor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/psqlbuilder"
)

const pqForeignKeyViolation = "23503"

var mentorColumns = []string{
	"id",
	"industry_id",
	"full_name",
	"email",
	"title",
	"company",
	"bio",
	"photo_key",
	"session_price",
	"session_duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория менторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ментора
func (r *Repository) Create(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mentors").
		Columns("industry_id", "full_name", "email", "title", "company", "bio", "photo_key",
			"session_price", "session_duration_minutes", "is_active").
		Values(m.IndustryID, m.FullName, m.Email, m.Title, m.Company, m.Bio, m.PhotoKey,
			m.SessionPrice, m.SessionDurationMinutes, m.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidIndustry
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return m, nil
}

// Update обновляет ментора
func (r *Repository) Update(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentors").
		Set("industry_id", m.IndustryID).
		Set("full_name", m.FullName).
		Set("email", m.Email).
		Set("title", m.Title).
		Set("company", m.Company).
		Set("bio", m.Bio).
		Set("photo_key", m.PhotoKey).
		Set("session_price", m.SessionPrice).
		Set("session_duration_minutes", m.SessionDurationMinutes).
		Set("is_active", m.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidIndustry
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return m, nil
}

// GetByID получает ментора по ID
// Внутри транзакции строка блокируется FOR SHARE, чтобы цена и длительность
// не поменялись до вставки бронирования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(mentorColumns...).
		From("mentors").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	m, err := scanMentor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan mentor: %w", ErrScanRow, err)
	}

	return m, nil
}

// List получает менторов по фильтру
func (r *Repository) List(ctx context.Context, filter domain.MentorsFilter) ([]*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(mentorColumns...).
		From("mentors").
		OrderBy("full_name ASC", "id ASC")

	if filter.IndustryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"industry_id": *filter.IndustryID})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	mentors := make([]*domain.Mentor, 0)
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		mentors = append(mentors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return mentors, nil
}

// Deactivate мягко удаляет ментора
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentors").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Deactivate", query, args)
}

// Delete физически удаляет ментора вместе с окнами доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("mentors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	err = r.execAffectingOne(ctx, executor, "Delete", query, args)
	if err != nil && isForeignKeyViolation(err) {
		return ErrInUse
	}
	return err
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrMentorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMentor(row rowScanner) (*domain.Mentor, error) {
	var m domain.Mentor
	err := row.Scan(
		&m.ID,
		&m.IndustryID,
		&m.FullName,
		&m.Email,
		&m.Title,
		&m.Company,
		&m.Bio,
		&m.PhotoKey,
		&m.SessionPrice,
		&m.SessionDurationMinutes,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}
