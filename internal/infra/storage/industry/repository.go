package industry

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

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Repository репозиторий отраслей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отраслей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отрасль
func (r *Repository) Create(ctx context.Context, industry *domain.Industry) (*domain.Industry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("industries").
		Columns("name").
		Values(industry.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&industry.ID, &industry.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return industry, nil
}

// GetByID получает отрасль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Industry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("industries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var industry domain.Industry
	err = executor.QueryRowContext(ctx, query, args...).Scan(&industry.ID, &industry.Name, &industry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIndustryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan industry: %w", ErrScanRow, err)
	}

	return &industry, nil
}

// List получает все отрасли по алфавиту
func (r *Repository) List(ctx context.Context) ([]*domain.Industry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("industries").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	industries := make([]*domain.Industry, 0)
	for rows.Next() {
		var industry domain.Industry
		if err := rows.Scan(&industry.ID, &industry.Name, &industry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		industries = append(industries, &industry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return industries, nil
}

// CountExisting возвращает, сколько из переданных ID существует
func (r *Repository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("industries").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountExisting - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExisting - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет отрасль. Ссылки из других таблиц дают ErrInUse
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("industries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrIndustryNotFound
	}

	return nil
}
