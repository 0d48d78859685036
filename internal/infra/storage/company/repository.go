package company

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
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

var companyColumns = []string{
	"id",
	"industry_id",
	"name",
	"description",
	"website",
	"location",
	"logo_key",
	"created_at",
	"updated_at",
}

// Repository репозиторий компаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает компанию
func (r *Repository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("companies").
		Columns("industry_id", "name", "description", "website", "location", "logo_key").
		Values(c.IndustryID, c.Name, c.Description, c.Website, c.Location, c.LogoKey).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidIndustry
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return c, nil
}

// Update обновляет все изменяемые поля компании
func (r *Repository) Update(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("companies").
		Set("industry_id", c.IndustryID).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("website", c.Website).
		Set("location", c.Location).
		Set("logo_key", c.LogoKey).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidIndustry
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает компанию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(companyColumns...).
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	c, err := scanCompany(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan company: %w", ErrScanRow, err)
	}

	return c, nil
}

// List получает компании, опционально по отрасли
func (r *Repository) List(ctx context.Context, industryID *int64) ([]*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(companyColumns...).
		From("companies").
		OrderBy("name ASC")

	if industryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"industry_id": *industryID})
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

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return companies, nil
}

// Delete удаляет компанию (стажировки удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	// Каскад на internships упирается в RESTRICT со стороны bookings
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
		return ErrCompanyNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID,
		&c.IndustryID,
		&c.Name,
		&c.Description,
		&c.Website,
		&c.Location,
		&c.LogoKey,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

func isReferenceViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && (pqErr.Code == pqForeignKeyViolation || pqErr.Code == pqCheckViolation)
}
