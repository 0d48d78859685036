package user

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

const pqUniqueViolation = "23505"

// industryIDsColumn собирает отрасли администратора одним массивом
const industryIDsColumn = "COALESCE((SELECT array_agg(ai.industry_id ORDER BY ai.industry_id) " +
	"FROM admin_industries ai WHERE ai.user_id = users.id), '{}') AS industry_ids"

var userColumns = []string{
	"users.id",
	"users.email",
	"users.password_hash",
	"users.first_name",
	"users.last_name",
	"users.phone",
	"users.role",
	"users.email_verified",
	industryIDsColumn,
	"users.created_at",
	"users.updated_at",
}

// Repository репозиторий пользователей и администраторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя. Email приводится к нижнему регистру
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "password_hash", "first_name", "last_name", "phone", "role", "email_verified").
		Values(u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.EmailVerified).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"users.id": id})
}

// GetByEmail получает пользователя по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"users.email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %w", ErrScanRow, op, err)
	}

	return u, nil
}

// ListByRoles получает пользователей с указанными ролями
func (r *Repository) ListByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"users.role": roleStrings}).
		OrderBy("users.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoles - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoles - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRoles - scan row: %w", ErrScanRow, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRoles - rows error: %w", ErrScanRow, err)
	}

	return users, nil
}

// MarkEmailVerified отмечает email подтвержденным
func (r *Repository) MarkEmailVerified(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkEmailVerified", id, map[string]interface{}{"email_verified": true})
}

// UpdatePasswordHash меняет хеш пароля
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.update(ctx, "UpdatePasswordHash", id, map[string]interface{}{"password_hash": hash})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetIndustries заменяет список отраслей администратора
// Вызывается внутри транзакции вместе с созданием/обновлением администратора
func (r *Repository) SetIndustries(ctx context.Context, userID int64, industryIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_industries").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetIndustries - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetIndustries - execute delete: %w", ErrExecQuery, err)
	}

	if len(industryIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("admin_industries").
		Columns("user_id", "industry_id").
		Suffix("ON CONFLICT DO NOTHING")
	for _, industryID := range industryIDs {
		insertBuilder = insertBuilder.Values(userID, industryID)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetIndustries - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetIndustries - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет пользователя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var industryIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Role,
		&u.EmailVerified,
		&industryIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if u.Role == domain.RoleIndustryAdmin {
		u.IndustryIDs = []int64(industryIDs)
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}
