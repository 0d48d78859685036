package admins

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error)
	SetIndustries(ctx context.Context, userID int64, industryIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// IndustryRepository проверка существования отраслей
type IndustryRepository interface {
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

// PasswordHasher хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
