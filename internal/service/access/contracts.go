package access

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
