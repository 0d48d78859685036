package notifications

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
)

// UserRepository интерфейс для получения получателя письма
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Mailer интерфейс отправки писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
