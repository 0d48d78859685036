package auth

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/otp"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// OTPStore хранилище одноразовых кодов
type OTPStore interface {
	Save(ctx context.Context, purpose, email, codeHash string, ttl time.Duration) error
	Verify(ctx context.Context, purpose, email, codeHash string, maxAttempts int) (otp.VerifyResult, error)
	TTL(ctx context.Context, purpose, email string) (time.Duration, error)
	Delete(ctx context.Context, purpose, email string) error
	AcquireCooldown(ctx context.Context, purpose, email string, interval time.Duration) (bool, time.Duration, error)
	ReleaseCooldown(ctx context.Context, purpose, email string) error
}

// RateLimiter ограничение количества отправок кодов
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// PasswordHasher хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenIssuer выпуск access токенов
type TokenIssuer interface {
	Issue(userID int64, role string) (string, time.Time, error)
}

// Mailer интерфейс отправки писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Metrics счетчики отправленных кодов
type Metrics interface {
	IncOTPSent(purpose string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
