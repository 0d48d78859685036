package bookings

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus, bookingType *domain.BookingType) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CountWithFilter(ctx context.Context, filter domain.BookingsFilter) (int64, error)
	UpdateStatus(ctx context.Context, change domain.StatusChange) error
	AddStatusHistory(ctx context.Context, change domain.StatusChange) error
}

// ActorResolver дополняет пользователя из токена его отраслями
type ActorResolver interface {
	Resolve(ctx context.Context, actor domain.Actor) (domain.Actor, error)
}

// FileStorage выдает ссылки на загруженные CV
type FileStorage interface {
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Notifier уведомления о смене статуса
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncBookingTransition(bookingType, status string)
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
