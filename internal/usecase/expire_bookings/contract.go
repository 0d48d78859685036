package expire_bookings

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExpireSessions(ctx context.Context, now time.Time) ([]domain.ExpiredBooking, error)
	ExpireApplications(ctx context.Context, cutoff time.Time) ([]domain.ExpiredBooking, error)
	AddStatusHistory(ctx context.Context, change domain.StatusChange) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомления о смене статуса
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncBookingTransition(bookingType, status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
