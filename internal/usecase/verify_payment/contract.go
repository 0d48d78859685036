package verify_payment

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentReference(ctx context.Context, reference string) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id int64, reference string, paidAt time.Time) (bool, error)
	AddStatusHistory(ctx context.Context, change domain.StatusChange) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	VerifyTransaction(ctx context.Context, reference string) (*paystack.Transaction, error)
	VerifySignature(body []byte, signature string) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомления о смене статуса
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчики платежей и переходов статусов
type Metrics interface {
	IncPayment(outcome string)
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
