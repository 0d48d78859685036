package initialize_payment

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPaymentReference(ctx context.Context, id int64, reference, paymentURL, accessCode string) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, in paystack.InitializeRequest) (*paystack.InitializeResult, error)
}

// Metrics счетчики платежей
type Metrics interface {
	IncPayment(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
