package verify_payment

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

type VerifyPaymentUseCase interface {
	Execute(ctx context.Context, reference string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
