package initialize_payment

import (
	"context"

	initializePayment "github.com/m04kA/InternHub-Service/internal/usecase/initialize_payment"
)

type InitializePaymentUseCase interface {
	Execute(ctx context.Context, req *initializePayment.Request) (*initializePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
