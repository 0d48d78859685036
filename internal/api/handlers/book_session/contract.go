package book_session

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookSession "github.com/m04kA/InternHub-Service/internal/usecase/book_session"
)

type BookSessionUseCase interface {
	Execute(ctx context.Context, req *bookSession.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
