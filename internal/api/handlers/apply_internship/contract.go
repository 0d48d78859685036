package apply_internship

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	applyInternship "github.com/m04kA/InternHub-Service/internal/usecase/apply_internship"
)

type ApplyInternshipUseCase interface {
	Execute(ctx context.Context, req *applyInternship.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
