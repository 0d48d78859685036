package get_booking_cv

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
)

type BookingService interface {
	GetCVURL(ctx context.Context, actor domain.Actor, bookingID int64) (*models.CVURLResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
