package list_admin_bookings

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
)

type BookingService interface {
	ListForAdmin(ctx context.Context, actor domain.Actor, req *models.AdminListRequest) (*models.BookingPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
