package admins

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/service/admins/models"
)

type AdminService interface {
	CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error)
	ListAdmins(ctx context.Context) (*models.AdminListResponse, error)
	UpdateAdminIndustries(ctx context.Context, id int64, req *models.UpdateIndustriesRequest) (*models.AdminResponse, error)
	DeleteAdmin(ctx context.Context, callerID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
