package internships

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

type CatalogService interface {
	ListInternships(ctx context.Context, req *models.ListInternshipsRequest) (*models.InternshipPageResponse, error)
	GetInternship(ctx context.Context, id int64) (*models.InternshipResponse, error)
	CreateInternship(ctx context.Context, req *models.InternshipRequest) (*models.InternshipResponse, error)
	UpdateInternship(ctx context.Context, id int64, req *models.InternshipRequest) (*models.InternshipResponse, error)
	DeleteInternship(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
