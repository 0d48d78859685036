package industries

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

type CatalogService interface {
	ListIndustries(ctx context.Context) (*models.IndustryListResponse, error)
	CreateIndustry(ctx context.Context, req *models.CreateIndustryRequest) (*models.IndustryResponse, error)
	DeleteIndustry(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
