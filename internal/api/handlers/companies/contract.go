package companies

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

type CatalogService interface {
	ListCompanies(ctx context.Context, industryID *int64) (*models.CompanyListResponse, error)
	GetCompany(ctx context.Context, id int64) (*models.CompanyResponse, error)
	CreateCompany(ctx context.Context, req *models.CompanyRequest, logo *domain.Upload) (*models.CompanyResponse, error)
	UpdateCompany(ctx context.Context, id int64, req *models.CompanyRequest, logo *domain.Upload) (*models.CompanyResponse, error)
	DeleteCompany(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
