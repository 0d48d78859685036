package catalog

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// IndustryRepository интерфейс репозитория отраслей
type IndustryRepository interface {
	Create(ctx context.Context, industry *domain.Industry) (*domain.Industry, error)
	GetByID(ctx context.Context, id int64) (*domain.Industry, error)
	List(ctx context.Context) ([]*domain.Industry, error)
	Delete(ctx context.Context, id int64) error
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context, industryID *int64) ([]*domain.Company, error)
	Delete(ctx context.Context, id int64) error
}

// InternshipRepository интерфейс репозитория стажировок
type InternshipRepository interface {
	Create(ctx context.Context, in *domain.Internship) (*domain.Internship, error)
	Update(ctx context.Context, in *domain.Internship) (*domain.Internship, error)
	SyncIndustry(ctx context.Context, companyID, industryID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Internship, error)
	List(ctx context.Context, filter domain.InternshipsFilter) ([]*domain.Internship, error)
	Count(ctx context.Context, filter domain.InternshipsFilter) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// FileStorage хранилище логотипов
type FileStorage interface {
	Save(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
