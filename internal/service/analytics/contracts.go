package analytics

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// Repository агрегирующие запросы
type Repository interface {
	CountByStatus(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error)
	CountByType(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error)
	CountByMonth(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.CountByKey, error)
	CountByIndustry(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.IndustryCount, error)
	Revenue(ctx context.Context, filter domain.AnalyticsFilter) (int64, error)
	CountCompanies(ctx context.Context, industryIDs []int64) (int64, error)
	CountOpenInternships(ctx context.Context, industryIDs []int64, today time.Time) (int64, error)
	CountActiveMentors(ctx context.Context, industryIDs []int64) (int64, error)
	CountStudents(ctx context.Context, industryIDs []int64) (int64, error)
}

// ActorResolver загружает актуальные отрасли industry_admin
type ActorResolver interface {
	Resolve(ctx context.Context, actor domain.Actor) (domain.Actor, error)
}

// TransactionManager читает все агрегаты из одного снимка
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
