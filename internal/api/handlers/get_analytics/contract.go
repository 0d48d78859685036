package get_analytics

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetSummary(ctx context.Context, actor domain.Actor, req *models.SummaryRequest) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
