package mentors

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
)

type MentorService interface {
	List(ctx context.Context, industryID *int64, includeInactive bool) (*models.MentorListResponse, error)
	Get(ctx context.Context, id int64, includeInactive bool) (*models.MentorResponse, error)
	Create(ctx context.Context, req *models.MentorRequest, photo *domain.Upload) (*models.MentorResponse, error)
	Update(ctx context.Context, id int64, req *models.MentorRequest, photo *domain.Upload) (*models.MentorResponse, error)
	Delete(ctx context.Context, id int64) (*models.DeleteMentorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
