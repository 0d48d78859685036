package set_mentor_availability

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
)

type MentorService interface {
	SetAvailability(ctx context.Context, actor domain.Actor, mentorID int64, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
