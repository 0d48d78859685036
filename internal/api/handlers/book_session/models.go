package book_session

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookSession "github.com/m04kA/InternHub-Service/internal/usecase/book_session"
	"github.com/m04kA/InternHub-Service/pkg/types"
)

// BookSessionRequest HTTP request model
type BookSessionRequest struct {
	Date      string  `json:"date" validate:"required"`      // "2026-03-02"
	StartTime string  `json:"startTime" validate:"required"` // "10:00"
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSessionRequest) ToUseCaseRequest(userID, mentorID int64) (*bookSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookSession.Request{
		UserID:    userID,
		MentorID:  mentorID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}
