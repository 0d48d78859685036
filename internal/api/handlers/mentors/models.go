package mentors

import (
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
)

// mentorFromForm собирает запрос из полей multipart формы
func mentorFromForm(r *http.Request) (*models.MentorRequest, error) {
	industryID, err := handlers.FormInt64(r, "industryId", 0)
	if err != nil {
		return nil, err
	}
	price, err := handlers.FormInt64(r, "sessionPrice", 0)
	if err != nil {
		return nil, err
	}
	duration, err := handlers.FormInt64(r, "sessionDurationMinutes", 0)
	if err != nil {
		return nil, err
	}
	isActive, err := handlers.FormBool(r, "isActive")
	if err != nil {
		return nil, err
	}
	removePhoto, err := handlers.FormBool(r, "removePhoto")
	if err != nil {
		return nil, err
	}

	return &models.MentorRequest{
		IndustryID:             industryID,
		FullName:               handlers.FormString(r, "fullName"),
		Email:                  handlers.FormString(r, "email"),
		Title:                  handlers.FormString(r, "title"),
		Company:                handlers.FormOptionalString(r, "company"),
		Bio:                    handlers.FormString(r, "bio"),
		SessionPrice:           price,
		SessionDurationMinutes: int(duration),
		IsActive:               isActive,
		RemovePhoto:            removePhoto != nil && *removePhoto,
	}, nil
}
