package models

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// Request модели

// MentorRequest создание или обновление ментора (поля multipart формы)
type MentorRequest struct {
	IndustryID             int64   `json:"industryId" validate:"required,gt=0"`
	FullName               string  `json:"fullName" validate:"required,max=200"`
	Email                  string  `json:"email" validate:"required,email,max=255"`
	Title                  string  `json:"title" validate:"required,max=200"`
	Company                *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Bio                    string  `json:"bio" validate:"max=5000"`
	SessionPrice           int64   `json:"sessionPrice" validate:"gte=0"`
	SessionDurationMinutes int     `json:"sessionDurationMinutes" validate:"gte=0"`
	IsActive               *bool   `json:"isActive,omitempty"`
	RemovePhoto            bool    `json:"removePhoto"`
}

// AvailabilityWindowRequest недельное окно
type AvailabilityWindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// SetAvailabilityRequest полная замена расписания
type SetAvailabilityRequest struct {
	Windows []AvailabilityWindowRequest `json:"windows" validate:"dive"`
}

// Response модели

// AvailabilityWindowResponse окно доступности
type AvailabilityWindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse расписание ментора
type AvailabilityResponse struct {
	MentorID int64                        `json:"mentorId"`
	Windows  []AvailabilityWindowResponse `json:"windows"`
}

// MentorResponse ментор
type MentorResponse struct {
	ID                     int64                        `json:"id"`
	IndustryID             int64                        `json:"industryId"`
	FullName               string                       `json:"fullName"`
	Email                  string                       `json:"email"`
	Title                  string                       `json:"title"`
	Company                *string                      `json:"company,omitempty"`
	Bio                    string                       `json:"bio"`
	PhotoURL               *string                      `json:"photoUrl,omitempty"`
	SessionPrice           int64                        `json:"sessionPrice"`
	SessionDurationMinutes int                          `json:"sessionDurationMinutes"`
	IsFree                 bool                         `json:"isFree"`
	IsActive               bool                         `json:"isActive"`
	Availability           []AvailabilityWindowResponse `json:"availability,omitempty"`
	CreatedAt              time.Time                    `json:"createdAt"`
	UpdatedAt              time.Time                    `json:"updatedAt"`
}

// MentorListResponse список менторов
type MentorListResponse struct {
	Mentors []MentorResponse `json:"mentors"`
}

// DeleteMentorResponse результат удаления
type DeleteMentorResponse struct {
	ID          int64 `json:"id"`
	Deactivated bool  `json:"deactivated"` // true - мягкое удаление, бронирования сохранены
}

// Конвертеры

// FromDomainMentor конвертирует ментора, photoURL вычисляется сервисом
func FromDomainMentor(m *domain.Mentor, photoURL *string) MentorResponse {
	return MentorResponse{
		ID:                     m.ID,
		IndustryID:             m.IndustryID,
		FullName:               m.FullName,
		Email:                  m.Email,
		Title:                  m.Title,
		Company:                m.Company,
		Bio:                    m.Bio,
		PhotoURL:               photoURL,
		SessionPrice:           m.SessionPrice,
		SessionDurationMinutes: m.SessionDurationMinutes,
		IsFree:                 m.IsFree(),
		IsActive:               m.IsActive,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// FromDomainWindows конвертирует окна доступности
func FromDomainWindows(windows []*domain.AvailabilityWindow) []AvailabilityWindowResponse {
	result := make([]AvailabilityWindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, AvailabilityWindowResponse{
			ID:        w.ID,
			DayOfWeek: int(w.DayOfWeek),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}
	return result
}
