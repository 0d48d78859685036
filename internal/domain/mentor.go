package domain

import (
	"time"

	"github.com/m04kA/InternHub-Service/pkg/types"
)

// Mentor специалист отрасли, проводящий платные консультации
type Mentor struct {
	ID                     int64
	IndustryID             int64
	FullName               string
	Email                  string
	Title                  string // должность
	Company                *string
	Bio                    string
	PhotoKey               *string
	SessionPrice           int64 // в kobo
	SessionDurationMinutes int
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsFree returns true if sessions with the mentor do not require payment
func (m *Mentor) IsFree() bool {
	return m.SessionPrice == 0
}

// AvailabilityWindow еженедельное окно доступности ментора
type AvailabilityWindow struct {
	ID        int64
	MentorID  int64
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DurationMinutes длительность окна
func (w *AvailabilityWindow) DurationMinutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// Overlaps returns true if two windows on the same day overlap
func (w *AvailabilityWindow) Overlaps(other *AvailabilityWindow) bool {
	if w.DayOfWeek != other.DayOfWeek {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(w.EndTime)
}

// MentorsFilter фильтр списка менторов
type MentorsFilter struct {
	IndustryID      *int64
	IncludeInactive bool
}
