package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByMentorAndDay(ctx context.Context, mentorID int64, day time.Weekday) ([]*domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetMentorBookingsForDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
