package get_available_slots

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// Request модель запроса на получение свободных слотов ментора
type Request struct {
	MentorID int64
	Date     time.Time // Дата без времени
}

// Response модель ответа со списком свободных слотов
type Response struct {
	MentorID        int64
	Date            time.Time
	DurationMinutes int
	Slots           []domain.AvailableSlot
}

// Config ограничения бронирования из конфигурации
type Config struct {
	AdvanceBookingDays      int // 0 - без ограничения
	MinBookingNoticeMinutes int
	Location                *time.Location
}
