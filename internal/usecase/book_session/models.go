package book_session

import (
	"time"

	"github.com/m04kA/InternHub-Service/pkg/types"
)

// Request модель запроса на бронирование сессии с ментором
type Request struct {
	UserID    int64
	MentorID  int64
	Date      time.Time        // Дата сессии (без времени)
	StartTime types.TimeString // Время начала слота, например "10:00"
	Notes     *string
}

// Config ограничения бронирования из конфигурации
type Config struct {
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
	Currency                string
	Location                *time.Location
}
