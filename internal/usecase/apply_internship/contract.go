package apply_internship

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	HasActiveApplication(ctx context.Context, userID, internshipID int64) (bool, error)
	AddStatusHistory(ctx context.Context, change domain.StatusChange) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// InternshipRepository интерфейс репозитория стажировок
type InternshipRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Internship, error)
}

// FileStorage хранилище загружаемых CV
type FileStorage interface {
	Save(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncBookingTransition(bookingType, status string)
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
