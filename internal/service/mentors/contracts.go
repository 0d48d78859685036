package mentors

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	Create(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error)
	Update(ctx context.Context, m *domain.Mentor) (*domain.Mentor, error)
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
	List(ctx context.Context, filter domain.MentorsFilter) ([]*domain.Mentor, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) ([]*domain.AvailabilityWindow, error)
	ReplaceForMentor(ctx context.Context, mentorID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error)
}

// BookingCounter считает бронирования ментора
type BookingCounter interface {
	CountByMentorID(ctx context.Context, mentorID int64) (int64, error)
}

// ActorResolver загружает актуальные отрасли industry_admin
type ActorResolver interface {
	Resolve(ctx context.Context, actor domain.Actor) (domain.Actor, error)
}

// FileStorage хранилище фото менторов
type FileStorage interface {
	Save(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
