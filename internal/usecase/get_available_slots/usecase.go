package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	mentorRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/mentor"
)

// UseCase use case для получения свободных слотов ментора на дату
type UseCase struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	config           Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &UseCase{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		config:           config,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: mentor=%d, date=%s", req.MentorID, req.Date.Format(domain.DateFormat))

	// 2. Текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.config.Location)

	// 3. Получаем ментора
	mentor, err := uc.mentorRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %w", ErrInternal, err)
	}
	if !mentor.IsActive {
		uc.logger.Warn("GetAvailableSlots: mentor id=%d is inactive", req.MentorID)
		return nil, ErrMentorNotFound
	}

	// 4. Валидация даты
	if err := validateDate(req.Date, now, uc.config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		MentorID:        mentor.ID,
		Date:            req.Date,
		DurationMinutes: mentor.SessionDurationMinutes,
		Slots:           []domain.AvailableSlot{},
	}

	// 5. Окна доступности на день недели
	windows, err := uc.availabilityRepo.GetByMentorAndDay(ctx, mentor.ID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability for mentor id=%d: %v", mentor.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: mentor id=%d has no availability on %s", mentor.ID, req.Date.Weekday())
		return response, nil
	}

	// 6. Генерируем слоты
	slots := domain.GenerateSlots(windows, mentor.SessionDurationMinutes)

	// 7. Для сегодняшней даты учитываем минимальное время до начала
	if isSameDay(req.Date, now) {
		earliest := now.Hour()*60 + now.Minute() + uc.config.MinBookingNoticeMinutes
		slots = domain.RemoveBefore(slots, earliest)
	}

	// 8. Исключаем занятые слоты
	bookings, err := uc.bookingRepo.GetMentorBookingsForDate(ctx, mentor.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for mentor id=%d: %v", mentor.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}
	response.Slots = domain.RemoveBooked(slots, bookings)

	uc.logger.Info("GetAvailableSlots: %d free slots for mentor=%d, date=%s",
		len(response.Slots), mentor.ID, req.Date.Format(domain.DateFormat))

	return response, nil
}
