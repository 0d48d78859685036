package book_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	mentorRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/mentor"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

// UseCase use case для бронирования сессии с ментором
type UseCase struct {
	bookingRepo      BookingRepository
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	metrics          Metrics
	config           Config
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Currency == "" {
		config.Currency = domain.DefaultCurrency
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		metrics:          metrics,
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

// Execute выполняет use case бронирования сессии
// Использует сериализуемую транзакцию для предотвращения двойного бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSession: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookSession: user=%d, mentor=%d, date=%s, time=%s",
		req.UserID, req.MentorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Текущее время в часовом поясе сервиса
	now := uc.timeProvider.Now().In(uc.config.Location)

	var result *domain.Booking

	// 3. Все проверки и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Ментор (блокируется FOR SHARE до конца транзакции)
		mentor, err := uc.mentorRepo.GetByID(txCtx, req.MentorID)
		if err != nil {
			if errors.Is(err, mentorRepo.ErrMentorNotFound) {
				uc.logger.Warn("BookSession: mentor id=%d not found", req.MentorID)
				return ErrMentorNotFound
			}
			uc.logger.Error("BookSession: failed to get mentor id=%d: %v", req.MentorID, err)
			return fmt.Errorf("%w: failed to get mentor: %w", ErrInternal, err)
		}
		if !mentor.IsActive {
			uc.logger.Warn("BookSession: mentor id=%d is inactive", req.MentorID)
			return ErrMentorNotFound
		}

		// 3.2. Валидация даты
		if err := validateDate(req.Date, now, uc.config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("BookSession: date validation failed: %v", err)
			return err
		}

		// 3.3. Время должно совпадать с одним из слотов ментора
		windows, err := uc.availabilityRepo.GetByMentorAndDay(txCtx, mentor.ID, req.Date.Weekday())
		if err != nil {
			uc.logger.Error("BookSession: failed to get availability for mentor id=%d: %v", mentor.ID, err)
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}
		slots := domain.GenerateSlots(windows, mentor.SessionDurationMinutes)
		if !domain.ContainsStart(slots, req.StartTime) {
			uc.logger.Warn("BookSession: %s is not a slot of mentor id=%d on %s",
				req.StartTime, mentor.ID, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 3.4. Минимальное время до начала
		if err := validateBookingTime(req.Date, req.StartTime, now, uc.config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("BookSession: booking time validation failed: %v", err)
			return err
		}

		// 3.5. Активные бронирования ментора на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetMentorBookingsForDate(txCtx, mentor.ID, req.Date)
		if err != nil {
			uc.logger.Error("BookSession: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if err := validateNoConflicts(req, mentor.SessionDurationMinutes, bookings); err != nil {
			uc.logger.Warn("BookSession: conflict for user=%d, mentor=%d: %v", req.UserID, mentor.ID, err)
			return err
		}

		// 3.6. Создаем бронирование
		sessionDate := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
		booking := &domain.Booking{
			Type:            domain.BookingTypeMentorship,
			UserID:          req.UserID,
			IndustryID:      mentor.IndustryID,
			Status:          domain.StatusPending,
			MentorID:        ptr.Ptr(mentor.ID),
			SessionDate:     &sessionDate,
			StartTime:       req.StartTime,
			DurationMinutes: mentor.SessionDurationMinutes,
			Title:           mentor.FullName,
			Amount:          mentor.SessionPrice,
			Currency:        uc.config.Currency,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("BookSession: slot taken concurrently for mentor id=%d", mentor.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("BookSession: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		err = uc.bookingRepo.AddStatusHistory(txCtx, domain.StatusChange{
			BookingID: created.ID,
			To:        domain.StatusPending,
			ChangedBy: ptr.Ptr(req.UserID),
			ChangedAt: now,
		})
		if err != nil {
			uc.logger.Error("BookSession: failed to add status history for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to add status history: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingTransition(string(result.Type), string(result.Status))
	uc.logger.Info("BookSession: successfully created booking id=%d", result.ID)

	return result, nil
}
