package expire_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

const defaultInterval = 5 * time.Minute

const (
	sessionExpiredReason     = "session start time passed"
	applicationExpiredReason = "internship review period elapsed"
)

// UseCase переводит просроченные бронирования в expired
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Run запускает периодическую проверку до отмены контекста
func (uc *UseCase) Run(ctx context.Context) {
	uc.logger.Info("ExpireBookings: worker started, interval=%s", uc.config.Interval)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := uc.RunOnce(ctx); err != nil {
			uc.logger.Error("ExpireBookings: run failed: %v", err)
		}

		select {
		case <-ctx.Done():
			uc.logger.Info("ExpireBookings: worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce выполняет один проход:
// 1. менторские сессии pending/approved, начало которых наступило
// 2. заявки pending, дедлайн стажировки которых прошел более ApplicationReviewDays назад
// Каждая группа истекает в своей транзакции вместе с записями истории (changed_by = NULL)
func (uc *UseCase) RunOnce(ctx context.Context) (Result, error) {
	var result Result
	now := uc.timeProvider.Now().In(uc.config.Location)

	sessions, err := uc.expire(ctx, sessionExpiredReason, func(ctx context.Context) ([]domain.ExpiredBooking, error) {
		return uc.bookingRepo.ExpireSessions(ctx, now)
	})
	if err != nil {
		return result, fmt.Errorf("%w: failed to expire sessions: %w", ErrInternal, err)
	}
	result.Sessions = len(sessions)
	uc.afterExpire(ctx, sessions)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.config.Location)
	cutoff := today.AddDate(0, 0, -uc.config.ApplicationReviewDays)

	applications, err := uc.expire(ctx, applicationExpiredReason, func(ctx context.Context) ([]domain.ExpiredBooking, error) {
		return uc.bookingRepo.ExpireApplications(ctx, cutoff)
	})
	if err != nil {
		return result, fmt.Errorf("%w: failed to expire applications: %w", ErrInternal, err)
	}
	result.Applications = len(applications)
	uc.afterExpire(ctx, applications)

	if result.Total() > 0 {
		uc.logger.Info("ExpireBookings: expired %d sessions, %d applications", result.Sessions, result.Applications)
	}

	return result, nil
}

func (uc *UseCase) expire(
	ctx context.Context,
	reason string,
	update func(ctx context.Context) ([]domain.ExpiredBooking, error),
) ([]domain.ExpiredBooking, error) {
	var expired []domain.ExpiredBooking

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		expired, err = update(ctx)
		if err != nil {
			return err
		}

		for _, e := range expired {
			change := domain.StatusChange{
				BookingID: e.Booking.ID,
				From:      e.PreviousStatus,
				To:        domain.StatusExpired,
				Reason:    &reason,
			}
			if err := uc.bookingRepo.AddStatusHistory(ctx, change); err != nil {
				return fmt.Errorf("history for booking id=%d: %w", e.Booking.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expired, nil
}

// afterExpire вызывается после коммита
func (uc *UseCase) afterExpire(ctx context.Context, expired []domain.ExpiredBooking) {
	for _, e := range expired {
		uc.metrics.IncBookingTransition(string(e.Booking.Type), string(domain.StatusExpired))
		uc.notifier.BookingStatusChanged(ctx, e.Booking)
	}
}
