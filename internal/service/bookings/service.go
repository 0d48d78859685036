package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

// CVURLTTL срок действия ссылки на скачивание CV
const CVURLTTL = 15 * time.Minute

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	actors      ActorResolver
	storage     FileStorage
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	actors ActorResolver,
	storage FileStorage,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		actors:      actors,
		storage:     storage,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступ: владелец, глобальный админ или industry_admin с отраслью бронирования
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actor.UserID {
		if err := s.checkAdminAccess(ctx, actor, booking); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по статусу и типу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	var domainType *domain.BookingType
	if req.Type != nil {
		bookingType, err := models.ToDomainBookingType(*req.Type)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid type=%s for user=%d", *req.Type, req.UserID)
			return nil, fmt.Errorf("%w: invalid type", ErrInvalidInput)
		}
		domainType = &bookingType
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus, domainType)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForAdmin получает бронирования для админ-панели с фильтрацией и пагинацией
// Для industry_admin выборка ограничена его отраслями
func (s *Service) ListForAdmin(ctx context.Context, actor domain.Actor, req *models.AdminListRequest) (*models.BookingPageResponse, error) {
	s.logger.Info("ListForAdmin: user=%d role=%s", actor.UserID, actor.Role)

	actor, err := s.resolve(ctx, "ListForAdmin", actor)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() {
		return nil, ErrAccessDenied
	}

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListForAdmin: invalid filter: %v", err)
		return nil, err
	}

	if req.IndustryID != nil {
		if !actor.CanManageIndustry(*req.IndustryID) {
			s.logger.Warn("ListForAdmin: user=%d has no access to industry id=%d", actor.UserID, *req.IndustryID)
			return nil, ErrAccessDenied
		}
		filter.IndustryIDs = []int64{*req.IndustryID}
	} else {
		filter.IndustryIDs = actor.ScopeIndustryIDs()
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - repository error: %w", ErrInternal, err)
	}

	total, err := s.bookingRepo.CountWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForAdmin: count error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - count error: %w", ErrInternal, err)
	}

	s.logger.Info("ListForAdmin: fetched %d of %d bookings for user=%d", len(bookings), total, actor.UserID)
	return models.FromDomainBookingPage(bookings, total, filter.Limit, filter.Offset), nil
}

// UpdateStatus одобряет или отклоняет бронирование
// Доступно глобальному админу и industry_admin с отраслью бронирования
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, actor.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || (newStatus != domain.StatusApproved && newStatus != domain.StatusRejected) {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	reason := normalizeReason(req.Reason)
	if newStatus == domain.StatusRejected && reason == nil {
		return nil, ErrReasonRequired
	}
	if reason != nil && len(*reason) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}
	if newStatus == domain.StatusApproved {
		reason = nil
	}

	var from domain.BookingStatus
	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется (FOR UPDATE) до конца транзакции
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if err := s.checkAdminAccess(txCtx, actor, booking); err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d", booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		change := domain.StatusChange{
			BookingID: booking.ID,
			From:      booking.Status,
			To:        newStatus,
			ChangedBy: ptr.Ptr(actor.UserID),
			Reason:    reason,
			ChangedAt: time.Now(),
		}
		if err := s.applyChange(txCtx, "UpdateStatus", change); err != nil {
			return err
		}

		from = booking.Status
		result, err = s.getBooking(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncBookingTransition(string(result.Type), string(result.Status))
	s.notifier.BookingStatusChanged(ctx, result)

	s.logger.Info("UpdateStatus: booking id=%d %s -> %s by user=%d", bookingID, from, result.Status, actor.UserID)
	return models.FromDomainBooking(result), nil
}

// Cancel отзывает собственную заявку студента в статусе pending
// Бронирование переходит в rejected с причиной "withdrawn by student"
func (s *Service) Cancel(ctx context.Context, userID, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: withdrawing booking id=%d by user=%d", bookingID, userID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != userID {
			s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeWithdrawn() {
			s.logger.Warn("Cancel: booking id=%d cannot be withdrawn, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		change := domain.StatusChange{
			BookingID: booking.ID,
			From:      booking.Status,
			To:        domain.StatusRejected,
			Reason:    ptr.Ptr(domain.WithdrawnReason),
			ChangedAt: time.Now(),
		}
		if err := s.bookingRepo.UpdateStatus(txCtx, change); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		change.ChangedBy = ptr.Ptr(userID)
		if err := s.bookingRepo.AddStatusHistory(txCtx, change); err != nil {
			s.logger.Error("Cancel: failed to add history for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - history error: %w", ErrInternal, err)
		}

		result, err = s.getBooking(txCtx, "Cancel", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncBookingTransition(string(result.Type), string(result.Status))

	s.logger.Info("Cancel: successfully withdrew booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// GetCVURL возвращает временную ссылку на CV заявки
// Права доступа как при рассмотрении заявки
func (s *Service) GetCVURL(ctx context.Context, actor domain.Actor, bookingID int64) (*models.CVURLResponse, error) {
	s.logger.Info("GetCVURL: booking id=%d by user=%d", bookingID, actor.UserID)

	booking, err := s.getBooking(ctx, "GetCVURL", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAdminAccess(ctx, actor, booking); err != nil {
		s.logger.Warn("GetCVURL: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
		return nil, err
	}

	if booking.Type != domain.BookingTypeInternship || booking.CVKey == nil || *booking.CVKey == "" {
		return nil, ErrNoCV
	}

	url, err := s.storage.URL(ctx, *booking.CVKey, CVURLTTL)
	if err != nil {
		s.logger.Error("GetCVURL: storage error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetCVURL - storage error: %w", ErrInternal, err)
	}

	return &models.CVURLResponse{URL: url, ExpiresAt: time.Now().Add(CVURLTTL)}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) applyChange(ctx context.Context, op string, change domain.StatusChange) error {
	if err := s.bookingRepo.UpdateStatus(ctx, change); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, change.BookingID, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if err := s.bookingRepo.AddStatusHistory(ctx, change); err != nil {
		s.logger.Error("%s: failed to add history for booking id=%d: %v", op, change.BookingID, err)
		return fmt.Errorf("%w: %s - history error: %w", ErrInternal, op, err)
	}

	return nil
}

func (s *Service) resolve(ctx context.Context, op string, actor domain.Actor) (domain.Actor, error) {
	resolved, err := s.actors.Resolve(ctx, actor)
	if err != nil {
		s.logger.Error("%s: failed to resolve user=%d: %v", op, actor.UserID, err)
		return actor, ErrAccessDenied
	}
	return resolved, nil
}

// checkAdminAccess проверяет, что пользователь администрирует отрасль бронирования
func (s *Service) checkAdminAccess(ctx context.Context, actor domain.Actor, booking *domain.Booking) error {
	if !actor.Role.IsAdmin() {
		return ErrAccessDenied
	}

	resolved, err := s.resolve(ctx, "checkAdminAccess", actor)
	if err != nil {
		return err
	}

	if !resolved.CanManageIndustry(booking.IndustryID) {
		return ErrAccessDenied
	}
	return nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toDomainFilter(req *models.AdminListRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		MentorID:     req.MentorID,
		InternshipID: req.InternshipID,
		StartDate:    req.From,
		EndDate:      req.To,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.Type != nil {
		bookingType, err := models.ToDomainBookingType(*req.Type)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid type", ErrInvalidInput)
		}
		filter.Type = &bookingType
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return filter, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	if filter.Limit == 0 {
		filter.Limit = domain.DefaultPageLimit
	}
	if filter.Limit > domain.MaxPageLimit {
		filter.Limit = domain.MaxPageLimit
	}

	return filter, nil
}
