package notifications

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
)

// Service уведомляет студентов о смене статуса бронирований
// Ошибки отправки логируются и не возвращаются вызывающему
type Service struct {
	userRepo UserRepository
	mailer   Mailer
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(userRepo UserRepository, mailer Mailer, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// BookingStatusChanged отправляет студенту письмо о новом статусе бронирования
func (s *Service) BookingStatusChanged(ctx context.Context, booking *domain.Booking) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Error("Notifications: failed to load user id=%d for booking id=%d: %v", booking.UserID, booking.ID, err)
		return
	}

	msg := mailer.BookingStatusMessage(
		user.Email,
		user.FullName(),
		booking.Title,
		string(booking.Status),
		booking.RejectionReason,
		booking.IsAwaitingPayment(),
	)

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("Notifications: failed to send status email for booking id=%d: %v", booking.ID, err)
		return
	}

	s.logger.Info("Notifications: status email sent booking id=%d status=%s", booking.ID, booking.Status)
}
