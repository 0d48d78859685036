package verify_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
)

// UseCase use case подтверждения оплаты (возврат с checkout и вебхук)
type UseCase struct {
	bookingRepo  BookingRepository
	gateway      PaymentGateway
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет платеж по референсу и переводит бронирование в paid
// Повторный вызов для оплаченного бронирования возвращает его без изменений
func (uc *UseCase) Execute(ctx context.Context, reference string) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateReference(reference); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("VerifyPayment: reference=%s", reference)

	// 2. Бронирование по референсу
	booking, err := uc.bookingRepo.GetByPaymentReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("VerifyPayment: no booking for reference=%s", reference)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("VerifyPayment: failed to get booking by reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if booking.Status == domain.StatusPaid {
		uc.logger.Info("VerifyPayment: booking id=%d already paid", booking.ID)
		return booking, nil
	}
	if !booking.IsAwaitingPayment() {
		uc.logger.Warn("VerifyPayment: booking id=%d has status=%s", booking.ID, booking.Status)
		return nil, ErrPaymentNotAllowed
	}

	// 3. Статус транзакции у шлюза
	tx, err := uc.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		if errors.Is(err, paystack.ErrTransactionNotFound) {
			uc.metrics.IncPayment("failed")
			uc.logger.Warn("VerifyPayment: gateway has no transaction reference=%s", reference)
			return nil, fmt.Errorf("%w: transaction not found", ErrPaymentNotSuccessful)
		}
		uc.logger.Error("VerifyPayment: gateway error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: %w", ErrPaymentProvider, err)
	}

	if err := validateTransaction(tx, booking); err != nil {
		uc.metrics.IncPayment("failed")
		uc.logger.Warn("VerifyPayment: booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	paidAt := uc.timeProvider.Now()
	if tx.PaidAt != nil {
		paidAt = *tx.PaidAt
	}

	// 4. Условный перевод в paid
	var result *domain.Booking
	transitioned := false

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		updated, err := uc.bookingRepo.MarkPaid(txCtx, booking.ID, reference, paidAt)
		if err != nil {
			return fmt.Errorf("%w: failed to mark paid: %w", ErrInternal, err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}

		if !updated {
			if current.Status == domain.StatusPaid {
				result = current
				return nil
			}
			return ErrPaymentNotAllowed
		}

		err = uc.bookingRepo.AddStatusHistory(txCtx, domain.StatusChange{
			BookingID: booking.ID,
			From:      domain.StatusApproved,
			To:        domain.StatusPaid,
			ChangedAt: paidAt,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to add status history: %w", ErrInternal, err)
		}

		result = current
		transitioned = true
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrPaymentNotAllowed) {
			uc.logger.Warn("VerifyPayment: booking id=%d changed status concurrently", booking.ID)
		} else {
			uc.logger.Error("VerifyPayment: failed to mark booking id=%d paid: %v", booking.ID, err)
		}
		return nil, err
	}

	if transitioned {
		uc.metrics.IncPayment("success")
		uc.metrics.IncBookingTransition(string(result.Type), string(domain.StatusPaid))
		uc.notifier.BookingStatusChanged(ctx, result)
		uc.logger.Info("VerifyPayment: booking id=%d paid, reference=%s", result.ID, reference)
	}

	return result, nil
}

// HandleWebhook проверяет подпись и обрабатывает событие charge.success
// Прочие события подтверждаются и игнорируются
func (uc *UseCase) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if !uc.gateway.VerifySignature(body, signature) {
		uc.logger.Warn("PaymentWebhook: invalid signature")
		return ErrInvalidSignature
	}

	var event paystack.Event
	if err := json.Unmarshal(body, &event); err != nil {
		uc.logger.Warn("PaymentWebhook: invalid payload: %v", err)
		return fmt.Errorf("%w: invalid payload: %w", ErrInvalidInput, err)
	}

	if event.Event != paystack.EventChargeSuccess {
		uc.logger.Info("PaymentWebhook: ignoring event=%s", event.Event)
		return nil
	}

	_, err := uc.Execute(ctx, event.Data.Reference)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrPaymentNotSuccessful),
		errors.Is(err, ErrPaymentNotAllowed),
		errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("PaymentWebhook: event for reference=%s acknowledged without change: %v", event.Data.Reference, err)
		return nil
	default:
		return err
	}
}
