package initialize_payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
)

// ReferencePrefix префикс референсов платежей
const ReferencePrefix = "IH-"

// UseCase use case для инициализации оплаты менторской сессии
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	gateway     PaymentGateway
	metrics     Metrics
	config      Config
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	gateway PaymentGateway,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		metrics:     metrics,
		config:      config,
		logger:      logger,
	}
}

// Execute выполняет use case инициализации оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitializePayment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("InitializePayment: user=%d, booking=%d", req.UserID, req.BookingID)

	// 2. Бронирование должно принадлежать пользователю и ожидать оплаты
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("InitializePayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("InitializePayment: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if err := validateBooking(booking, req.UserID); err != nil {
		uc.logger.Warn("InitializePayment: booking id=%d rejected: %v", booking.ID, err)
		return nil, err
	}

	// 3. Ссылка уже выдавалась: возвращаем ее же, не обращаясь к шлюзу.
	// Новый референс оставил бы оплату по старой ссылке без бронирования
	if resp, ok := storedPayment(booking); ok {
		uc.logger.Info("InitializePayment: booking id=%d reuses reference=%s", booking.ID, resp.Reference)
		return resp, nil
	}

	// 4. Email плательщика
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("InitializePayment: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
	}

	// 5. Референс без сохраненной ссылки инициализируется повторно с тем же значением
	reference := ReferencePrefix + uuid.NewString()
	reused := false
	if booking.PaymentReference != nil && *booking.PaymentReference != "" {
		reference = *booking.PaymentReference
		reused = true
	}

	result, err := uc.initialize(ctx, booking.ID, user.Email, booking.Amount, booking.Currency, reference)
	if err != nil {
		uc.metrics.IncPayment("initialize_failed")
		uc.logger.Error("InitializePayment: gateway error for booking id=%d reference=%s: %v", booking.ID, reference, err)
		return nil, fmt.Errorf("%w: %w", ErrPaymentProvider, err)
	}

	// 6. Сохраняем референс вместе со ссылкой
	if !reused {
		err := uc.bookingRepo.SetPaymentReference(ctx, booking.ID, reference, result.AuthorizationURL, result.AccessCode)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return uc.concurrentInitialize(ctx, booking.ID)
			}
			uc.logger.Error("InitializePayment: failed to store reference for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to store reference: %w", ErrInternal, err)
		}
	}

	uc.metrics.IncPayment("initialized")
	uc.logger.Info("InitializePayment: booking id=%d reference=%s", booking.ID, reference)

	return &Response{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        reference,
		Amount:           booking.Amount,
		Currency:         booking.Currency,
	}, nil
}

// concurrentInitialize обрабатывает проигранную гонку за референс:
// параллельный запрос уже записал свою ссылку, либо статус сменился
func (uc *UseCase) concurrentInitialize(ctx context.Context, bookingID int64) (*Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("InitializePayment: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
	}

	if booking.Status == domain.StatusApproved {
		if resp, ok := storedPayment(booking); ok {
			uc.logger.Info("InitializePayment: booking id=%d initialized concurrently, reference=%s", bookingID, resp.Reference)
			return resp, nil
		}
	}

	uc.logger.Warn("InitializePayment: booking id=%d changed status concurrently", bookingID)
	if booking.Status == domain.StatusPaid {
		return nil, ErrAlreadyPaid
	}
	return nil, ErrPaymentNotAllowed
}

func storedPayment(booking *domain.Booking) (*Response, bool) {
	if booking.PaymentReference == nil || *booking.PaymentReference == "" {
		return nil, false
	}
	if booking.PaymentURL == nil || *booking.PaymentURL == "" {
		return nil, false
	}

	resp := &Response{
		AuthorizationURL: *booking.PaymentURL,
		Reference:        *booking.PaymentReference,
		Amount:           booking.Amount,
		Currency:         booking.Currency,
	}
	if booking.PaymentAccess != nil {
		resp.AccessCode = *booking.PaymentAccess
	}
	return resp, true
}

func (uc *UseCase) initialize(ctx context.Context, bookingID int64, email string, amount int64, currency, reference string) (*paystack.InitializeResult, error) {
	return uc.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      amount,
		Currency:    currency,
		Reference:   reference,
		CallbackURL: uc.config.CallbackURL,
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(bookingID, 10),
		},
	})
}
