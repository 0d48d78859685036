package initialize_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	initializePayment "github.com/m04kA/InternHub-Service/internal/usecase/initialize_payment"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidBookingID   = "invalid booking ID"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "only the owner can pay for a booking"
	msgAlreadyPaid        = "booking is already paid"
	msgPaymentNotAllowed  = "booking is not awaiting payment"
	msgPaymentUnavailable = "payment provider is unavailable, try again later"
)

type Handler struct {
	useCase InitializePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitializePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &initializePayment.Request{
		UserID:    userID,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, initializePayment.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, initializePayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment - Not an owner: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, initializePayment.ErrAlreadyPaid):
			handlers.RespondConflict(w, msgAlreadyPaid)
		case errors.Is(err, initializePayment.ErrPaymentNotAllowed):
			handlers.RespondConflict(w, msgPaymentNotAllowed)
		case errors.Is(err, initializePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)
		case errors.Is(err, initializePayment.ErrPaymentProvider):
			h.logger.Error("POST /bookings/{id}/payment - Provider error: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)
		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to initialize payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment initialized: booking_id=%d, reference=%s", bookingID, result.Reference)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
