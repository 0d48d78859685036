package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
	verifyPayment "github.com/m04kA/InternHub-Service/internal/usecase/verify_payment"
)

const (
	msgMissingReference    = "reference is required"
	msgBookingNotFound     = "no booking matches this payment reference"
	msgPaymentNotSucceeded = "payment was not successful"
	msgPaymentNotAllowed   = "booking is not awaiting payment"
	msgPaymentUnavailable  = "payment provider is unavailable, try again later"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/verify?reference=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		// Paystack добавляет к callback URL оба параметра
		reference = r.URL.Query().Get("trxref")
	}
	if reference == "" {
		handlers.RespondBadRequest(w, msgMissingReference)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingReference)
		case errors.Is(err, verifyPayment.ErrBookingNotFound):
			h.logger.Warn("GET /payments/verify - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, verifyPayment.ErrPaymentNotSuccessful):
			h.logger.Warn("GET /payments/verify - Payment not successful: reference=%s", reference)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotSucceeded)
		case errors.Is(err, verifyPayment.ErrPaymentNotAllowed):
			handlers.RespondConflict(w, msgPaymentNotAllowed)
		case errors.Is(err, verifyPayment.ErrPaymentProvider):
			h.logger.Error("GET /payments/verify - Provider error: reference=%s, error=%v", reference, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)
		default:
			h.logger.Error("GET /payments/verify - Failed to verify payment: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/verify - Payment verified: booking_id=%d, reference=%s", booking.ID, reference)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
