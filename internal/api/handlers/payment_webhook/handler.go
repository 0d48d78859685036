package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	verifyPayment "github.com/m04kA/InternHub-Service/internal/usecase/verify_payment"
)

const (
	signatureHeader = "x-paystack-signature"
	maxBodyBytes    = 1 << 20

	msgInvalidBody      = "invalid request body"
	msgInvalidSignature = "invalid signature"
)

type Handler struct {
	useCase WebhookUseCase
	logger  Logger
}

func NewHandler(useCase WebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Подпись считается по сырому телу, поэтому JSON не декодируется здесь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err = h.useCase.HandleWebhook(r.Context(), r.Header.Get(signatureHeader), body)
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature")
			handlers.RespondUnauthorized(w, msgInvalidSignature)
		case errors.Is(err, verifyPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)
		default:
			// 5xx заставит Paystack повторить доставку
			h.logger.Error("POST /payments/webhook - Failed to handle event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
