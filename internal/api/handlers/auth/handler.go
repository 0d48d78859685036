package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	authService "github.com/m04kA/InternHub-Service/internal/service/auth"
	"github.com/m04kA/InternHub-Service/internal/service/auth/models"
)

const (
	msgUnauthorized = "authentication required"
	msgMailDelivery = "failed to send verification code, try again later"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/register - Invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/register", err)
		return
	}

	h.logger.Info("POST /auth/register - Student registered, verification code sent")
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Login POST /api/v1/auth/login
// Успешная проверка пароля отправляет OTP, токен выдается после /auth/verify-otp
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/login - Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/login", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// VerifyOTP POST /api/v1/auth/verify-otp
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/verify-otp - Invalid request body")
		return
	}

	result, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/verify-otp", err)
		return
	}

	h.logger.Info("POST /auth/verify-otp - Token issued: user_id=%d, purpose=%s", result.User.ID, req.Purpose)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ResendOTP POST /api/v1/auth/resend-otp
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.ResendOTPRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/resend-otp - Invalid request body")
		return
	}

	result, err := h.service.ResendOTP(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/resend-otp", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ForgotPassword POST /api/v1/auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/forgot-password - Invalid request body")
		return
	}

	result, err := h.service.ForgotPassword(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/forgot-password", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ResetPassword POST /api/v1/auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /auth/reset-password - Invalid request body")
		return
	}

	result, err := h.service.ResetPassword(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/reset-password", err)
		return
	}

	h.logger.Info("POST /auth/reset-password - Password reset completed")
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Me GET /api/v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /auth/me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, authService.ErrInvalidCredentials),
		errors.Is(err, authService.ErrInvalidOTP),
		errors.Is(err, authService.ErrOTPExpired):
		h.logger.Warn("%s - Rejected: %v", route, err)
		handlers.RespondUnauthorized(w, rootMessage(err))
	case errors.Is(err, authService.ErrEmailTaken):
		handlers.RespondConflict(w, authService.ErrEmailTaken.Error())
	case errors.Is(err, authService.ErrOTPAttemptsExceeded),
		errors.Is(err, authService.ErrOTPTooSoon),
		errors.Is(err, authService.ErrTooManyRequests):
		h.logger.Warn("%s - Throttled: %v", route, err)
		handlers.RespondTooManyRequests(w, rootMessage(err))
	case errors.Is(err, authService.ErrWeakPassword),
		errors.Is(err, authService.ErrInvalidPurpose),
		errors.Is(err, authService.ErrInvalidInput):
		handlers.RespondBadRequest(w, rootMessage(err))
	case errors.Is(err, authService.ErrUserNotFound):
		handlers.RespondNotFound(w, authService.ErrUserNotFound.Error())
	case errors.Is(err, authService.ErrMailDelivery):
		h.logger.Error("%s - Mail delivery failed: %v", route, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgMailDelivery)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

// rootMessage возвращает текст первой sentinel-ошибки в цепочке
func rootMessage(err error) string {
	for _, sentinel := range []error{
		authService.ErrInvalidCredentials,
		authService.ErrInvalidOTP,
		authService.ErrOTPExpired,
		authService.ErrOTPAttemptsExceeded,
		authService.ErrOTPTooSoon,
		authService.ErrTooManyRequests,
		authService.ErrWeakPassword,
		authService.ErrInvalidPurpose,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return authService.ErrInvalidInput.Error()
}
