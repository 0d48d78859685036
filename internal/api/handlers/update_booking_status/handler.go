package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/bookings"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
)

const (
	msgUnauthorized      = "authentication required"
	msgInvalidBookingID  = "invalid booking ID"
	msgNotFound          = "booking not found"
	msgForbidden         = "you cannot manage bookings of this industry"
	msgInvalidStatus     = "status must be approved or rejected"
	msgReasonRequired    = "reason is required when rejecting a booking"
	msgInvalidTransition = "status transition is not allowed"
	msgInvalidInput      = "invalid request data"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.UpdateStatusRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: booking_id=%d", id)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Access denied: booking_id=%d, user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, bookings.ErrReasonRequired):
			handlers.RespondBadRequest(w, msgReasonRequired)
		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid transition: booking_id=%d, error=%v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status updated: booking_id=%d, status=%s, user_id=%d",
		id, booking.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
