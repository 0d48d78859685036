package book_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
	bookSession "github.com/m04kA/InternHub-Service/internal/usecase/book_session"
	"github.com/m04kA/InternHub-Service/pkg/types"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidMentorID    = "invalid mentor ID"
	msgInvalidDate        = "invalid session date, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid start time, expected HH:MM"
	msgMentorNotFound     = "mentor not found"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgDuplicateBooking   = "you already have a session with this mentor on this date"
	msgInvalidBookingDate = "session date must not be in the past"
	msgDateTooFar         = "session date is too far in the future"
	msgInvalidTimeSlot    = "the selected time is not a valid slot"
	msgTooLateToBook      = "it is too late to book this slot"
	msgInvalidInput       = "invalid booking data"
)

type Handler struct {
	useCase BookSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{id}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	mentorID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/bookings - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	var req BookSessionRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /mentors/{id}/bookings - Invalid request body: user_id=%d", userID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, mentorID)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/bookings - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSession.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/bookings - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)
		case errors.Is(err, bookSession.ErrSlotNotAvailable):
			h.logger.Warn("POST /mentors/{id}/bookings - Slot not available: user_id=%d, mentor_id=%d", userID, mentorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, bookSession.ErrDuplicateBooking):
			h.logger.Warn("POST /mentors/{id}/bookings - Duplicate booking: user_id=%d, mentor_id=%d", userID, mentorID)
			handlers.RespondConflict(w, msgDuplicateBooking)
		case errors.Is(err, bookSession.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)
		case errors.Is(err, bookSession.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, bookSession.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		case errors.Is(err, bookSession.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)
		case errors.Is(err, bookSession.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /mentors/{id}/bookings - Failed to book session: user_id=%d, mentor_id=%d, error=%v",
				userID, mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/bookings - Session booked: booking_id=%d, user_id=%d, mentor_id=%d, status=%s",
		booking.ID, userID, mentorID, booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}
