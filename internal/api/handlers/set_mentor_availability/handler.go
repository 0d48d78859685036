package set_mentor_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/mentors"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
)

const (
	msgUnauthorized        = "authentication required"
	msgInvalidMentorID     = "invalid mentor ID"
	msgMentorNotFound      = "mentor not found"
	msgForbidden           = "you cannot manage mentors of this industry"
	msgInvalidAvailability = "invalid availability windows"
)

type Handler struct {
	service MentorService
	logger  Logger
}

func NewHandler(service MentorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/mentors/{id}/availability
// Расписание заменяется целиком, пустой список удаляет все окна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	mentorID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	var req models.SetAvailabilityRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("PUT /admin/mentors/{id}/availability - Invalid request body: mentor_id=%d", mentorID)
		return
	}

	result, err := h.service.SetAvailability(r.Context(), actor, mentorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, mentors.ErrMentorNotFound):
			handlers.RespondNotFound(w, msgMentorNotFound)
		case errors.Is(err, mentors.ErrAccessDenied):
			h.logger.Warn("PUT /admin/mentors/{id}/availability - Access denied: mentor_id=%d, user_id=%d", mentorID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, mentors.ErrInvalidAvailability):
			h.logger.Warn("PUT /admin/mentors/{id}/availability - Invalid windows: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAvailability+": "+validationDetail(err))
		default:
			h.logger.Error("PUT /admin/mentors/{id}/availability - Failed to set availability: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/mentors/{id}/availability - Availability replaced: mentor_id=%d, windows=%d",
		mentorID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// validationDetail убирает префикс sentinel-ошибки из текста
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), mentors.ErrInvalidAvailability.Error()+": ")
}
