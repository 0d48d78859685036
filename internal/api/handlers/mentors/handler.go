package mentors

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/mentors"
)

const (
	msgInvalidMentorID   = "invalid mentor ID"
	msgInvalidIndustryID = "invalid industryId"
	msgInvalidForm       = "invalid multipart form or file is too large"

	multipartOverheadBytes = 1 << 20
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

// List GET /api/v1/mentors?industryId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /mentors", false)
}

// AdminList GET /api/v1/admin/mentors?industryId=
// Включает неактивных менторов
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /admin/mentors", true)
}

// Get GET /api/v1/mentors/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.Get(r.Context(), id, false)
	if err != nil {
		h.respondError(w, "GET /mentors/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/mentors
// multipart/form-data: industryId, fullName, email, title, company, bio,
// sessionPrice (kobo), sessionDurationMinutes, isActive, photo
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := handlers.ParseMultipart(w, r, domain.MaxImageSizeBytes+multipartOverheadBytes); err != nil {
		h.logger.Warn("POST /admin/mentors - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	req, err := mentorFromForm(r)
	if err != nil {
		h.logger.Warn("POST /admin/mentors - Invalid fields: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, fields)
		return
	}

	photo, err := handlers.FormFile(r, "photo")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer photo.Close()

	result, err := h.service.Create(r.Context(), req, photo.ToUpload())
	if err != nil {
		h.respondError(w, "POST /admin/mentors", err)
		return
	}

	h.logger.Info("POST /admin/mentors - Mentor created: mentor_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/mentors/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	if err := handlers.ParseMultipart(w, r, domain.MaxImageSizeBytes+multipartOverheadBytes); err != nil {
		h.logger.Warn("PUT /admin/mentors/{id} - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	req, err := mentorFromForm(r)
	if err != nil {
		h.logger.Warn("PUT /admin/mentors/{id} - Invalid fields: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, fields)
		return
	}

	photo, err := handlers.FormFile(r, "photo")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer photo.Close()

	result, err := h.service.Update(r.Context(), id, req, photo.ToUpload())
	if err != nil {
		h.respondError(w, "PUT /admin/mentors/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/mentors/{id} - Mentor updated: mentor_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/mentors/{id}
// Ментор с бронированиями деактивируется, а не удаляется
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, "DELETE /admin/mentors/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/mentors/{id} - Mentor removed: mentor_id=%d, deactivated=%t", id, result.Deactivated)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, includeInactive bool) {
	industryID, err := handlers.QueryInt64(r, "industryId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidIndustryID)
		return
	}

	result, err := h.service.List(r.Context(), industryID, includeInactive)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, mentors.ErrMentorNotFound):
		handlers.RespondNotFound(w, mentors.ErrMentorNotFound.Error())
	case errors.Is(err, mentors.ErrIndustryNotFound):
		handlers.RespondBadRequest(w, mentors.ErrIndustryNotFound.Error())
	case errors.Is(err, mentors.ErrInvalidImage),
		errors.Is(err, mentors.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, mentors.ErrAccessDenied):
		handlers.RespondForbidden(w, mentors.ErrAccessDenied.Error())
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
