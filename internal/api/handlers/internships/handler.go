package internships

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/service/catalog"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

const (
	msgInvalidInternshipID = "invalid internship ID"
	msgInvalidParams       = "invalid query parameters"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/internships
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r)
	if err != nil {
		h.logger.Warn("GET /internships - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListInternships(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /internships", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/internships/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInternshipID)
		return
	}

	result, err := h.service.GetInternship(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /internships/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/internships
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.InternshipRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /admin/internships - Invalid request body")
		return
	}

	result, err := h.service.CreateInternship(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/internships", err)
		return
	}

	h.logger.Info("POST /admin/internships - Internship created: internship_id=%d, company_id=%d", result.ID, result.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/internships/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInternshipID)
		return
	}

	var req models.InternshipRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("PUT /admin/internships/{id} - Invalid request body: internship_id=%d", id)
		return
	}

	result, err := h.service.UpdateInternship(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/internships/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/internships/{id} - Internship updated: internship_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/internships/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInternshipID)
		return
	}

	if err := h.service.DeleteInternship(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/internships/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/internships/{id} - Internship deleted: internship_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInternshipNotFound):
		handlers.RespondNotFound(w, catalog.ErrInternshipNotFound.Error())
	case errors.Is(err, catalog.ErrCompanyNotFound):
		handlers.RespondBadRequest(w, catalog.ErrCompanyNotFound.Error())
	case errors.Is(err, catalog.ErrInternshipInUse):
		handlers.RespondConflict(w, catalog.ErrInternshipInUse.Error())
	case errors.Is(err, catalog.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
