package industries

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/service/catalog"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

const msgInvalidIndustryID = "invalid industry ID"

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

// List GET /api/v1/industries
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListIndustries(r.Context())
	if err != nil {
		h.respondError(w, "GET /industries", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/industries
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIndustryRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /admin/industries - Invalid request body")
		return
	}

	result, err := h.service.CreateIndustry(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/industries", err)
		return
	}

	h.logger.Info("POST /admin/industries - Industry created: industry_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/admin/industries/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidIndustryID)
		return
	}

	if err := h.service.DeleteIndustry(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/industries/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/industries/{id} - Industry deleted: industry_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrIndustryNotFound):
		handlers.RespondNotFound(w, catalog.ErrIndustryNotFound.Error())
	case errors.Is(err, catalog.ErrIndustryExists):
		handlers.RespondConflict(w, catalog.ErrIndustryExists.Error())
	case errors.Is(err, catalog.ErrIndustryInUse):
		h.logger.Warn("%s - Industry in use: %v", route, err)
		handlers.RespondConflict(w, catalog.ErrIndustryInUse.Error())
	case errors.Is(err, catalog.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
