package admins

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/admins"
	"github.com/m04kA/InternHub-Service/internal/service/admins/models"
)

const (
	msgUnauthorized   = "authentication required"
	msgInvalidAdminID = "invalid admin ID"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/admins
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("POST /admin/admins - Invalid request body")
		return
	}

	result, err := h.service.CreateAdmin(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/admins", err)
		return
	}

	h.logger.Info("POST /admin/admins - Admin created: admin_id=%d, role=%s", result.ID, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/admin/admins
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAdmins(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/admins", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateIndustries PUT /api/v1/admin/admins/{id}/industries
func (h *Handler) UpdateIndustries(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	var req models.UpdateIndustriesRequest
	if !handlers.DecodeAndValidate(w, r, &req) {
		h.logger.Warn("PUT /admin/admins/{id}/industries - Invalid request body: admin_id=%d", id)
		return
	}

	result, err := h.service.UpdateAdminIndustries(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/admins/{id}/industries", err)
		return
	}

	h.logger.Info("PUT /admin/admins/{id}/industries - Industries replaced: admin_id=%d, count=%d", id, len(result.IndustryIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/admins/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	if err := h.service.DeleteAdmin(r.Context(), callerID, id); err != nil {
		h.respondError(w, "DELETE /admin/admins/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/admins/{id} - Admin deleted: admin_id=%d, by=%d", id, callerID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, admins.ErrAdminNotFound):
		handlers.RespondNotFound(w, admins.ErrAdminNotFound.Error())
	case errors.Is(err, admins.ErrEmailTaken):
		handlers.RespondConflict(w, admins.ErrEmailTaken.Error())
	case errors.Is(err, admins.ErrCannotDeleteSelf):
		handlers.RespondConflict(w, admins.ErrCannotDeleteSelf.Error())
	case errors.Is(err, admins.ErrIndustriesRequired),
		errors.Is(err, admins.ErrUnknownIndustry),
		errors.Is(err, admins.ErrNotIndustryAdmin),
		errors.Is(err, admins.ErrWeakPassword),
		errors.Is(err, admins.ErrInvalidInput):
		h.logger.Warn("%s - Rejected: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
