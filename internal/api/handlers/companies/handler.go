package companies

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/catalog"
)

const (
	msgInvalidCompanyID  = "invalid company ID"
	msgInvalidIndustryID = "invalid industryId"
	msgInvalidForm       = "invalid multipart form or file is too large"
	msgInvalidImage      = "logo must be a JPEG, PNG or WEBP image up to 2 MB"

	multipartOverheadBytes = 1 << 20
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

// List GET /api/v1/companies?industryId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	industryID, err := handlers.QueryInt64(r, "industryId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidIndustryID)
		return
	}

	result, err := h.service.ListCompanies(r.Context(), industryID)
	if err != nil {
		h.respondError(w, "GET /companies", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/companies/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /companies/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/companies
// multipart/form-data: industryId, name, description, website, location, logo
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := handlers.ParseMultipart(w, r, domain.MaxImageSizeBytes+multipartOverheadBytes); err != nil {
		h.logger.Warn("POST /admin/companies - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	req, err := companyFromForm(r)
	if err != nil {
		h.logger.Warn("POST /admin/companies - Invalid fields: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, fields)
		return
	}

	logo, err := handlers.FormFile(r, "logo")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer logo.Close()

	result, err := h.service.CreateCompany(r.Context(), req, logo.ToUpload())
	if err != nil {
		h.respondError(w, "POST /admin/companies", err)
		return
	}

	h.logger.Info("POST /admin/companies - Company created: company_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/companies/{id}
// Без файла logo текущий логотип сохраняется, removeLogo=true удаляет его
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	if err := handlers.ParseMultipart(w, r, domain.MaxImageSizeBytes+multipartOverheadBytes); err != nil {
		h.logger.Warn("PUT /admin/companies/{id} - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	req, err := companyFromForm(r)
	if err != nil {
		h.logger.Warn("PUT /admin/companies/{id} - Invalid fields: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, fields)
		return
	}

	logo, err := handlers.FormFile(r, "logo")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer logo.Close()

	result, err := h.service.UpdateCompany(r.Context(), id, req, logo.ToUpload())
	if err != nil {
		h.respondError(w, "PUT /admin/companies/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/companies/{id} - Company updated: company_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/companies/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	if err := h.service.DeleteCompany(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/companies/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/companies/{id} - Company deleted: company_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrCompanyNotFound):
		handlers.RespondNotFound(w, catalog.ErrCompanyNotFound.Error())
	case errors.Is(err, catalog.ErrCompanyInUse):
		handlers.RespondConflict(w, catalog.ErrCompanyInUse.Error())
	case errors.Is(err, catalog.ErrIndustryNotFound):
		handlers.RespondBadRequest(w, catalog.ErrIndustryNotFound.Error())
	case errors.Is(err, catalog.ErrInvalidImage):
		h.logger.Warn("%s - Invalid logo: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidImage)
	case errors.Is(err, catalog.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
