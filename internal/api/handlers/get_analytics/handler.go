package get_analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/service/analytics"
	"github.com/m04kA/InternHub-Service/internal/service/analytics/models"
)

const (
	msgUnauthorized = "authentication required"
	msgInvalidRange = "invalid date range, expected from/to as YYYY-MM-DD with from <= to"
	msgForbidden    = "access denied"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/analytics?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	req := &models.SummaryRequest{}
	if v := query.Get("from"); v != "" {
		req.From = &v
	}
	if v := query.Get("to"); v != "" {
		req.To = &v
	}

	result, err := h.service.GetSummary(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidRange):
			h.logger.Warn("GET /admin/analytics - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, analytics.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /admin/analytics - Failed to build summary: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/analytics - Summary built: user_id=%d, from=%s, to=%s", actor.UserID, result.From, result.To)
	handlers.RespondJSON(w, http.StatusOK, result)
}
