package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// StatusResponse состояние сервиса и его зависимостей
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks map[string]Pinger
	logger Logger
}

func NewHandler(checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := StatusResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, pinger := range h.checks {
		if err := pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /api/v1/health - %s is unavailable: %v", name, err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}

// PingFunc адаптер функции к Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}
