package http_handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/account-service/internal/logger"
	"github.com/baechuer/account-service/internal/transport/http/response"
)

// Pinger is anything readiness depends on: the user store, the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler takes the named dependencies /readyz checks. Nil entries are skipped.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, p := range h.deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			logger.WithCtx(r.Context()).Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  name + " unavailable",
			})
			return
		}
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
