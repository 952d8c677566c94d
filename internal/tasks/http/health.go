package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

// readyTimeout bounds the store ping so a hung database fails the probe
// instead of hanging it.
const readyTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	Version string
	Started time.Time
	Store   store.Store
	Tokens  *service.TokenService
}

func (h *HealthHandler) base(status string) tasksdk.HealthResponse {
	return tasksdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Truncate(time.Second).String(),
		Version: h.Version,
	}
}

// HandleLive godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is up, no dependencies are checked
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tasksdk.HealthResponse
//	@Router			/livez [get]
func (h *HealthHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.base("ok"))
}

// HandleReady godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the store and signs a throwaway token, 503 if either fails
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tasksdk.HealthResponse
//	@Failure		503	{object}	tasksdk.HealthResponse
//	@Router			/readyz [get]
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := &tasksdk.HealthChecks{Database: "ok", Signer: "ok"}
	if err := h.Store.Ping(ctx); err != nil {
		checks.Database = "error: " + err.Error()
	}
	if _, _, err := h.Tokens.Issue("readyz"); err != nil {
		checks.Signer = "error: " + err.Error()
	}

	resp := h.base("ok")
	resp.Checks = checks

	status := http.StatusOK
	if checks.Database != "ok" || checks.Signer != "ok" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	httpx.WriteJSON(w, status, resp)
}
