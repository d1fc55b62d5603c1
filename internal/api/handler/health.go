package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

const readinessTimeout = 3 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	storage ports.SessionStorage
	backend ports.Backend
}

func NewHealthHandler(storage ports.SessionStorage, backend ports.Backend) *HealthHandler {
	return &HealthHandler{storage: storage, backend: backend}
}

// Liveness reports that the process is up.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Readiness checks session storage and the backend.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{"session_storage": "ok", "backend": "ok"}
	status := http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		checks["session_storage"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.backend.Ping(ctx); err != nil {
		checks["backend"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	resp := healthResponse{Status: "ok", Checks: checks}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}
	return c.JSON(status, resp)
}
