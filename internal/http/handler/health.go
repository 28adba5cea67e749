package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatops.app/courier/internal/health"
)

type HealthHandler struct {
	store health.Pinger
	cfg   health.Config
}

func NewHealthHandler(store health.Pinger, cfg health.Config) *HealthHandler {
	return &HealthHandler{store: store, cfg: cfg}
}

// Check always answers 200 within the probe timeout; an unreachable store is
// reported in the body, not as an HTTP failure, so the UI can render the
// diagnostic.
func (h *HealthHandler) Check(c *gin.Context) {
	status := health.Probe(c.Request.Context(), h.store, h.cfg)
	c.JSON(http.StatusOK, status)
}
