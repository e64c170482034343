package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessFunc reports whether the service can answer telemetry queries.
type ReadinessFunc func() bool

type HealthHandler struct {
	ready   ReadinessFunc
	targets func() []string
}

func NewHealthHandler(ready ReadinessFunc, targets func() []string) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	if targets == nil {
		targets = func() []string { return nil }
	}
	return &HealthHandler{ready: ready, targets: targets}
}

type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp string            `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health godoc
// @Summary Service health
// @Description Reports overall service health and per-check status
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	targets := h.targets()
	if len(targets) == 0 {
		checks["targets"] = "none monitored"
		status = "unhealthy"
	} else {
		checks["targets"] = "healthy"
	}

	if h.ready() {
		checks["engine"] = "healthy"
	} else {
		checks["engine"] = "waiting for first summary"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Description Ready once every target has produced a summary
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.ready() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Live godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
