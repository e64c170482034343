package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/orchestrator"
	"github.com/OldStager01/host-sentinel/pkg/models"
	"github.com/OldStager01/host-sentinel/pkg/validation"
)

// SummarySource is the read side of the orchestrator.
type SummarySource interface {
	Latest(target string) (*models.Summary, error)
	Targets() []string
}

// ExportNotifier is told about every export file written through the API.
type ExportNotifier func(target, format, path string)

type TelemetryHandler struct {
	source   SummarySource
	exporter *export.Exporter
	notify   ExportNotifier
}

func NewTelemetryHandler(source SummarySource, exporter *export.Exporter, notify ExportNotifier) *TelemetryHandler {
	return &TelemetryHandler{
		source:   source,
		exporter: exporter,
		notify:   notify,
	}
}

type AlertsResponse struct {
	Target  string               `json:"target" example:"web-01"`
	Active  []models.AlertRecord `json:"active"`
	History []models.AlertRecord `json:"history"`
}

type HistoryResponse struct {
	Target string    `json:"target" example:"web-01"`
	Metric string    `json:"metric" example:"cpu"`
	Values []float64 `json:"values"`
	Count  int       `json:"count" example:"30"`
}

type ForecastResponse struct {
	Target    string                           `json:"target" example:"web-01"`
	Forecasts map[string]models.ForecastResult `json:"forecasts"`
}

type ExportResponse struct {
	Target string `json:"target" example:"web-01"`
	Format string `json:"format" example:"json"`
	Path   string `json:"path" example:"exports/report_20240115_103000.json"`
}

// latest resolves the ?target= query (default: first monitored target) and
// writes the error response itself when no summary is available.
func (h *TelemetryHandler) latest(c *gin.Context) (*models.Summary, bool) {
	target := validation.SanitizeString(c.Query("target"))
	if target == "" {
		targets := h.source.Targets()
		if len(targets) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no targets monitored"})
			return nil, false
		}
		target = targets[0]
	} else if err := validation.ValidateTargetName(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	summary, err := h.source.Latest(target)
	if err != nil {
		if errors.Is(err, orchestrator.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch summary"})
		return nil, false
	}
	if summary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no summary produced yet"})
		return nil, false
	}
	return summary, true
}

// Summary godoc
// @Summary Latest summary
// @Description Everything derived from the most recent tick of a target
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param target query string false "Target name (defaults to the first monitored target)"
// @Success 200 {object} models.Summary
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 404 {object} map[string]string "Target not found"
// @Failure 503 {object} map[string]string "No summary yet"
// @Router /api/v1/summary [get]
func (h *TelemetryHandler) Summary(c *gin.Context) {
	summary, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Alerts godoc
// @Summary Alerts
// @Description Active notification log and alert history of a target
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param target query string false "Target name"
// @Success 200 {object} AlertsResponse
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 503 {object} map[string]string "No summary yet"
// @Router /api/v1/alerts [get]
func (h *TelemetryHandler) Alerts(c *gin.Context) {
	summary, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AlertsResponse{
		Target:  summary.Target,
		Active:  nonNil(summary.ActiveNotifications),
		History: nonNil(summary.AlertHistory),
	})
}

// History godoc
// @Summary Metric history
// @Description Bounded history window of one metric, oldest first
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param metric path string true "cpu, ram, disk or network"
// @Param target query string false "Target name"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} map[string]string "Unknown metric"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 503 {object} map[string]string "No summary yet"
// @Router /api/v1/history/{metric} [get]
func (h *TelemetryHandler) History(c *gin.Context) {
	metric := strings.ToLower(validation.SanitizeString(c.Param("metric")))
	if err := validation.ValidateMetricName(metric); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, ok := h.latest(c)
	if !ok {
		return
	}

	values := summary.History[metric]
	if values == nil {
		values = []float64{}
	}
	c.JSON(http.StatusOK, HistoryResponse{
		Target: summary.Target,
		Metric: metric,
		Values: values,
		Count:  len(values),
	})
}

// Forecast godoc
// @Summary Forecasts
// @Description Short-horizon trend forecasts for CPU and RAM
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param target query string false "Target name"
// @Success 200 {object} ForecastResponse
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 503 {object} map[string]string "No summary yet"
// @Router /api/v1/forecast [get]
func (h *TelemetryHandler) Forecast(c *gin.Context) {
	summary, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ForecastResponse{
		Target:    summary.Target,
		Forecasts: summary.Forecasts,
	})
}

// Export godoc
// @Summary Write an export
// @Description Writes the latest summary to the export directory
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param format query string false "json, csv, text or yaml" default(json)
// @Param target query string false "Target name"
// @Success 201 {object} ExportResponse
// @Failure 400 {object} map[string]string "Unknown format"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 503 {object} map[string]string "No summary yet"
// @Router /api/v1/exports [post]
func (h *TelemetryHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, ok := h.latest(c)
	if !ok {
		return
	}

	path, err := h.exporter.Write(summary, format)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export"})
		return
	}

	if h.notify != nil {
		h.notify(summary.Target, string(format), path)
	}

	c.JSON(http.StatusCreated, ExportResponse{
		Target: summary.Target,
		Format: string(format),
		Path:   path,
	})
}

func nonNil(records []models.AlertRecord) []models.AlertRecord {
	if records == nil {
		return []models.AlertRecord{}
	}
	return records
}
