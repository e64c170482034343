package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/host-sentinel/internal/auth"
	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/orchestrator"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSource struct {
	summaries map[string]*models.Summary
	order     []string
}

func (f *fakeSource) Latest(target string) (*models.Summary, error) {
	s, ok := f.summaries[target]
	if !ok {
		return nil, orchestrator.ErrTargetNotFound
	}
	return s, nil
}

func (f *fakeSource) Targets() []string {
	return f.order
}

func testSummary() *models.Summary {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	alert := models.NewAlertRecord("cpu", models.AlertCritical, "CRITICAL: CPU at 97.0%", at)
	return &models.Summary{
		Target:       "web-01",
		Timestamp:    at,
		Tick:         3,
		State:        models.StateSteady,
		Snapshot:     models.RawSnapshot{Timestamp: at, Hostname: "web-01", CPUPercent: models.Value(97)},
		HealthScore:  70,
		HealthStatus: models.HealthDegraded,

		NewAlerts:           []models.AlertRecord{alert},
		ActiveNotifications: []models.AlertRecord{alert},
		AlertHistory:        []models.AlertRecord{alert},

		Forecasts: map[string]models.ForecastResult{
			models.MetricCPU: {Metric: models.MetricCPU, Trend: models.TrendIncreasing, Predicted: 99, Slope: 2},
		},
		History: map[string][]float64{
			models.MetricCPU: {90, 95, 97},
		},
	}
}

func newTelemetryRouter(t *testing.T, source SummarySource, notify ExportNotifier) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	h := NewTelemetryHandler(source, export.New(dir), notify)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/summary", h.Summary)
	v1.GET("/alerts", h.Alerts)
	v1.GET("/history/:metric", h.History)
	v1.GET("/forecast", h.Forecast)
	v1.POST("/exports", h.Export)
	return r, dir
}

func serve(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTelemetry_Summary(t *testing.T) {
	source := &fakeSource{
		summaries: map[string]*models.Summary{"web-01": testSummary(), "web-02": nil},
		order:     []string{"web-01", "web-02"},
	}
	r, _ := newTelemetryRouter(t, source, nil)

	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{name: "default target", path: "/api/v1/summary", expected: http.StatusOK},
		{name: "explicit target", path: "/api/v1/summary?target=web-01", expected: http.StatusOK},
		{name: "no summary yet", path: "/api/v1/summary?target=web-02", expected: http.StatusServiceUnavailable},
		{name: "unknown target", path: "/api/v1/summary?target=db-01", expected: http.StatusNotFound},
		{name: "invalid target", path: "/api/v1/summary?target=..%2Fetc", expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expected, rec.Code, rec.Body.String())
		})
	}

	rec := serve(r, http.MethodGet, "/api/v1/summary", nil)
	var got models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "web-01", got.Target)
	assert.Equal(t, 70, got.HealthScore)
	assert.Len(t, got.NewAlerts, 1)
}

func TestTelemetry_NoTargets(t *testing.T) {
	r, _ := newTelemetryRouter(t, &fakeSource{}, nil)
	rec := serve(r, http.MethodGet, "/api/v1/alerts", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTelemetry_AlertsHistoryForecast(t *testing.T) {
	source := &fakeSource{
		summaries: map[string]*models.Summary{"web-01": testSummary()},
		order:     []string{"web-01"},
	}
	r, _ := newTelemetryRouter(t, source, nil)

	rec := serve(r, http.MethodGet, "/api/v1/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts AlertsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	assert.Len(t, alerts.Active, 1)
	assert.Len(t, alerts.History, 1)

	rec = serve(r, http.MethodGet, "/api/v1/history/CPU", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hist HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Equal(t, "cpu", hist.Metric)
	assert.Equal(t, []float64{90, 95, 97}, hist.Values)
	assert.Equal(t, 3, hist.Count)

	rec = serve(r, http.MethodGet, "/api/v1/history/ram", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Empty(t, hist.Values)

	rec = serve(r, http.MethodGet, "/api/v1/history/swap", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodGet, "/api/v1/forecast", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fc ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, models.TrendIncreasing, fc.Forecasts[models.MetricCPU].Trend)
}

func TestTelemetry_Export(t *testing.T) {
	source := &fakeSource{
		summaries: map[string]*models.Summary{"web-01": testSummary()},
		order:     []string{"web-01"},
	}
	var notified []string
	r, dir := newTelemetryRouter(t, source, func(target, format, path string) {
		notified = append(notified, target+":"+format)
	})

	rec := serve(r, http.MethodPost, "/api/v1/exports?format=csv", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "csv", resp.Format)
	_, err := os.Stat(resp.Path)
	assert.NoError(t, err)
	assert.Contains(t, resp.Path, dir)
	assert.Equal(t, []string{"web-01:csv"}, notified)

	rec = serve(r, http.MethodPost, "/api/v1/exports?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, notified, 1)
}

func TestAuth_Login(t *testing.T) {
	hash, err := auth.HashPassword("Sentinel#2024")
	require.NoError(t, err)

	creds := auth.StaticCredentials{Username: "admin", PasswordHash: hash}
	svc := auth.NewService("test-secret", time.Hour, "host-sentinel")
	h := NewAuthHandler(creds, svc)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "valid", body: `{"username":"admin","password":"Sentinel#2024"}`, expected: http.StatusOK},
		{name: "wrong password", body: `{"username":"admin","password":"nope"}`, expected: http.StatusUnauthorized},
		{name: "unknown user", body: `{"username":"root","password":"Sentinel#2024"}`, expected: http.StatusUnauthorized},
		{name: "missing field", body: `{"username":"admin"}`, expected: http.StatusBadRequest},
		{name: "malformed", body: `{`, expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodPost, "/auth/login", []byte(tt.body))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}

	rec := serve(r, http.MethodPost, "/auth/login", []byte(`{"username":"admin","password":"Sentinel#2024"}`))
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
}

func TestHealth(t *testing.T) {
	ready := false
	h := NewHealthHandler(func() bool { return ready }, func() []string { return []string{"web-01"} })

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/health/ready", h.Ready)
	r.GET("/health/live", h.Live)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/health/ready", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", nil).Code)

	ready = true
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/ready", nil).Code)

	empty := NewHealthHandler(nil, nil)
	r2 := gin.New()
	r2.GET("/health", empty.Health)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r2, http.MethodGet, "/health", nil).Code)
}
