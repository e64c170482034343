// Package engine turns a stream of raw snapshots into per-tick summaries.
// An Engine owns the rate pairs, history windows and alert logs for one
// monitored target. Process must not be called concurrently.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OldStager01/host-sentinel/internal/alerts"
	"github.com/OldStager01/host-sentinel/internal/forecast"
	"github.com/OldStager01/host-sentinel/internal/health"
	"github.com/OldStager01/host-sentinel/internal/history"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/rates"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// ErrInvalidSnapshot marks a snapshot that was rejected before any state
// changed.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Config struct {
	Target          string
	Thresholds      alerts.Thresholds
	HistorySize     int
	NotificationCap int
	HistoryCap      int
	Forecast        forecast.Config
}

type Stats struct {
	Ticks       uint64    `json:"ticks"`
	Rejected    uint64    `json:"rejected"`
	TotalAlerts uint64    `json:"total_alerts"`
	StartedAt   time.Time `json:"started_at"`
}

type Engine struct {
	config     Config
	rates      *rates.Calculator
	history    *history.Buffer
	alerts     *alerts.Engine
	forecaster *forecast.Forecaster
	scorer     health.Scorer

	state       models.EngineState
	ticks       uint64
	rejected    uint64
	startedAt   time.Time
	lastProcess models.Reading
}

func New(cfg Config) *Engine {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = history.DefaultSize
	}
	if cfg.NotificationCap <= 0 {
		cfg.NotificationCap = alerts.DefaultNotificationCap
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = alerts.DefaultHistoryCap
	}
	if cfg.Thresholds == (alerts.Thresholds{}) {
		cfg.Thresholds = alerts.DefaultThresholds()
	}

	return &Engine{
		config:  cfg,
		rates:   rates.New(),
		history: history.New(cfg.HistorySize),
		alerts: alerts.New(alerts.Config{
			Thresholds:      cfg.Thresholds,
			NotificationCap: cfg.NotificationCap,
			HistoryCap:      cfg.HistoryCap,
		}),
		forecaster: forecast.New(cfg.Forecast),
		state:      models.StateBootstrapping,
		startedAt:  time.Now(),
	}
}

// Process runs one tick. A snapshot that fails validation is rejected with
// an error wrapping ErrInvalidSnapshot and leaves the engine untouched.
func (e *Engine) Process(snap models.RawSnapshot, now time.Time) (*models.Summary, error) {
	if err := validate(&snap); err != nil {
		e.rejected++
		logger.WithTarget(e.config.Target).WithError(err).Debug("Snapshot rejected")
		return nil, err
	}

	r := e.computeRates(&snap, now)

	if v, ok := snap.CPUPercent.Get(); ok {
		e.history.Push(models.MetricCPU, v)
	}
	if v, ok := snap.RAMPercent.Get(); ok {
		e.history.Push(models.MetricRAM, v)
	}
	if v, ok := snap.DiskPercent.Get(); ok {
		e.history.Push(models.MetricDisk, v)
	}
	if snap.NetBytesSent.Available() && snap.NetBytesRecv.Available() {
		e.history.Push(models.MetricNetwork, r.NetworkThroughput)
	}

	score := e.scorer.Score(&snap)
	newAlerts := e.alerts.Evaluate(&snap, now)

	forecasts := map[string]models.ForecastResult{
		models.MetricCPU: e.forecast(models.MetricCPU, snap.CPUPercent),
		models.MetricRAM: e.forecast(models.MetricRAM, snap.RAMPercent),
	}

	delta := 0
	if prev, ok := e.lastProcess.Get(); ok {
		if cur, ok := snap.ProcessCount.Get(); ok {
			delta = int(cur) - int(prev)
		}
	}
	e.lastProcess = snap.ProcessCount

	e.ticks++
	e.state = models.StateSteady

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = now
	}

	summary := &models.Summary{
		Target:              e.config.Target,
		Timestamp:           ts,
		Tick:                e.ticks,
		State:               e.state,
		Snapshot:            snap,
		Rates:               r,
		HealthScore:         score,
		HealthStatus:        models.HealthStatusFor(score),
		ProcessDelta:        delta,
		NewAlerts:           newAlerts,
		ActiveNotifications: e.alerts.Active(),
		AlertHistory:        e.alerts.History(),
		Forecasts:           forecasts,
		History:             e.history.Snapshot(),
	}

	logger.WithTarget(e.config.Target).WithFields(map[string]interface{}{
		"tick":         e.ticks,
		"health_score": score,
		"new_alerts":   len(newAlerts),
	}).Debug("Tick processed")

	return summary, nil
}

func (e *Engine) computeRates(snap *models.RawSnapshot, now time.Time) models.Rates {
	observe := func(name string, c models.Counter) float64 {
		if !c.Available() {
			return 0
		}
		return e.rates.Observe(name, c.Total, now)
	}

	r := models.Rates{
		NetSent:      observe(models.CounterNetSent, snap.NetBytesSent),
		NetRecv:      observe(models.CounterNetRecv, snap.NetBytesRecv),
		DiskRead:     observe(models.CounterDiskRead, snap.DiskReadBytes),
		DiskWrite:    observe(models.CounterDiskWrite, snap.DiskWriteBytes),
		DiskReadOps:  observe(models.CounterDiskReadOps, snap.DiskReadOps),
		DiskWriteOps: observe(models.CounterDiskWriteOps, snap.DiskWriteOps),
	}
	r.NetworkThroughput = r.NetSent + r.NetRecv
	return r
}

func (e *Engine) forecast(metric string, current models.Reading) models.ForecastResult {
	v, ok := current.Get()
	if !ok {
		return e.forecaster.Unknown(metric)
	}
	return e.forecaster.Forecast(metric, e.history.Window(metric), v)
}

func (e *Engine) State() models.EngineState {
	return e.state
}

func (e *Engine) Target() string {
	return e.config.Target
}

func (e *Engine) Thresholds() alerts.Thresholds {
	return e.config.Thresholds
}

func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:       e.ticks,
		Rejected:    e.rejected,
		TotalAlerts: e.alerts.TotalRaised(),
		StartedAt:   e.startedAt,
	}
}

func validate(snap *models.RawSnapshot) error {
	var problems []string

	for _, g := range snap.Gauges() {
		switch {
		case g.Reading.State == models.ReadingAbsent && !g.Optional:
			problems = append(problems, g.Name+" missing")
		case g.Reading.State == models.ReadingOK && !g.Reading.Finite():
			problems = append(problems, g.Name+" not finite")
		}
	}
	for _, c := range snap.Counters() {
		if c.Counter.State == models.ReadingAbsent {
			problems = append(problems, c.Name+" missing")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(problems, ", "))
	}
	return nil
}
