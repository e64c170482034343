package models

import "time"

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
	TrendUnknown    Trend = "unknown"
)

type EngineState string

const (
	StateBootstrapping EngineState = "bootstrapping"
	StateSteady        EngineState = "steady"
)

type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
	HealthCritical HealthStatus = "critical"
)

func HealthStatusFor(score int) HealthStatus {
	switch {
	case score >= 80:
		return HealthHealthy
	case score >= 60:
		return HealthDegraded
	default:
		return HealthCritical
	}
}

// History metric names.
const (
	MetricCPU     = "cpu"
	MetricRAM     = "ram"
	MetricDisk    = "disk"
	MetricNetwork = "network"
)

// ForecastResult is a short-horizon extrapolation of one metric.
type ForecastResult struct {
	Metric    string  `json:"metric"`
	Trend     Trend   `json:"trend"`
	Predicted float64 `json:"predicted"`
	Slope     float64 `json:"slope"`
}

// Rates are per-second values derived from cumulative counters.
type Rates struct {
	NetSent           float64 `json:"net_sent_per_sec"`
	NetRecv           float64 `json:"net_recv_per_sec"`
	DiskRead          float64 `json:"disk_read_per_sec"`
	DiskWrite         float64 `json:"disk_write_per_sec"`
	DiskReadOps       float64 `json:"disk_read_ops_per_sec"`
	DiskWriteOps      float64 `json:"disk_write_ops_per_sec"`
	NetworkThroughput float64 `json:"network_throughput"`
}

// Summary is everything derived from one processed tick. Slices and maps
// are private copies; holders may keep it as long as they like.
type Summary struct {
	Target       string       `json:"target"`
	Timestamp    time.Time    `json:"timestamp"`
	Tick         uint64       `json:"tick"`
	State        EngineState  `json:"state"`
	Snapshot     RawSnapshot  `json:"snapshot"`
	Rates        Rates        `json:"rates"`
	HealthScore  int          `json:"health_score"`
	HealthStatus HealthStatus `json:"health_status"`
	ProcessDelta int          `json:"process_delta"`

	NewAlerts           []AlertRecord             `json:"new_alerts"`
	ActiveNotifications []AlertRecord             `json:"active_notifications"`
	AlertHistory        []AlertRecord             `json:"alert_history"`
	Forecasts           map[string]ForecastResult `json:"forecasts"`
	History             map[string][]float64      `json:"history"`
}

func (s *Summary) HasCriticalAlert() bool {
	for _, a := range s.NewAlerts {
		if a.IsCritical() {
			return true
		}
	}
	return false
}

// RecentAlerts returns up to n of the newest history entries, oldest first.
func (s *Summary) RecentAlerts(n int) []AlertRecord {
	if n <= 0 || len(s.AlertHistory) == 0 {
		return nil
	}
	if n > len(s.AlertHistory) {
		n = len(s.AlertHistory)
	}
	return s.AlertHistory[len(s.AlertHistory)-n:]
}
