package orchestrator

import (
	"time"

	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// SessionSummary describes one monitoring run of a target, reported on exit.
type SessionSummary struct {
	Target      string              `json:"target"`
	StartedAt   time.Time           `json:"started_at"`
	Runtime     time.Duration       `json:"runtime"`
	Snapshots   uint64              `json:"snapshots"`
	Rejected    uint64              `json:"rejected"`
	TotalAlerts uint64              `json:"total_alerts"`
	Exports     uint64              `json:"exports"`
	HasSummary  bool                `json:"has_summary"`
	FinalScore  int                 `json:"final_score"`
	FinalStatus models.HealthStatus `json:"final_status,omitempty"`
}

// Session reports the pipeline's run so far. exports is supplied by the
// caller since exporters are shared across targets.
func (p *Pipeline) Session(exports uint64, now time.Time) SessionSummary {
	stats := p.Stats()

	s := SessionSummary{
		Target:      p.config.Target,
		StartedAt:   stats.StartedAt,
		Runtime:     now.Sub(stats.StartedAt).Truncate(time.Second),
		Snapshots:   stats.Ticks,
		Rejected:    stats.Rejected,
		TotalAlerts: stats.TotalAlerts,
		Exports:     exports,
	}
	if latest := p.Latest(); latest != nil {
		s.HasSummary = true
		s.FinalScore = latest.HealthScore
		s.FinalStatus = latest.HealthStatus
	}
	return s
}

var finalReportFormats = []export.Format{export.FormatJSON, export.FormatCSV}

// Finish closes out the run. With writeReport set the latest summary is
// first exported as a JSON report and CSV data. The session summary is
// logged and returned.
func (p *Pipeline) Finish(exporter *export.Exporter, writeReport bool) SessionSummary {
	target := p.config.Target

	if writeReport {
		if latest := p.Latest(); latest == nil {
			logger.WithTarget(target).Warn("No summary to export on exit")
		} else {
			paths, err := exporter.WriteAll(latest, finalReportFormats...)
			for i, path := range paths {
				p.config.EventPublisher.ExportWritten(target, string(finalReportFormats[i]), path)
				logger.WithTarget(target).WithField("path", path).Info("Final report written")
			}
			if err != nil {
				logger.WithTarget(target).WithError(err).Error("Final report export failed")
			}
		}
	}

	s := p.Session(exporter.Count(), time.Now())
	s.Log()
	return s
}

func (s SessionSummary) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"target":       s.Target,
		"runtime":      s.Runtime.String(),
		"snapshots":    s.Snapshots,
		"rejected":     s.Rejected,
		"total_alerts": s.TotalAlerts,
		"exports":      s.Exports,
	}
	if s.HasSummary {
		fields["final_score"] = s.FinalScore
		fields["final_status"] = s.FinalStatus
	}
	return fields
}

func (s SessionSummary) Log() {
	logger.WithFields(s.Fields()).Info("Session summary")
}
