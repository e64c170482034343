package events

import (
	"fmt"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) SnapshotCollected(target string, snap *models.RawSnapshot) {
	event := models.NewEvent(models.EventTypeSnapshotCollected, target, "Snapshot collected").
		WithData(snap)
	p.publish(event)
}

func (p *Publisher) SummaryProduced(summary *models.Summary) {
	msg := fmt.Sprintf("Tick %d processed, health %d", summary.Tick, summary.HealthScore)
	event := models.NewEvent(models.EventTypeSummaryProduced, summary.Target, msg).
		WithData(summary)

	switch summary.HealthStatus {
	case models.HealthCritical:
		event.WithSeverity(models.SeverityCritical)
	case models.HealthDegraded:
		event.WithSeverity(models.SeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) SnapshotRejected(target string, err error) {
	event := models.NewEvent(models.EventTypeSnapshotRejected, target, "Snapshot rejected").
		WithSeverity(models.SeverityWarning).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}

func (p *Publisher) Alert(target string, record models.AlertRecord) {
	event := models.NewEvent(models.EventTypeAlert, target, record.Message).
		WithSeverity(models.SeverityForAlert(record.Severity)).
		WithData(record)
	p.publish(event)
}

func (p *Publisher) ExportWritten(target, format, path string) {
	event := models.NewEvent(models.EventTypeExportWritten, target, "Export written: "+path).
		WithData(map[string]interface{}{
			"format": format,
			"path":   path,
		})
	p.publish(event)
}

func (p *Publisher) Error(target string, message string, err error) {
	event := models.NewEvent(models.EventTypeError, target, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
