package models

import "time"

type EventType string

const (
	EventTypeSnapshotCollected EventType = "snapshot_collected"
	EventTypeSummaryProduced   EventType = "summary_produced"
	EventTypeSnapshotRejected  EventType = "snapshot_rejected"
	EventTypeAlert             EventType = "alert"
	EventTypeExportWritten     EventType = "export_written"
	EventTypeError             EventType = "error"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityCritical EventSeverity = "critical"
)

// Event represents an internal system event
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Severity  EventSeverity `json:"severity"`
	Target    string        `json:"target,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Data      interface{}   `json:"data,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

func NewEvent(eventType EventType, target, message string) *Event {
	return &Event{
		ID:        NewUUID(),
		Type:      eventType,
		Severity:  SeverityInfo,
		Target:    target,
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e *Event) WithSeverity(severity EventSeverity) *Event {
	e.Severity = severity
	return e
}

func (e *Event) WithData(data interface{}) *Event {
	e.Data = data
	return e
}

func (e *Event) WithTraceID(traceID string) *Event {
	e.TraceID = traceID
	return e
}

// SeverityForAlert maps an alert level onto the event severity scale.
func SeverityForAlert(s AlertSeverity) EventSeverity {
	if s == AlertCritical {
		return SeverityCritical
	}
	return SeverityWarning
}
