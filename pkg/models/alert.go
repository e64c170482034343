package models

import "time"

type AlertSeverity string

const (
	AlertWarning  AlertSeverity = "WARNING"
	AlertCritical AlertSeverity = "CRITICAL"
)

// AlertRecord is one threshold breach as it was first detected.
// Message is the dedup key.
type AlertRecord struct {
	ID         string        `json:"id"`
	Message    string        `json:"message"`
	Severity   AlertSeverity `json:"severity"`
	Quantity   string        `json:"quantity"`
	DetectedAt time.Time     `json:"detected_at"`
}

func NewAlertRecord(quantity string, severity AlertSeverity, message string, detectedAt time.Time) AlertRecord {
	return AlertRecord{
		ID:         NewUUID(),
		Message:    message,
		Severity:   severity,
		Quantity:   quantity,
		DetectedAt: detectedAt,
	}
}

func (a AlertRecord) IsCritical() bool {
	return a.Severity == AlertCritical
}

// HistoryLine renders the record the way the alert history panel shows it.
func (a AlertRecord) HistoryLine() string {
	return a.DetectedAt.Format("15:04:05") + " - " + a.Message
}
