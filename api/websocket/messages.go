package websocket

import (
	"encoding/json"
	"time"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

type MessageType string

const (
	MessageTypeSummary      MessageType = "summary"
	MessageTypeAlert        MessageType = "alert"
	MessageTypeRejected     MessageType = "snapshot_rejected"
	MessageTypeExport       MessageType = "export"
	MessageTypeError        MessageType = "error"
	MessageTypeSubscription MessageType = "subscription_update"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Target    string      `json:"target,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Severity  string      `json:"severity,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func NewMessage(msgType MessageType, target string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Target:    target,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

// SummaryData is the trimmed per-tick view pushed to live clients.
type SummaryData struct {
	Tick         uint64                           `json:"tick"`
	State        models.EngineState               `json:"state"`
	HealthScore  int                              `json:"health_score"`
	HealthStatus models.HealthStatus              `json:"health_status"`
	Snapshot     models.RawSnapshot               `json:"snapshot"`
	Rates        models.Rates                     `json:"rates"`
	Forecasts    map[string]models.ForecastResult `json:"forecasts"`
	Active       []models.AlertRecord             `json:"active_notifications"`
	ProcessDelta int                              `json:"process_delta"`
}

type AlertData struct {
	ID       string `json:"id"`
	Quantity string `json:"quantity"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type SubscriptionData struct {
	Action string `json:"action"`
}

func NewSummaryMessage(s *models.Summary) *OutgoingMessage {
	msg := NewMessage(MessageTypeSummary, s.Target, SummaryData{
		Tick:         s.Tick,
		State:        s.State,
		HealthScore:  s.HealthScore,
		HealthStatus: s.HealthStatus,
		Snapshot:     s.Snapshot,
		Rates:        s.Rates,
		Forecasts:    s.Forecasts,
		Active:       s.ActiveNotifications,
		ProcessDelta: s.ProcessDelta,
	})
	msg.Timestamp = s.Timestamp
	return msg
}

func NewAlertMessage(target string, a models.AlertRecord) *OutgoingMessage {
	msg := NewMessage(MessageTypeAlert, target, AlertData{
		ID:       a.ID,
		Quantity: a.Quantity,
		Severity: string(a.Severity),
		Message:  a.Message,
	})
	msg.Timestamp = a.DetectedAt
	msg.Severity = string(a.Severity)
	msg.Message = a.Message
	return msg
}
