package events

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

func receive(t *testing.T, ch <-chan *models.Event) *models.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestEventBus_TypedAndAllSubscribers(t *testing.T) {
	bus := NewEventBus(4)
	defer bus.Close()

	alerts := bus.Subscribe(models.EventTypeAlert)
	all := bus.SubscribeAll()
	pub := NewPublisher(bus)

	record := models.NewAlertRecord("cpu", models.AlertCritical, "CRITICAL: CPU at 95.0%", time.Now())
	pub.Alert("web-01", record)
	pub.SnapshotRejected("web-01", errors.New("invalid snapshot: cpu_percent missing"))

	ev := receive(t, alerts)
	assert.Equal(t, models.EventTypeAlert, ev.Type)
	assert.Equal(t, models.SeverityCritical, ev.Severity)
	assert.Equal(t, "CRITICAL: CPU at 95.0%", ev.Message)

	assert.Equal(t, models.EventTypeAlert, receive(t, all).Type)
	assert.Equal(t, models.EventTypeSnapshotRejected, receive(t, all).Type)
	assert.Empty(t, alerts)
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := NewEventBus(1)
	defer bus.Close()
	_ = bus.Subscribe(models.EventTypeError)

	pub := NewPublisher(bus)
	pub.Error("web-01", "collection failed", errors.New("boom"))
	pub.Error("web-01", "collection failed", errors.New("boom"))

	assert.Equal(t, uint64(1), bus.Dropped())
}

func TestEventBus_CloseClosesChannelsOnce(t *testing.T) {
	bus := NewEventBus(1)
	typed := bus.Subscribe(models.EventTypeAlert, models.EventTypeError)
	all := bus.SubscribeAll()

	bus.Close()
	bus.Close()

	_, ok := <-typed
	assert.False(t, ok)
	_, ok = <-all
	assert.False(t, ok)

	NewPublisher(bus).Error("x", "after close", errors.New("ignored"))
}

func TestPublisher_TraceID(t *testing.T) {
	bus := NewEventBus(2)
	defer bus.Close()
	ch := bus.Subscribe(models.EventTypeExportWritten)

	NewPublisher(bus).WithTraceID("trace-1").ExportWritten("web-01", "csv", "exports/metrics_20260101_120000.csv")

	ev := receive(t, ch)
	assert.Equal(t, "trace-1", ev.TraceID)
	data, ok := ev.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "csv", data["format"])
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name     string
		event    *models.Event
		expected logrus.Level
	}{
		{name: "summary is debug", event: models.NewEvent(models.EventTypeSummaryProduced, "", "").WithSeverity(models.SeverityCritical), expected: logrus.DebugLevel},
		{name: "critical alert", event: models.NewEvent(models.EventTypeAlert, "", "").WithSeverity(models.SeverityCritical), expected: logrus.ErrorLevel},
		{name: "warning alert", event: models.NewEvent(models.EventTypeAlert, "", "").WithSeverity(models.SeverityWarning), expected: logrus.WarnLevel},
		{name: "export", event: models.NewEvent(models.EventTypeExportWritten, "", ""), expected: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFor(tt.event))
		})
	}
}

func TestEventLogger_StopsOnClose(t *testing.T) {
	bus := NewEventBus(4)
	l := NewEventLogger(bus.SubscribeAll())
	l.Start()

	NewPublisher(bus).ExportWritten("web-01", "json", "report.json")
	bus.Close()

	select {
	case <-l.done:
	case <-time.After(time.Second):
		t.Fatal("event logger did not stop")
	}
	l.Stop()
}
