package events

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// EventLogger writes every event it receives to the structured log.
// Per-tick bookkeeping events go out at debug level.
type EventLogger struct {
	eventChan <-chan *models.Event
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	started   atomic.Bool
}

func NewEventLogger(eventChan <-chan *models.Event) *EventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLogger{
		eventChan: eventChan,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

func (l *EventLogger) Start() {
	if l.started.CompareAndSwap(false, true) {
		go l.run()
	}
}

func (l *EventLogger) Stop() {
	l.cancel()
	if l.started.Load() {
		<-l.done
	}
}

func (l *EventLogger) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.eventChan:
			if !ok {
				return
			}
			l.processEvent(event)
		}
	}
}

func (l *EventLogger) processEvent(event *models.Event) {
	entry := logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"target":     event.Target,
		"severity":   event.Severity,
	})
	if event.TraceID != "" {
		entry = entry.WithField("trace_id", event.TraceID)
	}

	entry.Log(levelFor(event), event.Message)
}

func levelFor(event *models.Event) logrus.Level {
	switch event.Type {
	case models.EventTypeSnapshotCollected, models.EventTypeSummaryProduced:
		return logrus.DebugLevel
	}

	switch event.Severity {
	case models.SeverityCritical:
		return logrus.ErrorLevel
	case models.SeverityWarning:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
