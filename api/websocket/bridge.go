package websocket

import (
	"context"
	"sync"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// EventBridge forwards orchestrator events to WebSocket clients.
type EventBridge struct {
	hub        *Hub
	eventsChan <-chan *models.Event
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewEventBridge(hub *Hub, eventsChan <-chan *models.Event) *EventBridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBridge{
		hub:        hub,
		eventsChan: eventsChan,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (b *EventBridge) Start() {
	b.wg.Add(1)
	go b.run()
	logger.Info("WebSocket event bridge started")
}

func (b *EventBridge) Stop() {
	b.cancel()
	b.wg.Wait()
	logger.Info("WebSocket event bridge stopped")
}

func (b *EventBridge) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.eventsChan:
			if !ok {
				logger.Info("Event channel closed, stopping bridge")
				return
			}
			b.forwardEvent(event)
		}
	}
}

func (b *EventBridge) forwardEvent(event *models.Event) {
	msg := convertToWSMessage(event)
	if msg == nil {
		return
	}
	b.hub.BroadcastToTarget(event.Target, msg.JSON())
}

// convertToWSMessage returns nil for events that stay internal.
func convertToWSMessage(event *models.Event) *OutgoingMessage {
	switch event.Type {
	case models.EventTypeSummaryProduced:
		if s, ok := event.Data.(*models.Summary); ok {
			return NewSummaryMessage(s)
		}
		return nil
	case models.EventTypeAlert:
		if a, ok := event.Data.(models.AlertRecord); ok {
			return NewAlertMessage(event.Target, a)
		}
		return nil
	}

	var msgType MessageType
	switch event.Type {
	case models.EventTypeSnapshotRejected:
		msgType = MessageTypeRejected
	case models.EventTypeExportWritten:
		msgType = MessageTypeExport
	case models.EventTypeError:
		msgType = MessageTypeError
	default:
		return nil
	}

	return &OutgoingMessage{
		Type:      msgType,
		Target:    event.Target,
		Timestamp: event.Timestamp,
		Severity:  string(event.Severity),
		Message:   event.Message,
		Data:      event.Data,
	}
}
