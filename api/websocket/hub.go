package websocket

import (
	"sync"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/config"
)

// Hub fans messages out to connected clients. A client with no target
// receives messages for every target.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan targetedMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	settings   *WebSocketSettings
}

type targetedMessage struct {
	target string
	data   []byte
}

func NewHub(cfg *config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan targetedMessage, defaultBroadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		settings:   NewWebSocketSettings(cfg),
	}
}

func (h *Hub) Settings() *WebSocketSettings {
	return h.settings
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Infof("WebSocket client connected (total: %d)", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Infof("WebSocket client disconnected (total: %d)", total)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// deliver drops clients whose send buffer is full.
func (h *Hub) deliver(msg targetedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if !client.wants(msg.target) {
			continue
		}
		select {
		case client.send <- msg.data:
		default:
			delete(h.clients, client)
			close(client.send)
			logger.Warn("WebSocket client too slow, disconnecting")
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Broadcast(message []byte) {
	h.BroadcastToTarget("", message)
}

// BroadcastToTarget queues message for clients following target. An empty
// target reaches every client.
func (h *Hub) BroadcastToTarget(target string, message []byte) {
	select {
	case h.broadcast <- targetedMessage{target: target, data: message}:
	default:
		logger.Warn("Broadcast channel full, dropping message")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
