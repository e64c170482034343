package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/validation"
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	target string
	mu     sync.RWMutex
}

type IncomingMessage struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

func NewClient(hub *Hub, conn *websocket.Conn, target string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, hub.settings.ClientBuffer),
		target: target,
	}
}

func (c *Client) Target() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

func (c *Client) setTarget(target string) {
	c.mu.Lock()
	c.target = target
	c.mu.Unlock()
}

func (c *Client) wants(target string) bool {
	own := c.Target()
	return own == "" || target == "" || own == target
}

func (c *Client) ReadPump() {
	settings := c.hub.settings
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(settings.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(settings.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(settings.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.handleMessage(&msg)
		}
	}
}

func (c *Client) WritePump() {
	settings := c.hub.settings
	ticker := time.NewTicker(settings.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(settings.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message; clients parse each frame as JSON.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(settings.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *IncomingMessage) {
	switch msg.Type {
	case "subscribe":
		target := validation.SanitizeString(msg.Target)
		if err := validation.ValidateTargetName(target); err != nil {
			c.queue(NewMessage(MessageTypeError, "", map[string]string{"error": err.Error()}).JSON())
			return
		}
		c.setTarget(target)
		logger.WithTarget(target).Debug("Client subscribed")
		c.sendConfirmation("subscribed", target)
	case "unsubscribe":
		old := c.Target()
		c.setTarget("")
		logger.WithTarget(old).Debug("Client unsubscribed")
		c.sendConfirmation("unsubscribed", old)
	}
}

func (c *Client) sendConfirmation(action, target string) {
	c.queue(NewMessage(MessageTypeSubscription, target, SubscriptionData{Action: action}).JSON())
}

// queue hands data to WritePump. send is only closed under the hub lock,
// so holding the read lock keeps it open for the duration.
func (c *Client) queue(data []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Warn("Client send channel full, dropping message")
	}
}

func ServeWebSocket(hub *Hub) gin.HandlerFunc {
	settings := hub.settings
	upgrader := websocket.Upgrader{
		ReadBufferSize:  settings.ReadBufferSize,
		WriteBufferSize: settings.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(c *gin.Context) {
		if hub.ClientCount() >= settings.MaxConnections {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many websocket connections"})
			return
		}

		target := validation.SanitizeString(c.Query("target"))
		if target != "" {
			if err := validation.ValidateTargetName(target); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, target)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}
