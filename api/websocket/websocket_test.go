package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/host-sentinel/pkg/config"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startHub(t *testing.T, cfg *config.WebSocketConfig) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(cfg)
	go hub.Run()

	r := gin.New()
	r.GET("/ws", ServeWebSocket(hub))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) OutgoingMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg OutgoingMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func testSummary(target string) *models.Summary {
	return &models.Summary{
		Target:       target,
		Timestamp:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Tick:         7,
		State:        models.StateSteady,
		HealthScore:  85,
		HealthStatus: models.HealthHealthy,
	}
}

func TestNewWebSocketSettings(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.WebSocketConfig
		expected WebSocketSettings
	}{
		{
			name: "nil config uses defaults",
			cfg:  nil,
			expected: WebSocketSettings{
				MaxConnections: 100, WriteWait: 10 * time.Second, PongWait: 60 * time.Second,
				PingPeriod: 54 * time.Second, MaxMessageSize: 512, ReadBufferSize: 1024,
				WriteBufferSize: 1024, ClientBuffer: 256,
			},
		},
		{
			name: "ping interval not below pong timeout is derived",
			cfg:  &config.WebSocketConfig{PongTimeout: 10 * time.Second, PingInterval: 30 * time.Second, MaxConnections: 5},
			expected: WebSocketSettings{
				MaxConnections: 5, WriteWait: 10 * time.Second, PongWait: 10 * time.Second,
				PingPeriod: 9 * time.Second, MaxMessageSize: 512, ReadBufferSize: 1024,
				WriteBufferSize: 1024, ClientBuffer: 256,
			},
		},
		{
			name: "explicit ping interval kept",
			cfg:  &config.WebSocketConfig{PingInterval: 20 * time.Second, ClientBuffer: 8},
			expected: WebSocketSettings{
				MaxConnections: 100, WriteWait: 10 * time.Second, PongWait: 60 * time.Second,
				PingPeriod: 20 * time.Second, MaxMessageSize: 512, ReadBufferSize: 1024,
				WriteBufferSize: 1024, ClientBuffer: 8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, *NewWebSocketSettings(tt.cfg))
		})
	}
}

func TestConvertToWSMessage(t *testing.T) {
	summary := testSummary("web-01")
	alert := models.NewAlertRecord("cpu", models.AlertWarning, "WARNING: CPU at 85.0%", summary.Timestamp)

	tests := []struct {
		name     string
		event    *models.Event
		expected MessageType
	}{
		{name: "summary", event: models.NewEvent(models.EventTypeSummaryProduced, "web-01", "").WithData(summary), expected: MessageTypeSummary},
		{name: "alert", event: models.NewEvent(models.EventTypeAlert, "web-01", alert.Message).WithData(alert), expected: MessageTypeAlert},
		{name: "rejected", event: models.NewEvent(models.EventTypeSnapshotRejected, "web-01", "Snapshot rejected"), expected: MessageTypeRejected},
		{name: "export", event: models.NewEvent(models.EventTypeExportWritten, "web-01", "Export written"), expected: MessageTypeExport},
		{name: "error", event: models.NewEvent(models.EventTypeError, "web-01", "boom"), expected: MessageTypeError},
		{name: "collected stays internal", event: models.NewEvent(models.EventTypeSnapshotCollected, "web-01", ""), expected: ""},
		{name: "summary without data", event: models.NewEvent(models.EventTypeSummaryProduced, "web-01", ""), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := convertToWSMessage(tt.event)
			if tt.expected == "" {
				assert.Nil(t, msg)
				return
			}
			require.NotNil(t, msg)
			assert.Equal(t, tt.expected, msg.Type)
			assert.Equal(t, "web-01", msg.Target)
		})
	}
}

func TestBridge_DeliversToSubscribedClients(t *testing.T) {
	hub, srv := startHub(t, nil)

	all := dial(t, srv, "")
	only2 := dial(t, srv, "?target=web-02")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	events := make(chan *models.Event, 4)
	bridge := NewEventBridge(hub, events)
	bridge.Start()
	defer bridge.Stop()

	events <- models.NewEvent(models.EventTypeSummaryProduced, "web-01", "").WithData(testSummary("web-01"))
	events <- models.NewEvent(models.EventTypeSummaryProduced, "web-02", "").WithData(testSummary("web-02"))

	first := readMessage(t, all)
	assert.Equal(t, MessageTypeSummary, first.Type)
	assert.Equal(t, "web-01", first.Target)
	assert.Equal(t, "web-02", readMessage(t, all).Target)

	got := readMessage(t, only2)
	assert.Equal(t, "web-02", got.Target, "web-01 traffic is filtered out")
}

func TestClient_Subscribe(t *testing.T) {
	hub, srv := startHub(t, nil)
	conn := dial(t, srv, "")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Target: "web-03"}))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeSubscription, msg.Type)
	assert.Equal(t, "web-03", msg.Target)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Type: "subscribe", Target: "../etc"}))
	assert.Equal(t, MessageTypeError, readMessage(t, conn).Type)
}

func TestServeWebSocket_ConnectionLimit(t *testing.T) {
	hub, srv := startHub(t, &config.WebSocketConfig{MaxConnections: 1})
	dial(t, srv, "")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 503, resp.StatusCode)
}
