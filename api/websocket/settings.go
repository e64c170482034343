package websocket

import (
	"time"

	"github.com/OldStager01/host-sentinel/pkg/config"
)

const defaultBroadcastBuffer = 256

type WebSocketSettings struct {
	MaxConnections  int
	WriteWait       time.Duration
	PongWait        time.Duration
	PingPeriod      time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	ClientBuffer    int
}

// NewWebSocketSettings fills anything left zero in cfg with the defaults.
// The ping period is kept below the pong wait so a healthy peer never
// times out between pings.
func NewWebSocketSettings(cfg *config.WebSocketConfig) *WebSocketSettings {
	s := &WebSocketSettings{
		MaxConnections:  100,
		WriteWait:       10 * time.Second,
		PongWait:        60 * time.Second,
		PingPeriod:      54 * time.Second,
		MaxMessageSize:  512,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ClientBuffer:    256,
	}
	if cfg == nil {
		return s
	}

	if cfg.MaxConnections > 0 {
		s.MaxConnections = cfg.MaxConnections
	}
	if cfg.WriteTimeout > 0 {
		s.WriteWait = cfg.WriteTimeout
	}
	if cfg.PongTimeout > 0 {
		s.PongWait = cfg.PongTimeout
	}
	s.PingPeriod = s.PongWait * 9 / 10
	if cfg.PingInterval > 0 && cfg.PingInterval < s.PongWait {
		s.PingPeriod = cfg.PingInterval
	}
	if cfg.MaxMessageSize > 0 {
		s.MaxMessageSize = cfg.MaxMessageSize
	}
	if cfg.ReadBufferSize > 0 {
		s.ReadBufferSize = cfg.ReadBufferSize
	}
	if cfg.WriteBufferSize > 0 {
		s.WriteBufferSize = cfg.WriteBufferSize
	}
	if cfg.ClientBuffer > 0 {
		s.ClientBuffer = cfg.ClientBuffer
	}
	return s
}
