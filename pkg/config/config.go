package config

import "time"

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Collector  CollectorConfig  `mapstructure:"collector"`
	Engine     EngineConfig     `mapstructure:"engine"`
	API        APIConfig        `mapstructure:"api"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Events     EventsConfig     `mapstructure:"events"`
	Export     ExportConfig     `mapstructure:"export"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CollectorConfig struct {
	// Type is "host" for the local machine or "mock" for generated load.
	Type           string               `mapstructure:"type"`
	Hostname       string               `mapstructure:"hostname"`
	Pattern        string               `mapstructure:"pattern"`
	DiskPath       string               `mapstructure:"disk_path"`
	Interval       time.Duration        `mapstructure:"interval"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	RetryAttempts  int                  `mapstructure:"retry_attempts"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type EngineConfig struct {
	HistorySize     int             `mapstructure:"history_size"`
	NotificationCap int             `mapstructure:"notification_cap"`
	HistoryCap      int             `mapstructure:"history_cap"`
	Thresholds      ThresholdConfig `mapstructure:"thresholds"`
}

type LimitConfig struct {
	Warn float64 `mapstructure:"warn"`
	Crit float64 `mapstructure:"crit"`
}

type ThresholdConfig struct {
	CPU         LimitConfig `mapstructure:"cpu"`
	RAM         LimitConfig `mapstructure:"ram"`
	Disk        LimitConfig `mapstructure:"disk"`
	Temperature LimitConfig `mapstructure:"temperature"`
	Swap        LimitConfig `mapstructure:"swap"`
	Connections LimitConfig `mapstructure:"connections"`
	Processes   LimitConfig `mapstructure:"processes"`
}

func (t ThresholdConfig) limits() map[string]LimitConfig {
	return map[string]LimitConfig{
		"cpu":         t.CPU,
		"ram":         t.RAM,
		"disk":        t.Disk,
		"temperature": t.Temperature,
		"swap":        t.Swap,
		"connections": t.Connections,
		"processes":   t.Processes,
	}
}

type APIConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	RateLimit         int           `mapstructure:"rate_limit"`
	AuthRateLimit     int           `mapstructure:"auth_rate_limit"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTDuration       time.Duration `mapstructure:"jwt_duration"`
	JWTIssuer         string        `mapstructure:"jwt_issuer"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	CORS              CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type WebSocketConfig struct {
	MaxConnections  int           `mapstructure:"max_connections"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
}

type PrometheusConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	OnExit bool   `mapstructure:"on_exit"`
}
