package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SENTINEL"

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/host-sentinel")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file: defaults and environment only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "host-sentinel")
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("collector.type", "host")
	v.SetDefault("collector.pattern", "steady")
	v.SetDefault("collector.disk_path", "/")
	v.SetDefault("collector.interval", "2s")
	v.SetDefault("collector.timeout", "1500ms")
	v.SetDefault("collector.retry_attempts", 3)
	v.SetDefault("collector.circuit_breaker.max_failures", 5)
	v.SetDefault("collector.circuit_breaker.timeout", "30s")

	v.SetDefault("engine.history_size", 30)
	v.SetDefault("engine.notification_cap", 10)
	v.SetDefault("engine.history_cap", 50)
	v.SetDefault("engine.thresholds.cpu.warn", 70.0)
	v.SetDefault("engine.thresholds.cpu.crit", 90.0)
	v.SetDefault("engine.thresholds.ram.warn", 75.0)
	v.SetDefault("engine.thresholds.ram.crit", 90.0)
	v.SetDefault("engine.thresholds.disk.warn", 80.0)
	v.SetDefault("engine.thresholds.disk.crit", 95.0)
	v.SetDefault("engine.thresholds.temperature.warn", 70.0)
	v.SetDefault("engine.thresholds.temperature.crit", 85.0)
	v.SetDefault("engine.thresholds.swap.warn", 50.0)
	v.SetDefault("engine.thresholds.swap.crit", 80.0)
	v.SetDefault("engine.thresholds.connections.warn", 1000)
	v.SetDefault("engine.thresholds.connections.crit", 5000)
	v.SetDefault("engine.thresholds.processes.warn", 300)
	v.SetDefault("engine.thresholds.processes.crit", 500)

	v.SetDefault("api.enabled", true)
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_timeout", "15s")
	v.SetDefault("api.write_timeout", "15s")
	v.SetDefault("api.idle_timeout", "60s")
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.auth_rate_limit", 10)
	v.SetDefault("api.jwt_secret", "change-me-in-production")
	v.SetDefault("api.jwt_duration", "24h")
	v.SetDefault("api.jwt_issuer", "host-sentinel")
	v.SetDefault("api.admin_username", "admin")
	v.SetDefault("api.cors.allowed_origins", []string{"*"})
	v.SetDefault("api.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("api.cors.allowed_headers", []string{"Authorization", "Content-Type", "X-Trace-ID"})
	v.SetDefault("api.cors.exposed_headers", []string{"X-Trace-ID"})

	v.SetDefault("websocket.max_connections", 100)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.write_timeout", "10s")
	v.SetDefault("websocket.pong_timeout", "60s")
	v.SetDefault("websocket.max_message_size", 512)
	v.SetDefault("websocket.read_buffer_size", 1024)
	v.SetDefault("websocket.write_buffer_size", 1024)
	v.SetDefault("websocket.client_buffer", 256)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.port", 9090)

	v.SetDefault("events.buffer_size", 100)

	v.SetDefault("export.dir", "exports")
	v.SetDefault("export.on_exit", false)
}
