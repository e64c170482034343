package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "host-sentinel", cfg.App.Name)
	assert.Equal(t, "host", cfg.Collector.Type)
	assert.Equal(t, 2*time.Second, cfg.Collector.Interval)
	assert.Equal(t, 30, cfg.Engine.HistorySize)
	assert.Equal(t, 10, cfg.Engine.NotificationCap)
	assert.Equal(t, 50, cfg.Engine.HistoryCap)
	assert.Equal(t, LimitConfig{Warn: 70, Crit: 90}, cfg.Engine.Thresholds.CPU)
	assert.Equal(t, LimitConfig{Warn: 1000, Crit: 5000}, cfg.Engine.Thresholds.Connections)
	assert.Equal(t, 9090, cfg.Prometheus.Port)
	assert.False(t, cfg.Export.OnExit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentinel.yaml")
	content := `
app:
  log_level: debug
collector:
  type: mock
  pattern: spike
engine:
  thresholds:
    cpu:
      warn: 60
      crit: 80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SENTINEL_API_PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "mock", cfg.Collector.Type)
	assert.Equal(t, "spike", cfg.Collector.Pattern)
	assert.Equal(t, LimitConfig{Warn: 60, Crit: 80}, cfg.Engine.Thresholds.CPU)
	assert.Equal(t, LimitConfig{Warn: 75, Crit: 90}, cfg.Engine.Thresholds.RAM)
	assert.Equal(t, 9999, cfg.API.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{name: "bad mode", modify: func(c *Config) { c.App.Mode = "staging" }, wantErr: "app.mode"},
		{name: "zero shutdown timeout", modify: func(c *Config) { c.App.ShutdownTimeout = 0 }, wantErr: "app.shutdown_timeout"},
		{name: "bad log level", modify: func(c *Config) { c.App.LogLevel = "trace" }, wantErr: "app.log_level"},
		{name: "unknown collector", modify: func(c *Config) { c.Collector.Type = "snmp" }, wantErr: "collector.type"},
		{name: "timeout not below interval", modify: func(c *Config) { c.Collector.Timeout = c.Collector.Interval }, wantErr: "collector.timeout must be less"},
		{name: "zero history size", modify: func(c *Config) { c.Engine.HistorySize = 0 }, wantErr: "engine.history_size"},
		{name: "history cap below notification cap", modify: func(c *Config) { c.Engine.HistoryCap = 5 }, wantErr: "engine.history_cap must not be less"},
		{name: "inverted threshold", modify: func(c *Config) { c.Engine.Thresholds.Disk = LimitConfig{Warn: 95, Crit: 80} }, wantErr: "engine.thresholds.disk.crit"},
		{
			name: "default secret in production",
			modify: func(c *Config) {
				c.App.Mode = "production"
			},
			wantErr: "api.jwt_secret",
		},
		{name: "api disabled skips port check", modify: func(c *Config) { c.API.Enabled = false; c.API.Port = 0 }},
		{name: "empty export dir", modify: func(c *Config) { c.Export.Dir = "" }, wantErr: "export.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
