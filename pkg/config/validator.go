package config

import (
	"errors"
	"fmt"
	"sort"
)

func (c *Config) Validate() error {
	var errs []error

	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, errors.New("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, errors.New("app.log_level must be one of: debug, info, warn, error"))
	}
	if c.App.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("app.shutdown_timeout must be positive"))
	}

	validCollectors := map[string]bool{"host": true, "mock": true}
	if !validCollectors[c.Collector.Type] {
		errs = append(errs, errors.New("collector.type must be one of: host, mock"))
	}
	if c.Collector.Interval <= 0 {
		errs = append(errs, errors.New("collector.interval must be positive"))
	}
	if c.Collector.Timeout <= 0 {
		errs = append(errs, errors.New("collector.timeout must be positive"))
	}
	if c.Collector.Timeout >= c.Collector.Interval {
		errs = append(errs, errors.New("collector.timeout must be less than collector.interval"))
	}

	if c.Engine.HistorySize <= 0 {
		errs = append(errs, errors.New("engine.history_size must be positive"))
	}
	if c.Engine.NotificationCap <= 0 {
		errs = append(errs, errors.New("engine.notification_cap must be positive"))
	}
	if c.Engine.HistoryCap <= 0 {
		errs = append(errs, errors.New("engine.history_cap must be positive"))
	}
	if c.Engine.HistoryCap < c.Engine.NotificationCap {
		errs = append(errs, errors.New("engine.history_cap must not be less than engine.notification_cap"))
	}

	limits := c.Engine.Thresholds.limits()
	names := make([]string, 0, len(limits))
	for name := range limits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l := limits[name]
		if l.Warn <= 0 {
			errs = append(errs, fmt.Errorf("engine.thresholds.%s.warn must be positive", name))
		}
		if l.Crit <= l.Warn {
			errs = append(errs, fmt.Errorf("engine.thresholds.%s.crit must be greater than warn", name))
		}
	}

	if c.API.Enabled {
		if c.API.Port <= 0 || c.API.Port > 65535 {
			errs = append(errs, errors.New("api.port must be between 1 and 65535"))
		}
		if c.API.RateLimit <= 0 {
			errs = append(errs, errors.New("api.rate_limit must be positive"))
		}
		if c.API.JWTDuration <= 0 {
			errs = append(errs, errors.New("api.jwt_duration must be positive"))
		}
		if c.App.Mode == "production" && c.API.JWTSecret == "change-me-in-production" {
			errs = append(errs, errors.New("api.jwt_secret must be changed in production"))
		}
	}

	if c.Prometheus.Enabled && (c.Prometheus.Port <= 0 || c.Prometheus.Port > 65535) {
		errs = append(errs, errors.New("prometheus.port must be between 1 and 65535"))
	}

	if c.Export.Dir == "" {
		errs = append(errs, errors.New("export.dir is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
