// @title Host Sentinel API
// @version 1.0
// @description Host telemetry summaries, alerts, forecasts and exports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/OldStager01/host-sentinel/api"
	"github.com/OldStager01/host-sentinel/internal/auth"
	"github.com/OldStager01/host-sentinel/internal/collector"
	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/internal/metrics"
	"github.com/OldStager01/host-sentinel/internal/orchestrator"
	"github.com/OldStager01/host-sentinel/internal/resilience"
	"github.com/OldStager01/host-sentinel/internal/tui"
	"github.com/OldStager01/host-sentinel/pkg/config"
	"github.com/OldStager01/host-sentinel/pkg/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	watch := flag.Bool("watch", false, "run the live terminal view")
	hashPassword := flag.Bool("hash-password", false, "read a password from stdin and print its bcrypt hash")
	flag.Parse()

	if *hashPassword {
		return printPasswordHash()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := orchestrator.New(cfg)
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}
	defer orch.Stop()

	target, coll, err := buildCollector(cfg)
	if err != nil {
		return err
	}

	pipeline, err := orch.AddTarget(target, coll)
	if err != nil {
		return fmt.Errorf("failed to add target: %w", err)
	}

	exporter := export.New(cfg.Export.Dir)
	publisher := orch.Publisher()

	var metricsServer *http.Server
	if cfg.Prometheus.Enabled {
		metricsServer = metrics.StartServer(cfg.Prometheus.Port)
	}

	var server *api.Server
	errChan := make(chan error, 1)
	if cfg.API.Enabled {
		server = api.NewServer(cfg, orch, exporter)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	if *watch {
		err := tui.Run(ctx, tui.Config{
			Source:     pipeline,
			Exporter:   exporter,
			Thresholds: orchestrator.EngineConfig(cfg.Engine, target).Thresholds,
			Refresh:    cfg.Collector.Interval,
			OnExport:   publisher.ExportWritten,
		})
		stop()
		if err != nil {
			return fmt.Errorf("live view error: %w", err)
		}
	} else {
		select {
		case err := <-errChan:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("Received shutdown signal")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Metrics server shutdown error: %v", err)
		}
	}

	pipeline.Finish(exporter, cfg.Export.OnExit)

	logger.Info("Stopped gracefully")
	return nil
}

// buildCollector wraps the configured source in retries and a circuit
// breaker whose state is exported as a metric.
func buildCollector(cfg *config.Config) (string, collector.Collector, error) {
	c := cfg.Collector

	target := c.Hostname
	if target == "" {
		name, err := os.Hostname()
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve hostname: %w", err)
		}
		target = name
	}
	if err := validation.ValidateTargetName(target); err != nil {
		return "", nil, fmt.Errorf("invalid target name %q: %w", target, err)
	}

	var source collector.Collector
	switch c.Type {
	case "mock":
		source = collector.NewMockCollector(collector.MockCollectorConfig{
			Hostname: target,
			Pattern:  c.Pattern,
		})
	default:
		source = collector.NewHostCollector(collector.HostCollectorConfig{
			Hostname: c.Hostname,
			DiskPath: c.DiskPath,
			Timeout:  c.Timeout,
		})
	}
	logger.WithTarget(target).Infof("Using %s collector", c.Type)

	m := metrics.Get()
	resilient := collector.NewResilientCollector(collector.ResilientCollectorConfig{
		Collector:     source,
		Target:        target,
		MaxFailures:   c.CircuitBreaker.MaxFailures,
		Timeout:       c.CircuitBreaker.Timeout,
		RetryAttempts: c.RetryAttempts,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.WithField("breaker", name).Warnf("Circuit breaker %s -> %s", from, to)
			m.SetCircuitBreakerState(name, int(to))
		},
	})

	return target, resilient, nil
}

func printPasswordHash() error {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")

	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
