package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/OldStager01/host-sentinel/api/handlers"
	"github.com/OldStager01/host-sentinel/api/middleware"
	"github.com/OldStager01/host-sentinel/api/websocket"
	_ "github.com/OldStager01/host-sentinel/docs"
	"github.com/OldStager01/host-sentinel/internal/auth"
	"github.com/OldStager01/host-sentinel/internal/events"
	"github.com/OldStager01/host-sentinel/internal/export"
	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/config"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

const maxRequestBytes = 1 << 20

// TelemetryService is what the API needs from the orchestrator.
type TelemetryService interface {
	handlers.SummarySource
	Ready() bool
	Publisher() *events.Publisher
	SubscribeAllEvents() <-chan *models.Event
}

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.APIConfig
	authService *auth.Service
	service     TelemetryService
	exporter    *export.Exporter
	wsHub       *websocket.Hub
	wsBridge    *websocket.EventBridge
}

func NewServer(cfg *config.Config, service TelemetryService, exporter *export.Exporter) *Server {
	if cfg.App.Mode == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	authService := auth.NewService(cfg.API.JWTSecret, cfg.API.JWTDuration, cfg.API.JWTIssuer)
	wsHub := websocket.NewHub(&cfg.WebSocket)

	s := &Server{
		router:      router,
		config:      cfg.API,
		authService: authService,
		service:     service,
		exporter:    exporter,
		wsHub:       wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	s.wsBridge = websocket.NewEventBridge(wsHub, service.SubscribeAllEvents())
	s.wsBridge.Start()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSFromConfig(s.config.CORS)))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.RequestSizeLimit(maxRequestBytes))

	rateLimiter := middleware.NewRateLimiter(s.config.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

func (s *Server) setupRoutes() {
	credentials := auth.StaticCredentials{
		Username:     s.config.AdminUsername,
		PasswordHash: s.config.AdminPasswordHash,
	}
	if credentials.PasswordHash == "" {
		logger.Warn("api.admin_password_hash is not set, login is disabled")
	}

	publisher := s.service.Publisher()

	healthHandler := handlers.NewHealthHandler(s.service.Ready, s.service.Targets)
	authHandler := handlers.NewAuthHandler(credentials, s.authService)
	telemetryHandler := handlers.NewTelemetryHandler(s.service, s.exporter, publisher.ExportWritten)

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.POST("/auth/login", middleware.AuthRateLimiter(s.config.AuthRateLimit), authHandler.Login)

	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	// Protected routes
	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(s.authService))
	{
		v1.GET("/summary", telemetryHandler.Summary)
		v1.GET("/alerts", telemetryHandler.Alerts)
		v1.GET("/history/:metric", telemetryHandler.History)
		v1.GET("/forecast", telemetryHandler.Forecast)
		v1.POST("/exports", telemetryHandler.Export)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	idle := s.config.IdleTimeout
	if idle <= 0 {
		idle = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  idle,
	}

	logger.Infof("API server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.wsBridge.Stop()
	s.wsHub.Stop()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}

func (s *Server) AuthService() *auth.Service {
	return s.authService
}
