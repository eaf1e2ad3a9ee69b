package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"

	"growmate/docs"
	"growmate/internal/auth"
	"growmate/internal/cache"
	"growmate/internal/config"
	"growmate/internal/db"
	"growmate/internal/external"
	"growmate/internal/handler"
	"growmate/internal/logger"
	"growmate/internal/metrics"
	"growmate/internal/notify"
	"growmate/internal/repository"
	"growmate/internal/router"
	"growmate/internal/service"
	"growmate/internal/worker"
)

// @title GrowMate API
// @version 1.0
// @description Gardening assistant API: gardens, plants, care tasks, notifications and plant knowledge.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = appLogger.Close() }()

	gormDB, err := db.NewMySQL(cfg.MySQL)
	if err != nil {
		appLogger.Fatalw("database init failed", "error", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		appLogger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			appLogger.Fatalw("reset database failed", "error", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		appLogger.Fatalw("migration failed", "error", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = cacheClient.Close() }()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		appLogger.Warnw("redis unavailable, token and user caching degraded", "error", err)
	}
	cancelPing()

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}
	clk := clock.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	gardenRepo := repository.NewGardenRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	knowledgeBaseRepo := repository.NewKnowledgeBaseRepository(gormDB)
	trackingLogRepo := repository.NewTrackingLogRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// External APIs
	httpClient := &http.Client{Timeout: 10 * time.Second}
	weatherService := service.NewWeatherService(
		external.NewWeatherClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, httpClient),
		cfg.Weather.CacheTTL, clk, appMetrics,
	)
	catalogService := service.NewCatalogService(
		external.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, httpClient),
		cfg.Catalog.CacheTTL, clk, appMetrics,
	)

	// Initialize services
	templateService := service.NewTemplateService()
	notificationService := service.NewNotificationService(notificationRepo)
	trackingLogService := service.NewTrackingLogService(trackingLogRepo)
	taskService := service.NewTaskService(taskRepo, trackingLogRepo, notificationService, catalogService, appMetrics, clk, appLogger)
	gardenService := service.NewGardenService(gardenRepo, templateService, taskService, clk, appLogger)
	knowledgeBaseService := service.NewKnowledgeBaseService(knowledgeBaseRepo, taskService)
	userService := service.NewUserService(userRepo, gardenService, cacheClient)
	authService := service.NewAuthService(userRepo, gardenService, jwtService, tokenStore, service.AuthOptions{
		Mailer:        notify.NewEmailNotifier(cfg.Email, appLogger),
		PublicBaseURL: cfg.App.PublicBaseURL,
		Clock:         clk,
		Logger:        appLogger,
		Cache:         cacheClient,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	router.Register(e, router.Deps{
		Config:  cfg,
		Logger:  appLogger,
		JWT:     jwtService,
		Tokens:  tokenStore,
		Metrics: appMetrics,
	}, router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Garden:        handler.NewGardenHandler(gardenService),
		Task:          handler.NewTaskHandler(taskService),
		Notification:  handler.NewNotificationHandler(notificationService),
		KnowledgeBase: handler.NewKnowledgeBaseHandler(knowledgeBaseService),
		TrackingLog:   handler.NewTrackingLogHandler(trackingLogService),
		Template:      handler.NewTemplateHandler(templateService),
		External:      handler.NewExternalHandler(weatherService, catalogService),
	})

	if cfg.App.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.App.SwaggerHost
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := worker.NewWeatherRefresher(weatherService, cfg.Weather.RefreshInterval, appLogger,
		worker.WithClock(clk),
		worker.WithRecorder(appMetrics),
	)
	go refresher.Run(ctx)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Infow("server starting", "addr", addr, "swagger", "http://localhost:"+cfg.Server.Port+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server start failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("graceful shutdown failed", "error", err)
	}
}
