package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appshipstation "github.com/commerce/shipstation/internal/application/shipstation"
	"github.com/commerce/shipstation/internal/infrastructure/auth"
	"github.com/commerce/shipstation/internal/infrastructure/config"
	"github.com/commerce/shipstation/internal/infrastructure/event"
	"github.com/commerce/shipstation/internal/infrastructure/logger"
	"github.com/commerce/shipstation/internal/infrastructure/persistence"
	"github.com/commerce/shipstation/internal/infrastructure/settingsstore"
	"github.com/commerce/shipstation/internal/infrastructure/storage"
	"github.com/commerce/shipstation/internal/infrastructure/telemetry"
	"github.com/commerce/shipstation/internal/interfaces/http/handler"
	"github.com/commerce/shipstation/internal/interfaces/http/middleware"
	"github.com/commerce/shipstation/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			ShipStation Bridge API
//	@version		1.0
//	@description	ShipStation custom store endpoint and settings API for a Drupal Commerce order store

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShipStation bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	// Tracing
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	shippingMethodRepo := persistence.NewGormShippingMethodRepository(db.DB)

	// ShipStation settings
	settingsProvider, err := appshipstation.NewSettingsProvider(ctx,
		settingsstore.NewFileStore(cfg.ShipStation.SettingsFile), log)
	if err != nil {
		log.Fatal("Failed to load ShipStation settings", zap.Error(err))
	}

	// Product image URLs
	var presigner storage.ObjectPresigner
	if cfg.Storage.S3Enabled {
		s3Presigner, err := storage.NewS3Presigner(ctx, &cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 presigner", zap.Error(err))
		}
		presigner = s3Presigner
	}
	imageURLs := storage.NewImageURLBuilder(cfg.ShipStation.PublicFilesBaseURL, cfg.ShipStation.ThumbnailStyle, presigner)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewShipStationAuditHandler(log))

	// Application services
	plugins := appshipstation.NewPluginRegistry(log)
	authenticator := appshipstation.NewAuthenticator(settingsProvider, log)
	exportService := appshipstation.NewExportService(appshipstation.ExportServiceConfig{
		Settings:       settingsProvider,
		OrderRepo:      orderRepo,
		Images:         imageURLs,
		Plugins:        plugins,
		EventPublisher: eventBus,
		Logger:         log,
	})
	shipNotifyService := appshipstation.NewShipNotifyService(orderRepo, shipmentRepo, eventBus, log)
	settingsService := appshipstation.NewSettingsService(settingsProvider, shippingMethodRepo,
		appshipstation.FieldCatalog(cfg.ShipStation.FieldCatalog))

	// Handlers
	shipStationHandler := handler.NewShipStationHandler(settingsProvider, authenticator, exportService, shipNotifyService, log)
	adminHandler := handler.NewShipStationAdminHandler(settingsService, log)
	healthHandler := handler.NewHealthHandler(db, log)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span per request
	// 4. Logger - Log requests with credentials masked
	// 5. Security - Add security headers
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log, handler.SensitiveQueryParams...))
	engine.Use(middleware.SecurityHeaders(middleware.SecurityConfig{
		HSTSEnabled:           cfg.HTTP.HSTSMaxAge > 0,
		HSTSMaxAge:            cfg.HTTP.HSTSMaxAge,
		HSTSIncludeSubdomains: true,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Register(engine, router.Handlers{
		Health:      healthHandler,
		ShipStation: shipStationHandler,
		Settings:    adminHandler,
	}, router.Config{
		APIVersion: "v1",
		AdminAuth: []gin.HandlerFunc{middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator:          auth.NewJWTService(cfg.JWT),
			RequiredPermission: auth.PermissionAdminister,
			Logger:             log,
		})},
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
