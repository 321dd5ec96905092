// Command server runs the FutureVend HTTP API: the public ingestion endpoint
// for field hardware and the tenant back-office API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/futurevend/backend/internal/bootstrap"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/auth"
	"github.com/futurevend/backend/internal/infrastructure/cache"
	"github.com/futurevend/backend/internal/infrastructure/config"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/futurevend/backend/internal/infrastructure/persistence"
	"github.com/futurevend/backend/internal/infrastructure/telemetry"
	"github.com/futurevend/backend/internal/interfaces/http/handler"
	"github.com/futurevend/backend/internal/interfaces/http/router"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	base, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.ForApp(base, cfg.App)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FutureVend backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error flushing traces", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DBName))

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = true
		tracingCfg.DBName = cfg.Database.DBName
		if err := telemetry.NewDBTracingPlugin(tracingCfg, log).Register(db.DB); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}

	var metrics *telemetry.Metrics
	var metricsHandler http.Handler
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
		metricsHandler = metrics.Handler()
		if sqlDB, err := db.SQL(); err == nil {
			if err := metrics.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
				log.Warn("Connection pool metrics disabled", zap.Error(err))
			}
		}
	}

	opts := bootstrap.Options{
		Logger:  log,
		Metrics: metricsHandler,
		IdempotencyConfig: shared.IdempotencyConfig{
			TTL:     cfg.Ingestion.IdempotencyTTL,
			Enabled: cfg.Ingestion.IdempotencyEnabled,
		},
		HealthChecks: map[string]handler.HealthCheck{},
	}
	if metrics != nil {
		opts.Recorder = metrics
	}
	if cfg.Ingestion.IdempotencyEnabled {
		store, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			_ = store.Close()
		}()
		opts.Idempotency = store
		if p, ok := store.(pinger); ok {
			opts.HealthChecks["redis"] = p.Ping
		}
	}

	container := bootstrap.New(db.DB, opts)
	engine := router.New(router.Deps{
		Config:   cfg,
		Logger:   log,
		Tokens:   auth.NewJWTService(cfg.JWT),
		Metrics:  metrics,
		Handlers: container.Handlers(),
	})
	defer engine.Close()

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
