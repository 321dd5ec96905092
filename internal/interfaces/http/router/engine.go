package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/futurevend/backend/internal/infrastructure/config"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/futurevend/backend/internal/infrastructure/telemetry"
	"github.com/futurevend/backend/internal/interfaces/http/handler"
	"github.com/futurevend/backend/internal/interfaces/http/middleware"
)

// IngestPath is the public endpoint field hardware posts sales to
const IngestPath = "/api/transactions/add"

// Handlers groups the HTTP handlers served by the engine
type Handlers struct {
	System         *handler.SystemHandler
	Ingestion      *handler.IngestionHandler
	Customers      *handler.CustomerHandler
	PaymentDevices *handler.PaymentDeviceHandler
	VendingDevices *handler.VendingDeviceHandler
	Products       *handler.ProductHandler
	Devices        *handler.DeviceHandler
	Transactions   *handler.TransactionHandler
}

// Deps are the collaborators of the engine. Metrics may be nil.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tokens   middleware.TokenValidator
	Metrics  *telemetry.Metrics
	Handlers Handlers
}

// Engine is the gin engine plus the rate limiters it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.KeyedRateLimiter
}

// Close stops the background sweeps of the rate limiters
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Close()
	}
}

// New builds the engine.
//
// Public: GET /health, GET /metrics and POST /api/transactions/add.
// Tenant API: /api/v1/{customers,payment-devices,vending-devices,products,devices,transactions}
// behind JWTAuth.
func New(deps Deps) *Engine {
	cfg := deps.Config
	log := deps.Logger
	middleware.SetupValidator()

	engine := gin.New()
	e := &Engine{Engine: engine}
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	var observer middleware.RateLimitObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.GinMiddleware())
	}
	engine.Use(middleware.Secure())

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))

	h := deps.Handlers
	engine.GET("/health", h.System.Health)
	if cfg.Telemetry.MetricsEnabled {
		engine.GET("/metrics", h.System.Metrics)
	}

	ingest := []gin.HandlerFunc{middleware.BodyLimit(cfg.Ingestion.MaxBodySize)}
	if cfg.Ingestion.RateLimitEnabled {
		limiter := middleware.NewKeyedRateLimiter(cfg.Ingestion.RateLimitPerSecond, cfg.Ingestion.RateLimitBurst)
		e.limiters = append(e.limiters, limiter)
		ingest = append(ingest, middleware.RateLimitByKey(limiter, "ingestion", middleware.IngestionKey, observer))
		log.Info("Ingestion rate limiting enabled",
			zap.Float64("per_second", cfg.Ingestion.RateLimitPerSecond),
			zap.Int("burst", cfg.Ingestion.RateLimitBurst),
		)
	}
	engine.POST(IngestPath, append(ingest, h.Ingestion.Ingest)...)

	api := []gin.HandlerFunc{middleware.BodyLimit(cfg.HTTP.MaxBodySize)}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewWindowRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		api = append(api, middleware.RateLimitByKey(limiter, "api", middleware.ClientIPKey, observer))
	}
	api = append(api, middleware.JWTAuth(deps.Tokens, log))

	NewRouter(engine, WithAPIVersion("v1"), WithMiddleware(api...)).
		Register("/customers", h.Customers).
		Register("/payment-devices", h.PaymentDevices).
		Register("/vending-devices", h.VendingDevices).
		Register("/products", h.Products).
		Register("/devices", h.Devices).
		Register("/transactions", h.Transactions).
		Setup()

	return e
}
