package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

type namedCheck struct {
	name  string
	check HealthCheck
}

// SystemHandler serves liveness and metrics endpoints
type SystemHandler struct {
	BaseHandler
	startTime    time.Time
	checks       []namedCheck
	checkTimeout time.Duration
	metrics      http.Handler
}

// NewSystemHandler creates a new SystemHandler. metrics may be nil.
func NewSystemHandler(metrics http.Handler) *SystemHandler {
	return &SystemHandler{
		startTime:    time.Now(),
		checkTimeout: 2 * time.Second,
		metrics:      metrics,
	}
}

// AddCheck registers a dependency probed by Health
func (h *SystemHandler) AddCheck(name string, check HealthCheck) *SystemHandler {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
	return h
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Time      string            `json:"time"`
	Uptime    string            `json:"uptime"`
	GoVersion string            `json:"go_version"`
	Checks    map[string]string `json:"checks"`
}

// Health probes every registered dependency.
// GET /health answers 200 when all are reachable and 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.checkTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Time:      time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		Checks:    make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for _, nc := range h.checks {
		if err := nc.check(ctx); err != nil {
			logger.FromContext(c.Request.Context()).Warn("Health check failed",
				zap.String("check", nc.name),
				zap.Error(err),
			)
			resp.Checks[nc.name] = "error"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[nc.name] = "ok"
	}

	c.JSON(status, resp)
}

// Metrics serves the Prometheus registry
// GET /metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
