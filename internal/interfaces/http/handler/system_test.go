package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemEngine(h *SystemHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/health", h.Health)
	engine.GET("/metrics", h.Metrics)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy when every check passes", func(t *testing.T) {
		h := NewSystemHandler(nil).
			AddCheck("database", func(context.Context) error { return nil })

		w := perform(systemEngine(h), http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, resp.Checks)
		assert.NotEmpty(t, resp.GoVersion)
	})

	t.Run("503 when a dependency is down", func(t *testing.T) {
		h := NewSystemHandler(nil).
			AddCheck("database", func(context.Context) error { return nil }).
			AddCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") })

		w := perform(systemEngine(h), http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "ok", resp.Checks["database"])
		assert.Equal(t, "error", resp.Checks["redis"])
	})
}

func TestSystemHandler_Metrics(t *testing.T) {
	t.Run("serves the registry", func(t *testing.T) {
		metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("futurevend_up 1\n"))
		})
		h := NewSystemHandler(metrics)

		w := httptest.NewRecorder()
		systemEngine(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "futurevend_up 1")
	})

	t.Run("404 without a registry", func(t *testing.T) {
		w := perform(systemEngine(NewSystemHandler(nil)), http.MethodGet, "/metrics", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
