package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/futurevend/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// mockResourceService implements ResourceService for any record kind
type mockResourceService[Req, Stored, View, Item any] struct {
	mock.Mock
}

func (m *mockResourceService[Req, Stored, View, Item]) Create(ctx context.Context, tenantID uuid.UUID, req Req) (*Stored, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stored), args.Error(1)
}

func (m *mockResourceService[Req, Stored, View, Item]) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*View, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*View), args.Error(1)
}

func (m *mockResourceService[Req, Stored, View, Item]) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]Item), args.Get(1).(int64), args.Error(2)
}

func (m *mockResourceService[Req, Stored, View, Item]) Update(ctx context.Context, tenantID, id uuid.UUID, req Req) (*Stored, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stored), args.Error(1)
}

func (m *mockResourceService[Req, Stored, View, Item]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// withTenant stands in for JWTAuth
func withTenant(tenantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID)
		c.Next()
	}
}

// newTestEngine mounts routes under /api/v1, authenticated as tenantID unless it is uuid.Nil
func newTestEngine(tenantID uuid.UUID, mount func(rg *gin.RouterGroup)) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	if tenantID != uuid.Nil {
		api.Use(withTenant(tenantID))
	}
	mount(api)
	return engine
}

func perform(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) *dto.ErrorInfo {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
	return resp.Error
}
