package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	salesapp "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/futurevend/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIngester struct {
	mock.Mock
}

func (m *mockIngester) Ingest(ctx context.Context, req salesapp.IngestRequest) (*salesapp.IngestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.IngestResult), args.Error(1)
}

func ingestionEngine(ing *mockIngester) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.POST("/api/transactions/add", NewIngestionHandler(ing).Ingest)
	return engine
}

func postIngest(engine *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const hardwareBody = `{"paymentType":"card","amount":2.50,"itemNumber":"12345","currency":"EUR","serialNumber":"ABC123","createdAt":"2024-05-01T10:15:00Z"}`

func TestIngestionHandler_Ingest(t *testing.T) {
	t.Run("records the sale and answers 201", func(t *testing.T) {
		ing := new(mockIngester)
		txID := uuid.New()
		ing.On("Ingest", mock.Anything, mock.MatchedBy(func(r salesapp.IngestRequest) bool {
			return r.SerialNumber == "ABC123" &&
				r.ItemNumber == "12345" &&
				r.Amount.Equal(decimal.RequireFromString("2.50")) &&
				r.Currency == "EUR" &&
				r.PaymentType == "card" &&
				r.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)) &&
				r.IdempotencyKey == "retry-1"
		})).Return(&salesapp.IngestResult{TransactionID: txID}, nil)

		w := postIngest(ingestionEngine(ing), hardwareBody, map[string]string{IdempotencyKeyHeader: "retry-1"})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, txID.String(), data["transaction_id"])
		assert.Equal(t, false, data["replayed"])
		ing.AssertExpectations(t)
	})

	t.Run("accepts the firmware's pascal-case keys and zone-less timestamps", func(t *testing.T) {
		ing := new(mockIngester)
		ing.On("Ingest", mock.Anything, mock.MatchedBy(func(r salesapp.IngestRequest) bool {
			return r.SerialNumber == "ABC123" &&
				r.Amount.Equal(decimal.RequireFromString("1.2")) &&
				r.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC))
		})).Return(&salesapp.IngestResult{TransactionID: uuid.New()}, nil)

		body := `{"PaymentType":"cash","Amount":"1.20","ItemNumber":"7","Currency":"BGN","SerialNumber":"ABC123","CreatedAt":"2024-05-01 10:15:00"}`
		w := postIngest(ingestionEngine(ing), body, nil)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ing.AssertExpectations(t)
	})

	t.Run("maps an unknown serial to 422", func(t *testing.T) {
		ing := new(mockIngester)
		ing.On("Ingest", mock.Anything, mock.Anything).
			Return(nil, shared.NewFieldError(shared.CodeUnknownDevice, "serial_number", "Invalid device serial number"))

		w := postIngest(ingestionEngine(ing), hardwareBody, nil)

		info := requireError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeUnknownDevice)
		assert.Equal(t, "serial_number", info.Field)
		assert.Equal(t, "Invalid device serial number", info.Message)
	})

	t.Run("maps an unknown PLU to 422", func(t *testing.T) {
		ing := new(mockIngester)
		ing.On("Ingest", mock.Anything, mock.Anything).Return(nil, salesapp.ErrUnknownProduct)

		w := postIngest(ingestionEngine(ing), hardwareBody, nil)

		info := requireError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeUnknownProduct)
		assert.Equal(t, "item_number", info.Field)
	})

	t.Run("rejects an unparseable timestamp before ingesting", func(t *testing.T) {
		ing := new(mockIngester)
		body := strings.Replace(hardwareBody, "2024-05-01T10:15:00Z", "yesterday", 1)

		w := postIngest(ingestionEngine(ing), body, nil)

		info := requireError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Equal(t, "created_at", info.Field)
		ing.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-numeric amount", func(t *testing.T) {
		ing := new(mockIngester)
		body := strings.Replace(hardwareBody, "2.50", `"two"`, 1)

		w := postIngest(ingestionEngine(ing), body, nil)

		info := requireError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Equal(t, "amount", info.Field)
	})

	t.Run("rejects a body that is not JSON", func(t *testing.T) {
		ing := new(mockIngester)

		w := postIngest(ingestionEngine(ing), "paymentType=card", nil)

		requireError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})

	t.Run("does not leak internal failures", func(t *testing.T) {
		ing := new(mockIngester)
		ing.On("Ingest", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		w := postIngest(ingestionEngine(ing), hardwareBody, nil)

		info := requireError(t, w, http.StatusInternalServerError, dto.ErrCodeInternal)
		assert.Equal(t, "An unexpected error occurred", info.Message)
	})
}
