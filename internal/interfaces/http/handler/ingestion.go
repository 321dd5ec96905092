package handler

import (
	"context"
	"strings"
	"time"

	salesapp "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader carries the client's retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// Ingester records sales reported by field hardware
type Ingester interface {
	Ingest(ctx context.Context, req salesapp.IngestRequest) (*salesapp.IngestResult, error)
}

// IngestionHandler serves the public sale ingestion endpoint
type IngestionHandler struct {
	BaseHandler
	ingester Ingester
}

// NewIngestionHandler creates a new IngestionHandler
func NewIngestionHandler(ingester Ingester) *IngestionHandler {
	return &IngestionHandler{ingester: ingester}
}

// IngestTransactionRequest is the body posted by payment terminals.
// Key names follow the hardware firmware; matching is case-insensitive.
type IngestTransactionRequest struct {
	PaymentType  string         `json:"paymentType"`
	Amount       hardwareAmount `json:"amount"`
	ItemNumber   string         `json:"itemNumber"`
	Currency     string         `json:"currency"`
	SerialNumber string         `json:"serialNumber"`
	CreatedAt    hardwareTime   `json:"createdAt"`
}

// hardwareTimeLayouts are tried in order. Timestamps without a zone are UTC.
var hardwareTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

type hardwareTime struct{ time.Time }

func (t *hardwareTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range hardwareTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return shared.NewValidationError("created_at", "createdAt must be an ISO-8601 timestamp")
}

type hardwareAmount struct{ decimal.Decimal }

func (a *hardwareAmount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return shared.NewValidationError("amount", "amount must be a decimal number")
	}
	return nil
}

// Ingest records one sale.
// POST /api/transactions/add
//
// The owning tenant is derived from the device serial; no credentials are involved.
// A repeated Idempotency-Key for the same serial returns the first transaction id.
func (h *IngestionHandler) Ingest(c *gin.Context) {
	var req IngestTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := logger.WithDeviceSerial(c.Request.Context(), strings.TrimSpace(req.SerialNumber))
	c.Request = c.Request.WithContext(ctx)

	result, err := h.ingester.Ingest(ctx, salesapp.IngestRequest{
		SerialNumber:   req.SerialNumber,
		ItemNumber:     req.ItemNumber,
		Amount:         req.Amount.Decimal,
		Currency:       req.Currency,
		PaymentType:    req.PaymentType,
		CreatedAt:      req.CreatedAt.Time,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
