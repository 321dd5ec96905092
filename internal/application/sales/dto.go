package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngestRequest is a sale reported by field hardware
type IngestRequest struct {
	SerialNumber string
	ItemNumber   string
	Amount       decimal.Decimal
	Currency     string
	PaymentType  string
	CreatedAt    time.Time
	// IdempotencyKey is optional; retries with the same key are answered with the first result
	IdempotencyKey string
}

// IngestResult is the outcome of a successful ingestion
type IngestResult struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Replayed      bool      `json:"replayed"`
}

// TransactionListFilter is the query for the tenant's transaction list
type TransactionListFilter struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by" binding:"omitempty,oneof=created_at amount"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search      string `form:"search"`
	DeviceID    string `form:"device_id" binding:"omitempty,uuid"`
	PaymentType string `form:"payment_type" binding:"omitempty,payment_type"`
	Currency    string `form:"currency" binding:"omitempty,currency"`
}
