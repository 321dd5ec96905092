// Package sales holds sale events reported by field hardware.
package sales

import (
	"strings"
	"time"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code of a sale amount
type Currency string

const (
	CurrencyBGN Currency = "BGN"
	CurrencyEUR Currency = "EUR"
)

// IsValid reports whether c is an accepted currency
func (c Currency) IsValid() bool {
	return c == CurrencyBGN || c == CurrencyEUR
}

// PaymentType is the way a sale was paid
type PaymentType string

const (
	PaymentTypeCash PaymentType = "cash"
	PaymentTypeCard PaymentType = "card"
)

// IsValid reports whether p is an accepted payment type
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeCash || p == PaymentTypeCard
}

// ParseCurrency accepts a currency code in any letter case
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", shared.NewValidationError("currency", "currency must be one of BGN, EUR")
	}
	return c, nil
}

// ParsePaymentType accepts a payment type in any letter case
func ParsePaymentType(s string) (PaymentType, error) {
	p := PaymentType(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", shared.NewValidationError("payment_type", "payment type must be one of cash, card")
	}
	return p, nil
}

// Amount bounds, both inclusive
var (
	MinAmount = decimal.RequireFromString("0.01")
	MaxAmount = decimal.NewFromInt(10000)
)

// ValidateAmount checks that amount is within bounds with at most two decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinAmount) || amount.GreaterThan(MaxAmount) {
		return shared.NewValidationError("amount", "amount must be between 0.01 and 10000")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return shared.NewValidationError("amount", "amount must have at most two decimal places")
	}
	return nil
}

// Transaction is a sale reported by an installation. It belongs to the tenant
// that owns its device and is never edited after ingestion.
type Transaction struct {
	ID               uuid.UUID
	Amount           decimal.Decimal
	Currency         Currency
	PaymentType      PaymentType
	DeviceID         uuid.UUID
	VendingProductID uuid.UUID
	// CreatedAt is the sale time reported by the hardware
	CreatedAt time.Time
	// RecordedAt is when the sale was ingested
	RecordedAt time.Time
}

// NewTransaction creates a transaction linking a resolved device and product
func NewTransaction(deviceID, productID uuid.UUID, amount decimal.Decimal, currency Currency, paymentType PaymentType, createdAt time.Time) (*Transaction, error) {
	if deviceID == uuid.Nil {
		return nil, shared.NewValidationError("device_id", "device is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("vending_product_id", "vending product is required")
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if !currency.IsValid() {
		return nil, shared.NewValidationError("currency", "currency must be one of BGN, EUR")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewValidationError("payment_type", "payment type must be one of cash, card")
	}
	if createdAt.IsZero() {
		return nil, shared.NewValidationError("created_at", "created at is required")
	}

	return &Transaction{
		ID:               uuid.New(),
		Amount:           amount,
		Currency:         currency,
		PaymentType:      paymentType,
		DeviceID:         deviceID,
		VendingProductID: productID,
		CreatedAt:        createdAt.UTC(),
		RecordedAt:       time.Now().UTC(),
	}, nil
}
