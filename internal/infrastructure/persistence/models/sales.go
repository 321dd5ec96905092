package models

import (
	"time"

	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for a recorded sale.
// It has no tenant column: ownership follows the device.
type TransactionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	PaymentType      string          `gorm:"type:varchar(10);not null"`
	DeviceID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendingProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	RecordedAt       time.Time       `gorm:"not null"`

	Device         *DeviceModel         `gorm:"foreignKey:DeviceID;constraint:OnDelete:RESTRICT"`
	VendingProduct *VendingProductModel `gorm:"foreignKey:VendingProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *sales.Transaction {
	return &sales.Transaction{
		ID:               m.ID,
		Amount:           m.Amount,
		Currency:         sales.Currency(m.Currency),
		PaymentType:      sales.PaymentType(m.PaymentType),
		DeviceID:         m.DeviceID,
		VendingProductID: m.VendingProductID,
		CreatedAt:        m.CreatedAt,
		RecordedAt:       m.RecordedAt,
	}
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction
func TransactionModelFromDomain(t *sales.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:               t.ID,
		Amount:           t.Amount,
		Currency:         string(t.Currency),
		PaymentType:      string(t.PaymentType),
		DeviceID:         t.DeviceID,
		VendingProductID: t.VendingProductID,
		CreatedAt:        t.CreatedAt,
		RecordedAt:       t.RecordedAt,
	}
}

// All returns every model in dependency order, for schema creation in tests
func All() []any {
	return []any{
		&CustomerModel{},
		&PaymentDeviceModel{},
		&VendingDeviceModel{},
		&VendingProductModel{},
		&DeviceModel{},
		&TransactionModel{},
	}
}
