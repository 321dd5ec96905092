package sales

import (
	"context"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transaction persistence.
// Tenant scoping goes through the owning device.
type TransactionRepository interface {
	// Create inserts a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// FindByIDForTenant finds a transaction whose device belongs to the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)

	// DeleteForTenant deletes a transaction whose device belongs to the tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountByDevice counts transactions reported by a device
	CountByDevice(ctx context.Context, deviceID uuid.UUID) (int64, error)
}

// TransactionQuery serves the flattened transaction read models
type TransactionQuery interface {
	ListTransactions(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]TransactionListItem, int64, error)
	GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*TransactionDetails, error)
}

// TransactionFilter narrows the transaction list
type TransactionFilter struct {
	shared.Filter
	DeviceID    *uuid.UUID
	PaymentType PaymentType
	Currency    Currency
}
