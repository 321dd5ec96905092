package persistence

import (
	"context"

	"gorm.io/gorm"

	appfleet "github.com/futurevend/backend/internal/application/fleet"
	appsales "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/sales"
)

// GormTransactionScope implements the ingestion TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
// A foreign key failure on the final insert means the device or product was
// deleted after it was resolved; it is reported as the matching unknown reference.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err == nil {
		return nil
	}
	if name, ok := foreignKeyViolation(err); ok {
		if name == "fk_transactions_vending_product" {
			return appsales.ErrUnknownProduct
		}
		return appfleet.ErrUnknownDevice
	}
	return err
}

// gormTransactionalRepositories provides access to the ingestion repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Devices returns the installation lookup, reading rows FOR SHARE.
func (r *gormTransactionalRepositories) Devices() appfleet.SerialLookup {
	return &GormDeviceRepository{db: r.tx, lockRows: true}
}

// Products returns the product lookup, reading rows FOR SHARE.
func (r *gormTransactionalRepositories) Products() appsales.ProductLookup {
	return &GormVendingProductRepository{db: r.tx, lockRows: true}
}

// Transactions returns the transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Transactions() sales.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
