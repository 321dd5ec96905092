package sales

import (
	"context"

	"github.com/futurevend/backend/internal/application/fleet"
	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/google/uuid"
)

// ProductLookup finds a tenant's product by PLU
type ProductLookup interface {
	FindByPLU(ctx context.Context, tenantID uuid.UUID, plu string) (*catalog.VendingProduct, error)
}

// TransactionScope runs ingestion steps in one database transaction.
// If fn returns an error, nothing it wrote is kept.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories ingestion uses, all bound
// to the same database transaction. Devices and Products hold a shared lock on
// the rows they return until the transaction ends, so a concurrent delete of a
// resolved device or product waits for the insert (and then fails on the
// foreign key) instead of leaving an orphaned transaction.
type TransactionalRepositories interface {
	Devices() fleet.SerialLookup
	Products() ProductLookup
	Transactions() sales.TransactionRepository
}
