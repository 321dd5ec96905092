package catalog

import (
	"context"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for vending product persistence
type ProductRepository interface {
	shared.TenantRepository[VendingProduct]

	// FindByPLU finds the product with the PLU within a tenant
	FindByPLU(ctx context.Context, tenantID uuid.UUID, plu string) (*VendingProduct, error)
}
