package catalog

import (
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductDetails carries the editable fields of a vending product
type ProductDetails struct {
	PLU         string
	Name        string
	Description string
	Category    string
}

// VendingProduct is an item a tenant sells through its machines.
// PLU is unique within a tenant; the same PLU may name different products for different tenants.
type VendingProduct struct {
	shared.TenantAggregateRoot
	ProductDetails
}

// NewVendingProduct creates a new vending product
func NewVendingProduct(tenantID uuid.UUID, details ProductDetails) (*VendingProduct, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "tenant is required")
	}
	normalized, err := details.normalize()
	if err != nil {
		return nil, err
	}

	return &VendingProduct{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductDetails:      normalized,
	}, nil
}

// Update replaces every editable field
func (p *VendingProduct) Update(details ProductDetails) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}

	p.ProductDetails = normalized
	p.MarkModified()
	return nil
}

// Information returns "Name Description"
func (p *VendingProduct) Information() string {
	return shared.JoinNonEmpty(" ", p.Name, p.Description)
}

func (d ProductDetails) normalize() (ProductDetails, error) {
	var err error
	if d.PLU, err = shared.RequireText("plu", d.PLU, 50); err != nil {
		return d, err
	}
	if d.Name, err = shared.RequireText("name", d.Name, 200); err != nil {
		return d, err
	}
	if d.Description, err = shared.OptionalText("description", d.Description, 1000); err != nil {
		return d, err
	}
	if d.Category, err = shared.OptionalText("category", d.Category, 100); err != nil {
		return d, err
	}
	return d, nil
}
