package models

import (
	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// VendingProductModel is the persistence model for the VendingProduct aggregate.
// The PLU is unique per tenant.
type VendingProductModel struct {
	AggregateModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_vending_products_tenant_plu,priority:1"`
	PLU         string    `gorm:"column:plu;type:varchar(50);not null;uniqueIndex:uq_vending_products_tenant_plu,priority:2"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (VendingProductModel) TableName() string {
	return "vending_products"
}

// ToDomain converts the persistence model to a domain VendingProduct entity
func (m *VendingProductModel) ToDomain() *catalog.VendingProduct {
	return &catalog.VendingProduct{
		TenantAggregateRoot: tenantRoot(m.AggregateModel, m.TenantID),
		ProductDetails: catalog.ProductDetails{
			PLU:         m.PLU,
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
		},
	}
}

// VendingProductModelFromDomain creates a persistence model from a domain VendingProduct entity
func VendingProductModelFromDomain(p *catalog.VendingProduct) *VendingProductModel {
	m := &VendingProductModel{
		TenantID:    p.TenantID,
		PLU:         p.PLU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
