package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

// GormVendingProductRepository implements ProductRepository using GORM
type GormVendingProductRepository struct {
	db       *gorm.DB
	lockRows bool
}

// NewGormVendingProductRepository creates a new GormVendingProductRepository
func NewGormVendingProductRepository(db *gorm.DB) *GormVendingProductRepository {
	return &GormVendingProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormVendingProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.VendingProduct, error) {
	return r.first(r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id))
}

// FindByPLU finds the product a tenant registered under plu
func (r *GormVendingProductRepository) FindByPLU(ctx context.Context, tenantID uuid.UUID, plu string) (*catalog.VendingProduct, error) {
	query := r.db.WithContext(ctx)
	if r.lockRows {
		query = shareLock(query)
	}
	return r.first(query.Where("tenant_id = ? AND plu = ?", tenantID, strings.TrimSpace(plu)))
}

func (r *GormVendingProductRepository) first(query *gorm.DB) (*catalog.VendingProduct, error) {
	var model models.VendingProductModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the products of a tenant
func (r *GormVendingProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.VendingProduct, error) {
	var productModels []models.VendingProductModel
	query := applyPage(r.filtered(ctx, tenantID, filter), filter, "", VendingProductSortFields)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.VendingProduct, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// CountForTenant counts the products of a tenant matching the filter
func (r *GormVendingProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormVendingProductRepository) Save(ctx context.Context, product *catalog.VendingProduct) error {
	model := models.VendingProductModelFromDomain(product)
	return translateSaveError(integrity.KindVendingProduct, r.db.WithContext(ctx).Save(model).Error)
}

// DeleteForTenant deletes a product within a tenant
func (r *GormVendingProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VendingProductModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateDeleteError(integrity.KindVendingProduct, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVendingProductRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.VendingProductModel{}).Where("tenant_id = ?", tenantID)
	return applySearch(query, filter.Search, "plu", "name", "category")
}

// Ensure GormVendingProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormVendingProductRepository)(nil)
