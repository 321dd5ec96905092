package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

// GormPaymentDeviceRepository implements PaymentDeviceRepository using GORM
type GormPaymentDeviceRepository struct {
	db *gorm.DB
}

// NewGormPaymentDeviceRepository creates a new GormPaymentDeviceRepository
func NewGormPaymentDeviceRepository(db *gorm.DB) *GormPaymentDeviceRepository {
	return &GormPaymentDeviceRepository{db: db}
}

// FindByIDForTenant finds a payment device by ID within a tenant
func (r *GormPaymentDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.PaymentDevice, error) {
	var model models.PaymentDeviceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the payment devices of a tenant
func (r *GormPaymentDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.PaymentDevice, error) {
	var deviceModels []models.PaymentDeviceModel
	query := applyPage(r.filtered(ctx, tenantID, filter), filter, "", PaymentDeviceSortFields)
	if err := query.Find(&deviceModels).Error; err != nil {
		return nil, err
	}

	devices := make([]fleet.PaymentDevice, len(deviceModels))
	for i, model := range deviceModels {
		devices[i] = *model.ToDomain()
	}
	return devices, nil
}

// CountForTenant counts the payment devices of a tenant matching the filter
func (r *GormPaymentDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a payment device
func (r *GormPaymentDeviceRepository) Save(ctx context.Context, device *fleet.PaymentDevice) error {
	model := models.PaymentDeviceModelFromDomain(device)
	return translateSaveError(integrity.KindPaymentDevice, r.db.WithContext(ctx).Save(model).Error)
}

// DeleteForTenant deletes a payment device within a tenant
func (r *GormPaymentDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentDeviceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateDeleteError(integrity.KindPaymentDevice, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPaymentDeviceRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.PaymentDeviceModel{}).Where("tenant_id = ?", tenantID)
	return applySearch(query, filter.Search, "name", "manufacturer", "os_version")
}

// GormVendingDeviceRepository implements VendingDeviceRepository using GORM
type GormVendingDeviceRepository struct {
	db *gorm.DB
}

// NewGormVendingDeviceRepository creates a new GormVendingDeviceRepository
func NewGormVendingDeviceRepository(db *gorm.DB) *GormVendingDeviceRepository {
	return &GormVendingDeviceRepository{db: db}
}

// FindByIDForTenant finds a vending device by ID within a tenant
func (r *GormVendingDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.VendingDevice, error) {
	var model models.VendingDeviceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the vending devices of a tenant
func (r *GormVendingDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.VendingDevice, error) {
	var deviceModels []models.VendingDeviceModel
	query := applyPage(r.filtered(ctx, tenantID, filter), filter, "", VendingDeviceSortFields)
	if err := query.Find(&deviceModels).Error; err != nil {
		return nil, err
	}

	devices := make([]fleet.VendingDevice, len(deviceModels))
	for i, model := range deviceModels {
		devices[i] = *model.ToDomain()
	}
	return devices, nil
}

// CountForTenant counts the vending devices of a tenant matching the filter
func (r *GormVendingDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a vending device
func (r *GormVendingDeviceRepository) Save(ctx context.Context, device *fleet.VendingDevice) error {
	model := models.VendingDeviceModelFromDomain(device)
	return translateSaveError(integrity.KindVendingDevice, r.db.WithContext(ctx).Save(model).Error)
}

// DeleteForTenant deletes a vending device within a tenant
func (r *GormVendingDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VendingDeviceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateDeleteError(integrity.KindVendingDevice, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVendingDeviceRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.VendingDeviceModel{}).Where("tenant_id = ?", tenantID)
	return applySearch(query, filter.Search, "model", "manufacturer", "software_version")
}

var (
	_ fleet.PaymentDeviceRepository = (*GormPaymentDeviceRepository)(nil)
	_ fleet.VendingDeviceRepository = (*GormVendingDeviceRepository)(nil)
)
