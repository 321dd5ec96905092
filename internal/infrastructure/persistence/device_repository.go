package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

// GormDeviceRepository implements DeviceRepository using GORM
type GormDeviceRepository struct {
	db *gorm.DB
	// lockRows reads with FOR SHARE; set only inside a transaction scope
	lockRows bool
}

// NewGormDeviceRepository creates a new GormDeviceRepository
func NewGormDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// FindByIDForTenant finds an installation by ID within a tenant
func (r *GormDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Device, error) {
	return r.first(r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id))
}

// FindByPaymentSerial finds the installation whose payment device reports serial.
// Serials are global, so no tenant applies.
func (r *GormDeviceRepository) FindByPaymentSerial(ctx context.Context, serial string) (*fleet.Device, error) {
	query := r.db.WithContext(ctx)
	if r.lockRows {
		query = shareLock(query)
	}
	return r.first(query.Where("payment_device_serial = ?", strings.TrimSpace(serial)))
}

func (r *GormDeviceRepository) first(query *gorm.DB) (*fleet.Device, error) {
	var model models.DeviceModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the installations of a tenant
func (r *GormDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Device, error) {
	var deviceModels []models.DeviceModel
	query := applyPage(r.filtered(ctx, tenantID, filter), filter, "", DeviceSortFields)
	if err := query.Find(&deviceModels).Error; err != nil {
		return nil, err
	}

	devices := make([]fleet.Device, len(deviceModels))
	for i, model := range deviceModels {
		devices[i] = *model.ToDomain()
	}
	return devices, nil
}

// CountForTenant counts the installations of a tenant matching the filter
func (r *GormDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an installation
func (r *GormDeviceRepository) Save(ctx context.Context, device *fleet.Device) error {
	model := models.DeviceModelFromDomain(device)
	return translateSaveError(integrity.KindDevice, r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// DeleteForTenant deletes an installation within a tenant
func (r *GormDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeviceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateDeleteError(integrity.KindDevice, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDeviceRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.DeviceModel{}).Where("tenant_id = ?", tenantID)
	return applySearch(query, filter.Search, "payment_device_serial", "vending_device_serial")
}

// shareLock reads rows FOR SHARE so they cannot be deleted before the transaction ends.
// SQLite has no row locks; its single writer already serializes the transaction.
func shareLock(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() != "postgres" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "SHARE"})
}

// Ensure GormDeviceRepository implements DeviceRepository
var _ fleet.DeviceRepository = (*GormDeviceRepository)(nil)
