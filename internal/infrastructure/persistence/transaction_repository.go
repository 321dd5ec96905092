package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// Transactions carry no tenant column; every tenant-scoped statement goes through devices.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts a new transaction. Foreign key failures are returned unwrapped
// for the caller to classify.
func (r *GormTransactionRepository) Create(ctx context.Context, tx *sales.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error
}

// FindByIDForTenant finds a transaction whose device belongs to the tenant
func (r *GormTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND device_id IN (?)", id, r.tenantDevices(tenantID)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteForTenant deletes a transaction whose device belongs to the tenant
func (r *GormTransactionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND device_id IN (?)", id, r.tenantDevices(tenantID)).
		Delete(&models.TransactionModel{})
	if result.Error != nil {
		return fmt.Errorf("delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByDevice counts the transactions recorded for a device
func (r *GormTransactionRepository) CountByDevice(ctx context.Context, deviceID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("device_id = ?", deviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransactionRepository) tenantDevices(tenantID uuid.UUID) *gorm.DB {
	return r.db.Model(&models.DeviceModel{}).Select("id").Where("tenant_id = ?", tenantID)
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ sales.TransactionRepository = (*GormTransactionRepository)(nil)
