package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/integrity"
)

// GormIntegrityStore answers the uniqueness and reference lookups of the integrity rules
// with COUNT queries against the record tables.
type GormIntegrityStore struct {
	db *gorm.DB
}

// NewGormIntegrityStore creates a new GormIntegrityStore
func NewGormIntegrityStore(db *gorm.DB) *GormIntegrityStore {
	return &GormIntegrityStore{db: db}
}

// ExistsOther reports whether a record of kind other than excludeID holds value in field.
// A nil tenantID searches across all tenants.
func (s *GormIntegrityStore) ExistsOther(ctx context.Context, kind integrity.Kind, field integrity.Field, value string, tenantID *uuid.UUID, excludeID uuid.UUID) (bool, error) {
	if _, ok := integrity.ConstraintFor(kind, field); !ok {
		return false, fmt.Errorf("no uniqueness rule for %s.%s", kind, field)
	}

	query := s.db.WithContext(ctx).
		Table(kindTables[kind]).
		Where(string(field)+" = ?", value)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasDependents reports whether any record of dependent kind references the kind record id.
// The referencing column is named after the referenced kind.
func (s *GormIntegrityStore) HasDependents(ctx context.Context, kind, dependent integrity.Kind, id uuid.UUID) (bool, error) {
	table, ok := kindTables[dependent]
	if !ok || !kind.IsValid() {
		return false, fmt.Errorf("unknown dependency %s -> %s", dependent, kind)
	}

	var count int64
	err := s.db.WithContext(ctx).
		Table(table).
		Where(kind.String()+"_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var (
	_ integrity.UniquenessLookup = (*GormIntegrityStore)(nil)
	_ integrity.ReferenceLookup  = (*GormIntegrityStore)(nil)
)
