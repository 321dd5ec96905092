package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the identity and audit timestamps of a stored record
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BaseAggregateRoot adds the optimistic version counter. New aggregates start at 1.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// TenantAggregateRoot is embedded by every record a tenant owns directly
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID uuid.UUID
}

// NewTenantAggregateRoot stamps a fresh id and creation time for tenantID
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	now := time.Now().UTC()
	return TenantAggregateRoot{
		BaseAggregateRoot: BaseAggregateRoot{
			BaseEntity: BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Version:    1,
		},
		TenantID: tenantID,
	}
}

// MarkModified bumps the version and the update timestamp after a mutation
func (a *BaseAggregateRoot) MarkModified() {
	a.UpdatedAt = time.Now().UTC()
	a.Version++
}
