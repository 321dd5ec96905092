package integrity

import (
	"context"
	"fmt"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Dependency says that records of Dependent kind point at records of Kind
type Dependency struct {
	Kind      Kind
	Dependent Kind
	// Name is the foreign key that backs the rule
	Name    string
	Message string
}

// Block returns the REFERENTIAL_BLOCK error for the dependency
func (d Dependency) Block() *shared.DomainError {
	return shared.NewReferentialBlockError(d.Message)
}

var dependencies = []Dependency{
	{Kind: KindCustomer, Dependent: KindDevice, Name: "fk_devices_customer", Message: "This customer is already used"},
	{Kind: KindPaymentDevice, Dependent: KindDevice, Name: "fk_devices_payment_device", Message: "This payment device is already used"},
	{Kind: KindVendingDevice, Dependent: KindDevice, Name: "fk_devices_vending_device", Message: "This vending device is already used"},
	{Kind: KindVendingProduct, Dependent: KindTransaction, Name: "fk_transactions_vending_product", Message: "This vending product is already used"},
	{Kind: KindDevice, Dependent: KindTransaction, Name: "fk_transactions_device", Message: "This device is already used"},
}

// DependencyFor returns the dependency rule that blocks deleting kind.
// Transactions have none.
func DependencyFor(kind Kind) (Dependency, bool) {
	for _, d := range dependencies {
		if d.Kind == kind {
			return d, true
		}
	}
	return Dependency{}, false
}

// DependencyByConstraint finds the rule backed by the named foreign key
func DependencyByConstraint(name string) (Dependency, bool) {
	for _, d := range dependencies {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

// ReferenceLookup answers whether any record of dependent kind references id
type ReferenceLookup interface {
	HasDependents(ctx context.Context, kind, dependent Kind, id uuid.UUID) (bool, error)
}

// DeletionGuard refuses deletion of records that are still referenced
type DeletionGuard struct {
	refs ReferenceLookup
}

// NewDeletionGuard creates a DeletionGuard
func NewDeletionGuard(refs ReferenceLookup) *DeletionGuard {
	return &DeletionGuard{refs: refs}
}

// CanDelete returns nil when the record of kind with id has no dependents,
// and a REFERENTIAL_BLOCK error with a human-readable reason otherwise.
func (g *DeletionGuard) CanDelete(ctx context.Context, kind Kind, id uuid.UUID) error {
	if !kind.IsValid() {
		return fmt.Errorf("unknown record kind %q", kind)
	}
	dep, ok := DependencyFor(kind)
	if !ok {
		return nil
	}

	used, err := g.refs.HasDependents(ctx, dep.Kind, dep.Dependent, id)
	if err != nil {
		return fmt.Errorf("check %s dependents: %w", kind, err)
	}
	if used {
		return dep.Block()
	}
	return nil
}
