package integrity

import (
	"context"
	"fmt"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Constraint describes one uniqueness rule of a record kind
type Constraint struct {
	Kind  Kind
	Field Field
	// TenantScoped constraints only conflict with records of the same tenant.
	// Hardware serials are global.
	TenantScoped bool
	// Name is the database constraint that backs the rule
	Name    string
	Message string
}

// Conflict returns the ALREADY_EXISTS error for a violation of c
func (c Constraint) Conflict() *shared.DomainError {
	return shared.NewFieldError(shared.CodeAlreadyExists, string(c.Field), c.Message)
}

var constraints = []Constraint{
	{
		Kind:         KindCustomer,
		Field:        FieldTaxNumber,
		TenantScoped: true,
		Name:         "uq_customers_tenant_tax_number",
		Message:      "Client with this tax number already exists.",
	},
	{
		Kind:         KindVendingProduct,
		Field:        FieldPLU,
		TenantScoped: true,
		Name:         "uq_vending_products_tenant_plu",
		Message:      "Product with this PLU already exists.",
	},
	{
		Kind:    KindDevice,
		Field:   FieldPaymentDeviceSerial,
		Name:    "uq_devices_payment_device_serial",
		Message: "Device with this payment device serial already exists.",
	},
	{
		Kind:    KindDevice,
		Field:   FieldVendingDeviceSerial,
		Name:    "uq_devices_vending_device_serial",
		Message: "Device with this vending device serial already exists.",
	},
}

// ConstraintFor returns the uniqueness rule for kind and field
func ConstraintFor(kind Kind, field Field) (Constraint, bool) {
	for _, c := range constraints {
		if c.Kind == kind && c.Field == field {
			return c, true
		}
	}
	return Constraint{}, false
}

// ConstraintByName finds the rule backed by the named database constraint
func ConstraintByName(name string) (Constraint, bool) {
	for _, c := range constraints {
		if c.Name == name {
			return c, true
		}
	}
	return Constraint{}, false
}

// ConstraintsOf returns every uniqueness rule declared for kind
func ConstraintsOf(kind Kind) []Constraint {
	var out []Constraint
	for _, c := range constraints {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Key is one component of a uniqueness check: the field and the candidate value
type Key struct {
	Field Field
	Value string
}

// UniquenessLookup answers whether another record already holds a value.
// tenantID is nil for global constraints; excludeID is never matched.
type UniquenessLookup interface {
	ExistsOther(ctx context.Context, kind Kind, field Field, value string, tenantID *uuid.UUID, excludeID uuid.UUID) (bool, error)
}

// UniquenessValidator checks candidate records against the uniqueness rules.
// It only reads; the database constraints named by each rule remain the final guard.
type UniquenessValidator struct {
	lookup UniquenessLookup
}

// NewUniquenessValidator creates a UniquenessValidator
func NewUniquenessValidator(lookup UniquenessLookup) *UniquenessValidator {
	return &UniquenessValidator{lookup: lookup}
}

// Validate checks every key of a candidate record of kind owned by tenantID.
// excludeID is the record's own id on update and uuid.Nil on create.
// The first violated key is reported as an ALREADY_EXISTS error naming the field.
func (v *UniquenessValidator) Validate(ctx context.Context, kind Kind, tenantID, excludeID uuid.UUID, keys ...Key) error {
	for _, key := range keys {
		c, ok := ConstraintFor(kind, key.Field)
		if !ok {
			return fmt.Errorf("no uniqueness rule for %s.%s", kind, key.Field)
		}

		var scope *uuid.UUID
		if c.TenantScoped {
			scope = &tenantID
		}

		exists, err := v.lookup.ExistsOther(ctx, kind, key.Field, key.Value, scope, excludeID)
		if err != nil {
			return fmt.Errorf("check %s uniqueness: %w", key.Field, err)
		}
		if exists {
			return c.Conflict()
		}
	}
	return nil
}
