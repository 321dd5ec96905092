package partner

import (
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerDetails carries the editable fields of a customer
type CustomerDetails struct {
	CompanyName string
	FirstName   string
	LastName    string
	Address     string
	City        string
	PostCode    string
	Country     string
	Phone       string
	Email       string
	TaxNumber   string
}

// Customer is a site owner that devices are installed for.
// TaxNumber is unique within a tenant.
type Customer struct {
	shared.TenantAggregateRoot
	CustomerDetails
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, details CustomerDetails) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "tenant is required")
	}
	normalized, err := details.normalize()
	if err != nil {
		return nil, err
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerDetails:     normalized,
	}, nil
}

// Update replaces every editable field
func (c *Customer) Update(details CustomerDetails) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}

	c.CustomerDetails = normalized
	c.MarkModified()
	return nil
}

// FullName returns "FirstName LastName"
func (c *Customer) FullName() string {
	return shared.JoinNonEmpty(" ", c.FirstName, c.LastName)
}

func (d CustomerDetails) normalize() (CustomerDetails, error) {
	var err error
	if d.FirstName, err = shared.RequireText("first_name", d.FirstName, 100); err != nil {
		return d, err
	}
	if d.LastName, err = shared.RequireText("last_name", d.LastName, 100); err != nil {
		return d, err
	}
	if d.TaxNumber, err = shared.RequireText("tax_number", d.TaxNumber, 50); err != nil {
		return d, err
	}

	optional := []struct {
		field  string
		value  *string
		maxLen int
	}{
		{"company_name", &d.CompanyName, 200},
		{"address", &d.Address, 300},
		{"city", &d.City, 100},
		{"post_code", &d.PostCode, 20},
		{"country", &d.Country, 100},
		{"phone", &d.Phone, 50},
		{"email", &d.Email, 200},
	}
	for _, o := range optional {
		if *o.value, err = shared.OptionalText(o.field, *o.value, o.maxLen); err != nil {
			return d, err
		}
	}

	if !shared.ValidEmail(d.Email) {
		return d, shared.NewValidationError("email", "email is not a valid address")
	}
	return d, nil
}
