package fleet

import (
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentDeviceDetails carries the editable fields of a payment device model
type PaymentDeviceDetails struct {
	Name         string
	Manufacturer string
	OSVersion    string
	NFC          bool
	Chip         bool
}

// PaymentDevice is a card/cash terminal model a tenant deploys
type PaymentDevice struct {
	shared.TenantAggregateRoot
	PaymentDeviceDetails
}

// NewPaymentDevice creates a new payment device
func NewPaymentDevice(tenantID uuid.UUID, details PaymentDeviceDetails) (*PaymentDevice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "tenant is required")
	}
	normalized, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &PaymentDevice{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		PaymentDeviceDetails: normalized,
	}, nil
}

// Update replaces every editable field
func (p *PaymentDevice) Update(details PaymentDeviceDetails) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}
	p.PaymentDeviceDetails = normalized
	p.MarkModified()
	return nil
}

func (d PaymentDeviceDetails) normalize() (PaymentDeviceDetails, error) {
	var err error
	if d.Name, err = shared.RequireText("name", d.Name, 100); err != nil {
		return d, err
	}
	if d.Manufacturer, err = shared.RequireText("manufacturer", d.Manufacturer, 100); err != nil {
		return d, err
	}
	if d.OSVersion, err = shared.OptionalText("os_version", d.OSVersion, 50); err != nil {
		return d, err
	}
	return d, nil
}
