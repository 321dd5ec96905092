package fleet

import (
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VendingDeviceDetails carries the editable fields of a vending machine model
type VendingDeviceDetails struct {
	Model           string
	Manufacturer    string
	SoftwareVersion string
}

// VendingDevice is a vending machine model a tenant deploys
type VendingDevice struct {
	shared.TenantAggregateRoot
	VendingDeviceDetails
}

// NewVendingDevice creates a new vending device
func NewVendingDevice(tenantID uuid.UUID, details VendingDeviceDetails) (*VendingDevice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "tenant is required")
	}
	normalized, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &VendingDevice{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		VendingDeviceDetails: normalized,
	}, nil
}

// Update replaces every editable field
func (v *VendingDevice) Update(details VendingDeviceDetails) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}
	v.VendingDeviceDetails = normalized
	v.MarkModified()
	return nil
}

func (d VendingDeviceDetails) normalize() (VendingDeviceDetails, error) {
	var err error
	if d.Model, err = shared.RequireText("model", d.Model, 100); err != nil {
		return d, err
	}
	if d.Manufacturer, err = shared.RequireText("manufacturer", d.Manufacturer, 100); err != nil {
		return d, err
	}
	if d.SoftwareVersion, err = shared.OptionalText("software_version", d.SoftwareVersion, 50); err != nil {
		return d, err
	}
	return d, nil
}
