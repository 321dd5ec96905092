package fleet

import (
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Coordinate bounds for an installation site
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// DeviceDetails carries the editable fields of an installation
type DeviceDetails struct {
	PaymentDeviceSerial string
	VendingDeviceSerial string
	PaymentDeviceID     uuid.UUID
	VendingDeviceID     uuid.UUID
	CustomerID          uuid.UUID
	AcceptCard          bool
	AcceptCash          bool
	LocationLat         float64
	LocationLon         float64
}

// Device is an installation binding one payment device, one vending device and
// one customer site. Both serials are hardware identifiers and are unique across
// all tenants.
type Device struct {
	shared.TenantAggregateRoot
	DeviceDetails
}

// NewDevice creates a new installation
func NewDevice(tenantID uuid.UUID, details DeviceDetails) (*Device, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "tenant is required")
	}
	normalized, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &Device{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DeviceDetails:       normalized,
	}, nil
}

// Update replaces every editable field
func (d *Device) Update(details DeviceDetails) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}
	d.DeviceDetails = normalized
	d.MarkModified()
	return nil
}

func (d DeviceDetails) normalize() (DeviceDetails, error) {
	var err error
	if d.PaymentDeviceSerial, err = shared.RequireText("payment_device_serial", d.PaymentDeviceSerial, 100); err != nil {
		return d, err
	}
	if d.VendingDeviceSerial, err = shared.RequireText("vending_device_serial", d.VendingDeviceSerial, 100); err != nil {
		return d, err
	}

	refs := []struct {
		field string
		id    uuid.UUID
	}{
		{"payment_device_id", d.PaymentDeviceID},
		{"vending_device_id", d.VendingDeviceID},
		{"customer_id", d.CustomerID},
	}
	for _, r := range refs {
		if r.id == uuid.Nil {
			return d, shared.NewValidationError(r.field, r.field+" is required")
		}
	}

	if d.LocationLat < MinLatitude || d.LocationLat > MaxLatitude {
		return d, shared.NewValidationError("location_lat", "latitude must be between -90 and 90")
	}
	if d.LocationLon < MinLongitude || d.LocationLon > MaxLongitude {
		return d, shared.NewValidationError("location_lon", "longitude must be between -180 and 180")
	}
	return d, nil
}
