package fleet

import (
	"context"
	"errors"
	"strings"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/shared"
)

// ErrUnknownDevice is returned when no installation reports with a serial
var ErrUnknownDevice = shared.NewFieldError(shared.CodeUnknownDevice, "serial_number", "Invalid device serial number")

// SerialLookup finds an installation by its payment device serial
type SerialLookup interface {
	FindByPaymentSerial(ctx context.Context, serial string) (*fleet.Device, error)
}

// DeviceResolver maps a serial presented by field hardware to its installation.
// The hardware does not know its tenant, so the lookup spans all tenants and the
// resolved device is the only source of tenant identity for the request.
type DeviceResolver struct {
	devices SerialLookup
}

// NewDeviceResolver creates a DeviceResolver
func NewDeviceResolver(devices SerialLookup) *DeviceResolver {
	return &DeviceResolver{devices: devices}
}

// ResolveBySerial returns the installation whose payment device serial equals serial
func (r *DeviceResolver) ResolveBySerial(ctx context.Context, serial string) (*fleet.Device, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, ErrUnknownDevice
	}

	device, err := r.devices.FindByPaymentSerial(ctx, serial)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUnknownDevice
		}
		return nil, err
	}
	return device, nil
}
