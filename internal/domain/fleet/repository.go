package fleet

import (
	"context"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentDeviceRepository defines the interface for payment device persistence
type PaymentDeviceRepository interface {
	shared.TenantRepository[PaymentDevice]
}

// VendingDeviceRepository defines the interface for vending device persistence
type VendingDeviceRepository interface {
	shared.TenantRepository[VendingDevice]
}

// DeviceRepository defines the interface for installation persistence
type DeviceRepository interface {
	shared.TenantRepository[Device]

	// FindByPaymentSerial finds the installation reporting with the serial.
	// The lookup is not tenant scoped.
	FindByPaymentSerial(ctx context.Context, serial string) (*Device, error)
}

// DeviceQuery serves the flattened installation read models
type DeviceQuery interface {
	ListDevices(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DeviceListItem, int64, error)
	GetDevice(ctx context.Context, tenantID, id uuid.UUID) (*DeviceDetailsView, error)
	PaymentDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]Option, error)
	VendingDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]Option, error)
	CustomerOptions(ctx context.Context, tenantID uuid.UUID) ([]Option, error)
}
