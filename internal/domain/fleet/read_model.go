package fleet

import (
	"time"

	"github.com/google/uuid"
)

// DeviceListItem is the read model for the installation list
type DeviceListItem struct {
	ID                       uuid.UUID `json:"id"`
	PaymentDeviceSerial      string    `json:"payment_device_serial"`
	VendingDeviceSerial      string    `json:"vending_device_serial"`
	PaymentDeviceInformation string    `json:"payment_device_information"`
	VendingDeviceInformation string    `json:"vending_device_information"`
	CustomerInformation      string    `json:"customer_information"`
	AcceptCard               bool      `json:"accept_card"`
	AcceptCash               bool      `json:"accept_cash"`
	LocationLat              float64   `json:"location_lat"`
	LocationLon              float64   `json:"location_lon"`
	CreatedAt                time.Time `json:"created_at"`
}

// DeviceDetailsView is the read model for a single installation
type DeviceDetailsView struct {
	DeviceListItem
	PaymentDeviceID uuid.UUID `json:"payment_device_id"`
	VendingDeviceID uuid.UUID `json:"vending_device_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Option is an entry of a select list
type Option struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// DeviceOptions groups the select lists needed to compose an installation
type DeviceOptions struct {
	PaymentDevices []Option `json:"payment_devices"`
	VendingDevices []Option `json:"vending_devices"`
	Customers      []Option `json:"customers"`
}
