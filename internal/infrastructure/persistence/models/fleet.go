package models

import (
	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/google/uuid"
)

// PaymentDeviceModel is the persistence model for the PaymentDevice aggregate
type PaymentDeviceModel struct {
	TenantAggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	Manufacturer string `gorm:"type:varchar(100);not null"`
	OSVersion    string `gorm:"column:os_version;type:varchar(50)"`
	NFC          bool   `gorm:"column:nfc;not null"`
	Chip         bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentDeviceModel) TableName() string {
	return "payment_devices"
}

// ToDomain converts the persistence model to a domain PaymentDevice entity
func (m *PaymentDeviceModel) ToDomain() *fleet.PaymentDevice {
	return &fleet.PaymentDevice{
		TenantAggregateRoot: tenantRoot(m.AggregateModel, m.TenantID),
		PaymentDeviceDetails: fleet.PaymentDeviceDetails{
			Name:         m.Name,
			Manufacturer: m.Manufacturer,
			OSVersion:    m.OSVersion,
			NFC:          m.NFC,
			Chip:         m.Chip,
		},
	}
}

// PaymentDeviceModelFromDomain creates a persistence model from a domain PaymentDevice entity
func PaymentDeviceModelFromDomain(d *fleet.PaymentDevice) *PaymentDeviceModel {
	m := &PaymentDeviceModel{
		Name:         d.Name,
		Manufacturer: d.Manufacturer,
		OSVersion:    d.OSVersion,
		NFC:          d.NFC,
		Chip:         d.Chip,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}

// VendingDeviceModel is the persistence model for the VendingDevice aggregate
type VendingDeviceModel struct {
	TenantAggregateModel
	Model           string `gorm:"type:varchar(100);not null"`
	Manufacturer    string `gorm:"type:varchar(100);not null"`
	SoftwareVersion string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (VendingDeviceModel) TableName() string {
	return "vending_devices"
}

// ToDomain converts the persistence model to a domain VendingDevice entity
func (m *VendingDeviceModel) ToDomain() *fleet.VendingDevice {
	return &fleet.VendingDevice{
		TenantAggregateRoot: tenantRoot(m.AggregateModel, m.TenantID),
		VendingDeviceDetails: fleet.VendingDeviceDetails{
			Model:           m.Model,
			Manufacturer:    m.Manufacturer,
			SoftwareVersion: m.SoftwareVersion,
		},
	}
}

// VendingDeviceModelFromDomain creates a persistence model from a domain VendingDevice entity
func VendingDeviceModelFromDomain(d *fleet.VendingDevice) *VendingDeviceModel {
	m := &VendingDeviceModel{
		Model:           d.Model,
		Manufacturer:    d.Manufacturer,
		SoftwareVersion: d.SoftwareVersion,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}

// DeviceModel is the persistence model for an installation.
// Both serials are unique across all tenants. The three references are
// ON DELETE RESTRICT foreign keys named after the association fields.
type DeviceModel struct {
	TenantAggregateModel
	PaymentDeviceSerial string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_devices_payment_device_serial"`
	VendingDeviceSerial string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_devices_vending_device_serial"`
	PaymentDeviceID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VendingDeviceID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	AcceptCard          bool      `gorm:"not null"`
	AcceptCash          bool      `gorm:"not null"`
	LocationLat         float64   `gorm:"not null"`
	LocationLon         float64   `gorm:"not null"`

	PaymentDevice *PaymentDeviceModel `gorm:"foreignKey:PaymentDeviceID;constraint:OnDelete:RESTRICT"`
	VendingDevice *VendingDeviceModel `gorm:"foreignKey:VendingDeviceID;constraint:OnDelete:RESTRICT"`
	Customer      *CustomerModel      `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (DeviceModel) TableName() string {
	return "devices"
}

// ToDomain converts the persistence model to a domain Device entity
func (m *DeviceModel) ToDomain() *fleet.Device {
	return &fleet.Device{
		TenantAggregateRoot: tenantRoot(m.AggregateModel, m.TenantID),
		DeviceDetails: fleet.DeviceDetails{
			PaymentDeviceSerial: m.PaymentDeviceSerial,
			VendingDeviceSerial: m.VendingDeviceSerial,
			PaymentDeviceID:     m.PaymentDeviceID,
			VendingDeviceID:     m.VendingDeviceID,
			CustomerID:          m.CustomerID,
			AcceptCard:          m.AcceptCard,
			AcceptCash:          m.AcceptCash,
			LocationLat:         m.LocationLat,
			LocationLon:         m.LocationLon,
		},
	}
}

// DeviceModelFromDomain creates a persistence model from a domain Device entity
func DeviceModelFromDomain(d *fleet.Device) *DeviceModel {
	m := &DeviceModel{
		PaymentDeviceSerial: d.PaymentDeviceSerial,
		VendingDeviceSerial: d.VendingDeviceSerial,
		PaymentDeviceID:     d.PaymentDeviceID,
		VendingDeviceID:     d.VendingDeviceID,
		CustomerID:          d.CustomerID,
		AcceptCard:          d.AcceptCard,
		AcceptCash:          d.AcceptCash,
		LocationLat:         d.LocationLat,
		LocationLon:         d.LocationLon,
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}
