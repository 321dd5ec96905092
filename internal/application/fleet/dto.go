package fleet

import (
	"time"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/google/uuid"
)

// =============================================================================
// Payment device DTOs
// =============================================================================

// PaymentDeviceRequest is the body for creating or replacing a payment device
type PaymentDeviceRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Manufacturer string `json:"manufacturer" binding:"required,max=100"`
	OSVersion    string `json:"os_version" binding:"max=50"`
	NFC          bool   `json:"nfc"`
	Chip         bool   `json:"chip"`
}

func (r PaymentDeviceRequest) details() fleet.PaymentDeviceDetails {
	return fleet.PaymentDeviceDetails{
		Name:         r.Name,
		Manufacturer: r.Manufacturer,
		OSVersion:    r.OSVersion,
		NFC:          r.NFC,
		Chip:         r.Chip,
	}
}

// PaymentDeviceResponse represents a payment device in API responses
type PaymentDeviceResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	OSVersion    string    `json:"os_version"`
	NFC          bool      `json:"nfc"`
	Chip         bool      `json:"chip"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToPaymentDeviceResponse converts a domain PaymentDevice to PaymentDeviceResponse
func ToPaymentDeviceResponse(p *fleet.PaymentDevice) PaymentDeviceResponse {
	return PaymentDeviceResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		OSVersion:    p.OSVersion,
		NFC:          p.NFC,
		Chip:         p.Chip,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// =============================================================================
// Vending device DTOs
// =============================================================================

// VendingDeviceRequest is the body for creating or replacing a vending device
type VendingDeviceRequest struct {
	Model           string `json:"model" binding:"required,max=100"`
	Manufacturer    string `json:"manufacturer" binding:"required,max=100"`
	SoftwareVersion string `json:"software_version" binding:"max=50"`
}

func (r VendingDeviceRequest) details() fleet.VendingDeviceDetails {
	return fleet.VendingDeviceDetails{
		Model:           r.Model,
		Manufacturer:    r.Manufacturer,
		SoftwareVersion: r.SoftwareVersion,
	}
}

// VendingDeviceResponse represents a vending device in API responses
type VendingDeviceResponse struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	Model           string    `json:"model"`
	Manufacturer    string    `json:"manufacturer"`
	SoftwareVersion string    `json:"software_version"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToVendingDeviceResponse converts a domain VendingDevice to VendingDeviceResponse
func ToVendingDeviceResponse(v *fleet.VendingDevice) VendingDeviceResponse {
	return VendingDeviceResponse{
		ID:              v.ID,
		TenantID:        v.TenantID,
		Model:           v.Model,
		Manufacturer:    v.Manufacturer,
		SoftwareVersion: v.SoftwareVersion,
		Version:         v.Version,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// =============================================================================
// Installation DTOs
// =============================================================================

// DeviceRequest is the body for creating or replacing an installation
type DeviceRequest struct {
	PaymentDeviceSerial string    `json:"payment_device_serial" binding:"required,max=100"`
	VendingDeviceSerial string    `json:"vending_device_serial" binding:"required,max=100"`
	PaymentDeviceID     uuid.UUID `json:"payment_device_id" binding:"required"`
	VendingDeviceID     uuid.UUID `json:"vending_device_id" binding:"required"`
	CustomerID          uuid.UUID `json:"customer_id" binding:"required"`
	AcceptCard          bool      `json:"accept_card"`
	AcceptCash          bool      `json:"accept_cash"`
	LocationLat         float64   `json:"location_lat" binding:"gte=-90,lte=90"`
	LocationLon         float64   `json:"location_lon" binding:"gte=-180,lte=180"`
}

func (r DeviceRequest) details() fleet.DeviceDetails {
	return fleet.DeviceDetails{
		PaymentDeviceSerial: r.PaymentDeviceSerial,
		VendingDeviceSerial: r.VendingDeviceSerial,
		PaymentDeviceID:     r.PaymentDeviceID,
		VendingDeviceID:     r.VendingDeviceID,
		CustomerID:          r.CustomerID,
		AcceptCard:          r.AcceptCard,
		AcceptCash:          r.AcceptCash,
		LocationLat:         r.LocationLat,
		LocationLon:         r.LocationLon,
	}
}

// DeviceResponse represents a stored installation in API responses
type DeviceResponse struct {
	ID                  uuid.UUID `json:"id"`
	TenantID            uuid.UUID `json:"tenant_id"`
	PaymentDeviceSerial string    `json:"payment_device_serial"`
	VendingDeviceSerial string    `json:"vending_device_serial"`
	PaymentDeviceID     uuid.UUID `json:"payment_device_id"`
	VendingDeviceID     uuid.UUID `json:"vending_device_id"`
	CustomerID          uuid.UUID `json:"customer_id"`
	AcceptCard          bool      `json:"accept_card"`
	AcceptCash          bool      `json:"accept_cash"`
	LocationLat         float64   `json:"location_lat"`
	LocationLon         float64   `json:"location_lon"`
	Version             int       `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToDeviceResponse converts a domain Device to DeviceResponse
func ToDeviceResponse(d *fleet.Device) DeviceResponse {
	return DeviceResponse{
		ID:                  d.ID,
		TenantID:            d.TenantID,
		PaymentDeviceSerial: d.PaymentDeviceSerial,
		VendingDeviceSerial: d.VendingDeviceSerial,
		PaymentDeviceID:     d.PaymentDeviceID,
		VendingDeviceID:     d.VendingDeviceID,
		CustomerID:          d.CustomerID,
		AcceptCard:          d.AcceptCard,
		AcceptCash:          d.AcceptCash,
		LocationLat:         d.LocationLat,
		LocationLon:         d.LocationLon,
		Version:             d.Version,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
