package handler

import (
	"context"

	catalogapp "github.com/futurevend/backend/internal/application/catalog"
	fleetapp "github.com/futurevend/backend/internal/application/fleet"
	partnerapp "github.com/futurevend/backend/internal/application/partner"
	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler serves /customers
type CustomerHandler = ResourceHandler[partnerapp.CustomerRequest, partnerapp.CustomerResponse, partnerapp.CustomerResponse, partnerapp.CustomerResponse]

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(svc ResourceService[partnerapp.CustomerRequest, partnerapp.CustomerResponse, partnerapp.CustomerResponse, partnerapp.CustomerResponse]) *CustomerHandler {
	return newResourceHandler("customer", svc)
}

// ProductHandler serves /products
type ProductHandler = ResourceHandler[catalogapp.ProductRequest, catalogapp.ProductResponse, catalogapp.ProductResponse, catalogapp.ProductResponse]

// NewProductHandler creates a new ProductHandler
func NewProductHandler(svc ResourceService[catalogapp.ProductRequest, catalogapp.ProductResponse, catalogapp.ProductResponse, catalogapp.ProductResponse]) *ProductHandler {
	return newResourceHandler("product", svc)
}

// PaymentDeviceHandler serves /payment-devices
type PaymentDeviceHandler = ResourceHandler[fleetapp.PaymentDeviceRequest, fleetapp.PaymentDeviceResponse, fleetapp.PaymentDeviceResponse, fleetapp.PaymentDeviceResponse]

// NewPaymentDeviceHandler creates a new PaymentDeviceHandler
func NewPaymentDeviceHandler(svc ResourceService[fleetapp.PaymentDeviceRequest, fleetapp.PaymentDeviceResponse, fleetapp.PaymentDeviceResponse, fleetapp.PaymentDeviceResponse]) *PaymentDeviceHandler {
	return newResourceHandler("payment device", svc)
}

// VendingDeviceHandler serves /vending-devices
type VendingDeviceHandler = ResourceHandler[fleetapp.VendingDeviceRequest, fleetapp.VendingDeviceResponse, fleetapp.VendingDeviceResponse, fleetapp.VendingDeviceResponse]

// NewVendingDeviceHandler creates a new VendingDeviceHandler
func NewVendingDeviceHandler(svc ResourceService[fleetapp.VendingDeviceRequest, fleetapp.VendingDeviceResponse, fleetapp.VendingDeviceResponse, fleetapp.VendingDeviceResponse]) *VendingDeviceHandler {
	return newResourceHandler("vending device", svc)
}

// DeviceService is the installation service used by DeviceHandler
type DeviceService interface {
	ResourceService[fleetapp.DeviceRequest, fleetapp.DeviceResponse, fleet.DeviceDetailsView, fleet.DeviceListItem]
	Options(ctx context.Context, tenantID uuid.UUID) (*fleet.DeviceOptions, error)
}

// DeviceHandler serves /devices and the select lists needed to compose one
type DeviceHandler struct {
	*ResourceHandler[fleetapp.DeviceRequest, fleetapp.DeviceResponse, fleet.DeviceDetailsView, fleet.DeviceListItem]
	service DeviceService
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(svc DeviceService) *DeviceHandler {
	return &DeviceHandler{
		ResourceHandler: newResourceHandler[fleetapp.DeviceRequest, fleetapp.DeviceResponse, fleet.DeviceDetailsView, fleet.DeviceListItem]("device", svc),
		service:         svc,
	}
}

// RegisterRoutes mounts the handler and GET /options under path
func (h *DeviceHandler) RegisterRoutes(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	g := h.ResourceHandler.RegisterRoutes(rg, path)
	g.GET("/options", h.Options)
	return g
}

// Options returns the tenant's payment devices, vending devices and customers as select lists
func (h *DeviceHandler) Options(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	options, err := h.service.Options(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}
