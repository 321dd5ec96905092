package fleet

import (
	"context"
	"errors"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeviceService handles installation operations
type DeviceService struct {
	deviceRepo        fleet.DeviceRepository
	paymentDeviceRepo fleet.PaymentDeviceRepository
	vendingDeviceRepo fleet.VendingDeviceRepository
	customerRepo      partner.CustomerRepository
	query             fleet.DeviceQuery
	uniqueness        *integrity.UniquenessValidator
	guard             *integrity.DeletionGuard
	logger            *zap.Logger
}

// DeviceServiceDeps groups the collaborators of DeviceService
type DeviceServiceDeps struct {
	DeviceRepo        fleet.DeviceRepository
	PaymentDeviceRepo fleet.PaymentDeviceRepository
	VendingDeviceRepo fleet.VendingDeviceRepository
	CustomerRepo      partner.CustomerRepository
	Query             fleet.DeviceQuery
	Uniqueness        *integrity.UniquenessValidator
	Guard             *integrity.DeletionGuard
	Logger            *zap.Logger
}

// NewDeviceService creates a new DeviceService
func NewDeviceService(deps DeviceServiceDeps) *DeviceService {
	return &DeviceService{
		deviceRepo:        deps.DeviceRepo,
		paymentDeviceRepo: deps.PaymentDeviceRepo,
		vendingDeviceRepo: deps.VendingDeviceRepo,
		customerRepo:      deps.CustomerRepo,
		query:             deps.Query,
		uniqueness:        deps.Uniqueness,
		guard:             deps.Guard,
		logger:            deps.Logger,
	}
}

// Create creates a new installation
func (s *DeviceService) Create(ctx context.Context, tenantID uuid.UUID, req DeviceRequest) (*DeviceResponse, error) {
	device, err := fleet.NewDevice(tenantID, req.details())
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, device); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, device, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.deviceRepo.Save(ctx, device); err != nil {
		return nil, err
	}

	s.logger.Info("Device installed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("device_id", device.ID.String()),
		zap.String("payment_device_serial", device.PaymentDeviceSerial),
	)

	response := ToDeviceResponse(device)
	return &response, nil
}

// GetByID returns the installation details read model
func (s *DeviceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*fleet.DeviceDetailsView, error) {
	return s.query.GetDevice(ctx, tenantID, id)
}

// List returns a page of the installation list read model
func (s *DeviceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.DeviceListItem, int64, error) {
	return s.query.ListDevices(ctx, tenantID, filter.Normalize())
}

// Options returns the select lists used to compose an installation
func (s *DeviceService) Options(ctx context.Context, tenantID uuid.UUID) (*fleet.DeviceOptions, error) {
	payment, err := s.query.PaymentDeviceOptions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	vending, err := s.query.VendingDeviceOptions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	customers, err := s.query.CustomerOptions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &fleet.DeviceOptions{
		PaymentDevices: payment,
		VendingDevices: vending,
		Customers:      customers,
	}, nil
}

// Update replaces an installation's fields
func (s *DeviceService) Update(ctx context.Context, tenantID, id uuid.UUID, req DeviceRequest) (*DeviceResponse, error) {
	device, err := s.deviceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := device.Update(req.details()); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, device); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, device, device.ID); err != nil {
		return nil, err
	}

	if err := s.deviceRepo.Save(ctx, device); err != nil {
		return nil, err
	}

	response := ToDeviceResponse(device)
	return &response, nil
}

// Delete deletes an installation that has reported no transactions
func (s *DeviceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.deviceRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.guard.CanDelete(ctx, integrity.KindDevice, id); err != nil {
		return err
	}
	if err := s.deviceRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	s.logger.Info("Device removed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("device_id", id.String()),
	)
	return nil
}

// checkReferences rejects hardware or customers owned by another tenant
func (s *DeviceService) checkReferences(ctx context.Context, device *fleet.Device) error {
	if _, err := s.paymentDeviceRepo.FindByIDForTenant(ctx, device.TenantID, device.PaymentDeviceID); err != nil {
		return referenceError(err, "payment_device_id", "Payment device not found")
	}
	if _, err := s.vendingDeviceRepo.FindByIDForTenant(ctx, device.TenantID, device.VendingDeviceID); err != nil {
		return referenceError(err, "vending_device_id", "Vending device not found")
	}
	if _, err := s.customerRepo.FindByIDForTenant(ctx, device.TenantID, device.CustomerID); err != nil {
		return referenceError(err, "customer_id", "Customer not found")
	}
	return nil
}

func (s *DeviceService) checkUnique(ctx context.Context, device *fleet.Device, excludeID uuid.UUID) error {
	return s.uniqueness.Validate(ctx, integrity.KindDevice, device.TenantID, excludeID,
		integrity.Key{Field: integrity.FieldPaymentDeviceSerial, Value: device.PaymentDeviceSerial},
		integrity.Key{Field: integrity.FieldVendingDeviceSerial, Value: device.VendingDeviceSerial},
	)
}

func referenceError(err error, field, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewFieldError(shared.CodeNotFound, field, message)
	}
	return err
}
