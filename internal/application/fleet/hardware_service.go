package fleet

import (
	"context"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentDeviceService handles payment device operations
type PaymentDeviceService struct {
	repo   fleet.PaymentDeviceRepository
	guard  *integrity.DeletionGuard
	logger *zap.Logger
}

// NewPaymentDeviceService creates a new PaymentDeviceService
func NewPaymentDeviceService(repo fleet.PaymentDeviceRepository, guard *integrity.DeletionGuard, logger *zap.Logger) *PaymentDeviceService {
	return &PaymentDeviceService{repo: repo, guard: guard, logger: logger}
}

// Create creates a new payment device
func (s *PaymentDeviceService) Create(ctx context.Context, tenantID uuid.UUID, req PaymentDeviceRequest) (*PaymentDeviceResponse, error) {
	device, err := fleet.NewPaymentDevice(tenantID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, device); err != nil {
		return nil, err
	}

	response := ToPaymentDeviceResponse(device)
	return &response, nil
}

// GetByID retrieves a payment device by ID
func (s *PaymentDeviceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentDeviceResponse, error) {
	device, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentDeviceResponse(device)
	return &response, nil
}

// List retrieves a page of payment devices
func (s *PaymentDeviceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PaymentDeviceResponse, int64, error) {
	filter = filter.Normalize()
	devices, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentDeviceResponse, len(devices))
	for i := range devices {
		responses[i] = ToPaymentDeviceResponse(&devices[i])
	}
	return responses, total, nil
}

// Update replaces a payment device's fields
func (s *PaymentDeviceService) Update(ctx context.Context, tenantID, id uuid.UUID, req PaymentDeviceRequest) (*PaymentDeviceResponse, error) {
	device, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := device.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, device); err != nil {
		return nil, err
	}

	response := ToPaymentDeviceResponse(device)
	return &response, nil
}

// Delete deletes a payment device that no installation references
func (s *PaymentDeviceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.guard.CanDelete(ctx, integrity.KindPaymentDevice, id); err != nil {
		return err
	}
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	s.logger.Info("Payment device deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_device_id", id.String()),
	)
	return nil
}

// VendingDeviceService handles vending device operations
type VendingDeviceService struct {
	repo   fleet.VendingDeviceRepository
	guard  *integrity.DeletionGuard
	logger *zap.Logger
}

// NewVendingDeviceService creates a new VendingDeviceService
func NewVendingDeviceService(repo fleet.VendingDeviceRepository, guard *integrity.DeletionGuard, logger *zap.Logger) *VendingDeviceService {
	return &VendingDeviceService{repo: repo, guard: guard, logger: logger}
}

// Create creates a new vending device
func (s *VendingDeviceService) Create(ctx context.Context, tenantID uuid.UUID, req VendingDeviceRequest) (*VendingDeviceResponse, error) {
	device, err := fleet.NewVendingDevice(tenantID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, device); err != nil {
		return nil, err
	}

	response := ToVendingDeviceResponse(device)
	return &response, nil
}

// GetByID retrieves a vending device by ID
func (s *VendingDeviceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*VendingDeviceResponse, error) {
	device, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToVendingDeviceResponse(device)
	return &response, nil
}

// List retrieves a page of vending devices
func (s *VendingDeviceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]VendingDeviceResponse, int64, error) {
	filter = filter.Normalize()
	devices, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendingDeviceResponse, len(devices))
	for i := range devices {
		responses[i] = ToVendingDeviceResponse(&devices[i])
	}
	return responses, total, nil
}

// Update replaces a vending device's fields
func (s *VendingDeviceService) Update(ctx context.Context, tenantID, id uuid.UUID, req VendingDeviceRequest) (*VendingDeviceResponse, error) {
	device, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := device.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, device); err != nil {
		return nil, err
	}

	response := ToVendingDeviceResponse(device)
	return &response, nil
}

// Delete deletes a vending device that no installation references
func (s *VendingDeviceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.guard.CanDelete(ctx, integrity.KindVendingDevice, id); err != nil {
		return err
	}
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	s.logger.Info("Vending device deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("vending_device_id", id.String()),
	)
	return nil
}
