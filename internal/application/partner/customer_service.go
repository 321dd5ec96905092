package partner

import (
	"context"

	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	uniqueness   *integrity.UniquenessValidator
	guard        *integrity.DeletionGuard
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	uniqueness *integrity.UniquenessValidator,
	guard *integrity.DeletionGuard,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		uniqueness:   uniqueness,
		guard:        guard,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(tenantID, req.details())
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, customer, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()),
	)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, int64, error) {
	filter = filter.Normalize()

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update replaces a customer's fields
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.details()); err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, customer, customer.ID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer that no installation references
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}

	if err := s.guard.CanDelete(ctx, integrity.KindCustomer, customerID); err != nil {
		return err
	}

	if err := s.customerRepo.DeleteForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}

	s.logger.Info("Customer deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return nil
}

func (s *CustomerService) checkUnique(ctx context.Context, customer *partner.Customer, excludeID uuid.UUID) error {
	return s.uniqueness.Validate(ctx, integrity.KindCustomer, customer.TenantID, excludeID,
		integrity.Key{Field: integrity.FieldTaxNumber, Value: customer.TaxNumber},
	)
}
