package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockIntegrityStore is a mock of the uniqueness and reference lookups
type MockIntegrityStore struct {
	mock.Mock
}

func (m *MockIntegrityStore) ExistsOther(ctx context.Context, kind integrity.Kind, field integrity.Field, value string, tenantID *uuid.UUID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, field, value, tenantID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIntegrityStore) HasDependents(ctx context.Context, kind, dependent integrity.Kind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, dependent, id)
	return args.Bool(0), args.Error(1)
}

func newTestCustomerService() (*CustomerService, *MockCustomerRepository, *MockIntegrityStore) {
	repo := new(MockCustomerRepository)
	store := new(MockIntegrityStore)
	svc := NewCustomerService(repo, integrity.NewUniquenessValidator(store), integrity.NewDeletionGuard(store), zap.NewNop())
	return svc, repo, store
}

func validCustomerRequest() CustomerRequest {
	return CustomerRequest{
		CompanyName: "Vend Ltd",
		FirstName:   "Ivan",
		LastName:    "Petrov",
		TaxNumber:   "BG123",
	}
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantA := uuid.New()

	t.Run("creates customer with unique tax number", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		store.On("ExistsOther", ctx, integrity.KindCustomer, integrity.FieldTaxNumber, "BG123", &tenantA, uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, tenantA, validCustomerRequest())

		require.NoError(t, err)
		assert.Equal(t, tenantA, resp.TenantID)
		assert.Equal(t, "BG123", resp.TaxNumber)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a tax number already used in the tenant", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		store.On("ExistsOther", ctx, integrity.KindCustomer, integrity.FieldTaxNumber, "BG123", &tenantA, uuid.Nil).Return(true, nil)

		resp, err := svc.Create(ctx, tenantA, validCustomerRequest())

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
		assert.Equal(t, "Client with this tax number already exists.", domainErr.Message)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("surfaces the constraint conflict raised by the store", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		store.On("ExistsOther", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		c, _ := integrity.ConstraintFor(integrity.KindCustomer, integrity.FieldTaxNumber)
		repo.On("Save", ctx, mock.Anything).Return(c.Conflict())

		_, err := svc.Create(ctx, tenantA, validCustomerRequest())

		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("rejects invalid input before any lookup", func(t *testing.T) {
		svc, _, store := newTestCustomerService()
		req := validCustomerRequest()
		req.LastName = ""

		_, err := svc.Create(ctx, tenantA, req)

		assert.True(t, shared.HasCode(err, shared.CodeValidation))
		store.AssertNumberOfCalls(t, "ExistsOther", 0)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("excludes the customer itself from the uniqueness check", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		existing, err := partner.NewCustomer(tenantID, partner.CustomerDetails{FirstName: "Ivan", LastName: "Petrov", TaxNumber: "BG123"})
		require.NoError(t, err)

		repo.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
		store.On("ExistsOther", ctx, integrity.KindCustomer, integrity.FieldTaxNumber, "BG123", &tenantID, existing.ID).Return(false, nil)
		repo.On("Save", ctx, existing).Return(nil)

		req := validCustomerRequest()
		req.City = "Plovdiv"
		resp, err := svc.Update(ctx, tenantID, existing.ID, req)

		require.NoError(t, err)
		assert.Equal(t, "Plovdiv", resp.City)
		assert.Equal(t, "Vend Ltd", resp.CompanyName)
		assert.Equal(t, 2, resp.Version)
		store.AssertExpectations(t)
	})

	t.Run("returns not found for another tenant's customer", func(t *testing.T) {
		svc, repo, _ := newTestCustomerService()
		id := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, tenantID, id, validCustomerRequest())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	customer, err := partner.NewCustomer(tenantID, partner.CustomerDetails{FirstName: "Ivan", LastName: "Petrov", TaxNumber: "BG123"})
	require.NoError(t, err)

	t.Run("blocked while a device references the customer", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		store.On("HasDependents", ctx, integrity.KindCustomer, integrity.KindDevice, customer.ID).Return(true, nil)

		err := svc.Delete(ctx, tenantID, customer.ID)

		require.Error(t, err)
		assert.Equal(t, "This customer is already used", err.Error())
		repo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes an unreferenced customer", func(t *testing.T) {
		svc, repo, store := newTestCustomerService()
		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		store.On("HasDependents", ctx, integrity.KindCustomer, integrity.KindDevice, customer.ID).Return(false, nil)
		repo.On("DeleteForTenant", ctx, tenantID, customer.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, customer.ID))
		repo.AssertExpectations(t)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repo, _ := newTestCustomerService()

	c, err := partner.NewCustomer(tenantID, partner.CustomerDetails{FirstName: "Ivan", LastName: "Petrov", TaxNumber: "BG123"})
	require.NoError(t, err)
	filter := shared.Filter{Page: 0, PageSize: 500}.Normalize()
	repo.On("FindAllForTenant", ctx, tenantID, filter).Return([]partner.Customer{*c}, nil)
	repo.On("CountForTenant", ctx, tenantID, filter).Return(int64(1), nil)

	items, total, err := svc.List(ctx, tenantID, shared.Filter{Page: 0, PageSize: 500})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, c.ID, items[0].ID)
}
