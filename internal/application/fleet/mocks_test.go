package fleet

import (
	"context"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockDeviceRepository struct {
	mock.Mock
}

func (m *MockDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Device, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Device), args.Error(1)
}

func (m *MockDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Device, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.Device), args.Error(1)
}

func (m *MockDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeviceRepository) Save(ctx context.Context, device *fleet.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDeviceRepository) FindByPaymentSerial(ctx context.Context, serial string) (*fleet.Device, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Device), args.Error(1)
}

type MockPaymentDeviceRepository struct {
	mock.Mock
}

func (m *MockPaymentDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.PaymentDevice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.PaymentDevice), args.Error(1)
}

func (m *MockPaymentDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.PaymentDevice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.PaymentDevice), args.Error(1)
}

func (m *MockPaymentDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentDeviceRepository) Save(ctx context.Context, device *fleet.PaymentDevice) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockPaymentDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockVendingDeviceRepository struct {
	mock.Mock
}

func (m *MockVendingDeviceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.VendingDevice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.VendingDevice), args.Error(1)
}

func (m *MockVendingDeviceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.VendingDevice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.VendingDevice), args.Error(1)
}

func (m *MockVendingDeviceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendingDeviceRepository) Save(ctx context.Context, device *fleet.VendingDevice) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockVendingDeviceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

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

type MockDeviceQuery struct {
	mock.Mock
}

func (m *MockDeviceQuery) ListDevices(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.DeviceListItem, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.DeviceListItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockDeviceQuery) GetDevice(ctx context.Context, tenantID, id uuid.UUID) (*fleet.DeviceDetailsView, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.DeviceDetailsView), args.Error(1)
}

func (m *MockDeviceQuery) PaymentDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]fleet.Option), args.Error(1)
}

func (m *MockDeviceQuery) VendingDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]fleet.Option), args.Error(1)
}

func (m *MockDeviceQuery) CustomerOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]fleet.Option), args.Error(1)
}

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
