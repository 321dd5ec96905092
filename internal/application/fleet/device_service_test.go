package fleet

import (
	"context"
	"testing"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type deviceServiceFixture struct {
	svc       *DeviceService
	devices   *MockDeviceRepository
	payments  *MockPaymentDeviceRepository
	vendings  *MockVendingDeviceRepository
	customers *MockCustomerRepository
	query     *MockDeviceQuery
	store     *MockIntegrityStore
}

func newDeviceServiceFixture() *deviceServiceFixture {
	f := &deviceServiceFixture{
		devices:   new(MockDeviceRepository),
		payments:  new(MockPaymentDeviceRepository),
		vendings:  new(MockVendingDeviceRepository),
		customers: new(MockCustomerRepository),
		query:     new(MockDeviceQuery),
		store:     new(MockIntegrityStore),
	}
	f.svc = NewDeviceService(DeviceServiceDeps{
		DeviceRepo:        f.devices,
		PaymentDeviceRepo: f.payments,
		VendingDeviceRepo: f.vendings,
		CustomerRepo:      f.customers,
		Query:             f.query,
		Uniqueness:        integrity.NewUniquenessValidator(f.store),
		Guard:             integrity.NewDeletionGuard(f.store),
		Logger:            zap.NewNop(),
	})
	return f
}

// ownsReferences makes every referenced record visible to the tenant
func (f *deviceServiceFixture) ownsReferences(tenantID uuid.UUID, req DeviceRequest) {
	f.payments.On("FindByIDForTenant", mock.Anything, tenantID, req.PaymentDeviceID).Return(&fleet.PaymentDevice{}, nil)
	f.vendings.On("FindByIDForTenant", mock.Anything, tenantID, req.VendingDeviceID).Return(&fleet.VendingDevice{}, nil)
	f.customers.On("FindByIDForTenant", mock.Anything, tenantID, req.CustomerID).Return(&partner.Customer{}, nil)
}

func newDeviceRequest(serial string) DeviceRequest {
	return DeviceRequest{
		PaymentDeviceSerial: serial,
		VendingDeviceSerial: "VND-" + serial,
		PaymentDeviceID:     uuid.New(),
		VendingDeviceID:     uuid.New(),
		CustomerID:          uuid.New(),
		AcceptCard:          true,
		LocationLat:         42.69,
		LocationLon:         23.32,
	}
}

func TestDeviceService_Create(t *testing.T) {
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()
	nilTenant := (*uuid.UUID)(nil)

	t.Run("creates installation", func(t *testing.T) {
		f := newDeviceServiceFixture()
		req := newDeviceRequest("ABC123")
		f.ownsReferences(tenantA, req)
		f.store.On("ExistsOther", ctx, integrity.KindDevice, integrity.FieldPaymentDeviceSerial, "ABC123", nilTenant, uuid.Nil).Return(false, nil)
		f.store.On("ExistsOther", ctx, integrity.KindDevice, integrity.FieldVendingDeviceSerial, "VND-ABC123", nilTenant, uuid.Nil).Return(false, nil)
		f.devices.On("Save", ctx, mock.AnythingOfType("*fleet.Device")).Return(nil)

		resp, err := f.svc.Create(ctx, tenantA, req)

		require.NoError(t, err)
		assert.Equal(t, tenantA, resp.TenantID)
		assert.Equal(t, req.CustomerID, resp.CustomerID)
		f.devices.AssertExpectations(t)
	})

	t.Run("payment serial is unique across tenants", func(t *testing.T) {
		f := newDeviceServiceFixture()
		req := newDeviceRequest("ABC123")
		f.ownsReferences(tenantB, req)
		f.store.On("ExistsOther", ctx, integrity.KindDevice, integrity.FieldPaymentDeviceSerial, "ABC123", nilTenant, uuid.Nil).Return(true, nil)

		_, err := f.svc.Create(ctx, tenantB, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
		assert.Equal(t, "payment_device_serial", domainErr.Field)
		f.devices.AssertNumberOfCalls(t, "Save", 0)
	})

	t.Run("rejects hardware owned by another tenant", func(t *testing.T) {
		f := newDeviceServiceFixture()
		req := newDeviceRequest("ABC123")
		f.payments.On("FindByIDForTenant", ctx, tenantA, req.PaymentDeviceID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, tenantA, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
		assert.Equal(t, "payment_device_id", domainErr.Field)
		f.store.AssertNumberOfCalls(t, "ExistsOther", 0)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		f := newDeviceServiceFixture()
		req := newDeviceRequest("ABC123")
		req.LocationLat = 120

		_, err := f.svc.Create(ctx, tenantA, req)

		assert.True(t, shared.HasCode(err, shared.CodeValidation))
	})
}

func TestDeviceService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newDeviceServiceFixture()

	req := newDeviceRequest("ABC123")
	device, err := fleet.NewDevice(tenantID, req.details())
	require.NoError(t, err)

	req.AcceptCash = true
	f.devices.On("FindByIDForTenant", ctx, tenantID, device.ID).Return(device, nil)
	f.ownsReferences(tenantID, req)
	f.store.On("ExistsOther", ctx, integrity.KindDevice, mock.Anything, mock.Anything, (*uuid.UUID)(nil), device.ID).Return(false, nil)
	f.devices.On("Save", ctx, device).Return(nil)

	resp, err := f.svc.Update(ctx, tenantID, device.ID, req)

	require.NoError(t, err)
	assert.True(t, resp.AcceptCash)
	assert.Equal(t, device.ID, resp.ID)
	f.store.AssertNumberOfCalls(t, "ExistsOther", 2)
}

func TestDeviceService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	device, err := fleet.NewDevice(tenantID, newDeviceRequest("ABC123").details())
	require.NoError(t, err)

	t.Run("blocked by transactions", func(t *testing.T) {
		f := newDeviceServiceFixture()
		f.devices.On("FindByIDForTenant", ctx, tenantID, device.ID).Return(device, nil)
		f.store.On("HasDependents", ctx, integrity.KindDevice, integrity.KindTransaction, device.ID).Return(true, nil)

		err := f.svc.Delete(ctx, tenantID, device.ID)

		assert.ErrorIs(t, err, shared.ErrReferentialBlock)
		f.devices.AssertNumberOfCalls(t, "DeleteForTenant", 0)
	})

	t.Run("deletes idle installation", func(t *testing.T) {
		f := newDeviceServiceFixture()
		f.devices.On("FindByIDForTenant", ctx, tenantID, device.ID).Return(device, nil)
		f.store.On("HasDependents", ctx, integrity.KindDevice, integrity.KindTransaction, device.ID).Return(false, nil)
		f.devices.On("DeleteForTenant", ctx, tenantID, device.ID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, tenantID, device.ID))
	})
}

func TestDeviceService_Options(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newDeviceServiceFixture()

	payment := []fleet.Option{{ID: uuid.New(), Label: "Move 5000 - Ingenico"}}
	vending := []fleet.Option{{ID: uuid.New(), Label: "Brio 3 - Necta"}}
	customers := []fleet.Option{{ID: uuid.New(), Label: "Ivan Petrov - Vend Ltd"}}
	f.query.On("PaymentDeviceOptions", ctx, tenantID).Return(payment, nil)
	f.query.On("VendingDeviceOptions", ctx, tenantID).Return(vending, nil)
	f.query.On("CustomerOptions", ctx, tenantID).Return(customers, nil)

	opts, err := f.svc.Options(ctx, tenantID)

	require.NoError(t, err)
	assert.Equal(t, payment, opts.PaymentDevices)
	assert.Equal(t, vending, opts.VendingDevices)
	assert.Equal(t, customers, opts.Customers)
}
