package sales

import (
	"context"
	"sync"
	"time"

	"github.com/futurevend/backend/internal/application/fleet"
	"github.com/futurevend/backend/internal/domain/catalog"
	domainfleet "github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memoryStore is an in-process entity store for ingestion tests.
// Execute stages writes and only applies them when fn succeeds.
type memoryStore struct {
	mu           sync.Mutex
	devices      []domainfleet.Device
	products     []catalog.VendingProduct
	transactions []sales.Transaction
	insertErr    error
}

func (s *memoryStore) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &stagedRepos{store: s}
	if err := fn(staged); err != nil {
		return err
	}
	s.transactions = append(s.transactions, staged.pending...)
	return nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

type stagedRepos struct {
	store   *memoryStore
	pending []sales.Transaction
}

func (r *stagedRepos) Devices() fleet.SerialLookup { return r }

func (r *stagedRepos) Products() ProductLookup { return r }

func (r *stagedRepos) Transactions() sales.TransactionRepository { return r }

func (r *stagedRepos) FindByPaymentSerial(_ context.Context, serial string) (*domainfleet.Device, error) {
	for i := range r.store.devices {
		if r.store.devices[i].PaymentDeviceSerial == serial {
			d := r.store.devices[i]
			return &d, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stagedRepos) FindByPLU(_ context.Context, tenantID uuid.UUID, plu string) (*catalog.VendingProduct, error) {
	for i := range r.store.products {
		p := r.store.products[i]
		if p.TenantID == tenantID && p.PLU == plu {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stagedRepos) Create(_ context.Context, tx *sales.Transaction) error {
	if r.store.insertErr != nil {
		return r.store.insertErr
	}
	r.pending = append(r.pending, *tx)
	return nil
}

func (r *stagedRepos) FindByIDForTenant(context.Context, uuid.UUID, uuid.UUID) (*sales.Transaction, error) {
	return nil, shared.ErrNotFound
}

func (r *stagedRepos) DeleteForTenant(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (r *stagedRepos) CountByDevice(_ context.Context, deviceID uuid.UUID) (int64, error) {
	var n int64
	for _, tx := range r.store.transactions {
		if tx.DeviceID == deviceID {
			n++
		}
	}
	return n, nil
}

// memoryIdempotency is a map-backed IdempotencyStore
type memoryIdempotency struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{values: make(map[string]string)}
}

func (m *memoryIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryIdempotency) Remember(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value
	return true, nil
}

func (m *memoryIdempotency) Close() error { return nil }

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ObserveIngestion(outcome, code string, elapsed time.Duration) {
	m.Called(outcome, code, elapsed)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *sales.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Transaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockTransactionRepository) CountByDevice(ctx context.Context, deviceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTransactionQuery struct {
	mock.Mock
}

func (m *MockTransactionQuery) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter sales.TransactionFilter) ([]sales.TransactionListItem, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.TransactionListItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionQuery) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*sales.TransactionDetails, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.TransactionDetails), args.Error(1)
}

type noDependents struct{}

func (noDependents) HasDependents(context.Context, integrity.Kind, integrity.Kind, uuid.UUID) (bool, error) {
	return false, nil
}
