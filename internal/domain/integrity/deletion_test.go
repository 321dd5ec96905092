package integrity

import (
	"context"
	"errors"
	"testing"

	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReferenceLookup struct {
	mock.Mock
}

func (m *mockReferenceLookup) HasDependents(ctx context.Context, kind, dependent Kind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, dependent, id)
	return args.Bool(0), args.Error(1)
}

func TestDeletionGuard_CanDelete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		kind      Kind
		dependent Kind
		message   string
	}{
		{KindCustomer, KindDevice, "This customer is already used"},
		{KindPaymentDevice, KindDevice, "This payment device is already used"},
		{KindVendingDevice, KindDevice, "This vending device is already used"},
		{KindVendingProduct, KindTransaction, "This vending product is already used"},
		{KindDevice, KindTransaction, "This device is already used"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+" blocked by "+string(tt.dependent), func(t *testing.T) {
			id := uuid.New()
			refs := new(mockReferenceLookup)
			refs.On("HasDependents", ctx, tt.kind, tt.dependent, id).Return(true, nil)

			err := NewDeletionGuard(refs).CanDelete(ctx, tt.kind, id)

			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, shared.CodeReferentialBlock, domainErr.Code)
			assert.Equal(t, tt.message, domainErr.Message)
		})

		t.Run(string(tt.kind)+" without dependents", func(t *testing.T) {
			id := uuid.New()
			refs := new(mockReferenceLookup)
			refs.On("HasDependents", ctx, tt.kind, tt.dependent, id).Return(false, nil)

			assert.NoError(t, NewDeletionGuard(refs).CanDelete(ctx, tt.kind, id))
		})
	}

	t.Run("transactions are always deletable", func(t *testing.T) {
		refs := new(mockReferenceLookup)

		assert.NoError(t, NewDeletionGuard(refs).CanDelete(ctx, KindTransaction, uuid.New()))
		refs.AssertNumberOfCalls(t, "HasDependents", 0)
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		err := NewDeletionGuard(new(mockReferenceLookup)).CanDelete(ctx, Kind("warehouse"), uuid.New())
		assert.Error(t, err)
	})

	t.Run("lookup failure is not a block", func(t *testing.T) {
		id := uuid.New()
		refs := new(mockReferenceLookup)
		refs.On("HasDependents", ctx, KindDevice, KindTransaction, id).Return(false, errors.New("timeout"))

		err := NewDeletionGuard(refs).CanDelete(ctx, KindDevice, id)

		require.Error(t, err)
		assert.False(t, shared.HasCode(err, shared.CodeReferentialBlock))
	})
}

func TestDependencyByConstraint(t *testing.T) {
	dep, ok := DependencyByConstraint("fk_transactions_device")
	require.True(t, ok)
	assert.Equal(t, KindDevice, dep.Kind)

	_, ok = DependencyByConstraint("fk_unknown")
	assert.False(t, ok)
}
