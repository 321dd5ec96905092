package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appfleet "github.com/futurevend/backend/internal/application/fleet"
	appsales "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

func countTransactions(t *testing.T, scope *GormTransactionScope) int64 {
	t.Helper()
	var n int64
	require.NoError(t, scope.db.Model(&models.TransactionModel{}).Count(&n).Error)
	return n
}

func TestGormTransactionScope_IngestsThroughService(t *testing.T) {
	db := newTestDB(t)
	f := seedFleet(t, db, "PD-70")
	scope := NewGormTransactionScope(db)
	svc := appsales.NewIngestionService(scope, zap.NewNop())

	result, err := svc.Ingest(context.Background(), appsales.IngestRequest{
		SerialNumber: "PD-70",
		ItemNumber:   "101",
		Amount:       decimal.RequireFromString("2.50"),
		Currency:     "bgn",
		PaymentType:  "CARD",
		CreatedAt:    time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	stored, err := NewGormTransactionRepository(db).FindByIDForTenant(context.Background(), f.tenantID, result.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, f.device.ID, stored.DeviceID)
	assert.Equal(t, f.product.ID, stored.VendingProductID)
	assert.Equal(t, sales.PaymentTypeCard, stored.PaymentType)
}

func TestGormTransactionScope_UnknownProductPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db, "PD-71")
	other := seedFleet(t, db, "PD-72")
	seedProduct(t, db, other.tenantID, "999")
	scope := NewGormTransactionScope(db)
	svc := appsales.NewIngestionService(scope, zap.NewNop())

	// PLU 999 exists only for the other tenant
	_, err := svc.Ingest(context.Background(), appsales.IngestRequest{
		SerialNumber: "PD-71",
		ItemNumber:   "999",
		Amount:       decimal.NewFromInt(1),
		Currency:     "EUR",
		PaymentType:  "cash",
		CreatedAt:    time.Now(),
	})
	assert.ErrorIs(t, err, appsales.ErrUnknownProduct)
	assert.Zero(t, countTransactions(t, scope))
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	f := seedFleet(t, db, "PD-73")
	scope := NewGormTransactionScope(db)
	boom := errors.New("boom")

	err := scope.Execute(context.Background(), func(repos appsales.TransactionalRepositories) error {
		tx, err := sales.NewTransaction(f.device.ID, f.product.ID, decimal.NewFromInt(3), sales.CurrencyEUR, sales.PaymentTypeCash, time.Now())
		require.NoError(t, err)
		if err := repos.Transactions().Create(context.Background(), tx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countTransactions(t, scope))
}

func TestGormTransactionScope_ForeignKeyFailureIsUnknownDevice(t *testing.T) {
	db := newTestDB(t)
	f := seedFleet(t, db, "PD-74")
	scope := NewGormTransactionScope(db)

	err := scope.Execute(context.Background(), func(repos appsales.TransactionalRepositories) error {
		tx, err := sales.NewTransaction(uuid.New(), f.product.ID, decimal.NewFromInt(3), sales.CurrencyEUR, sales.PaymentTypeCash, time.Now())
		require.NoError(t, err)
		return repos.Transactions().Create(context.Background(), tx)
	})
	assert.ErrorIs(t, err, appfleet.ErrUnknownDevice)
	assert.Zero(t, countTransactions(t, scope))
}
