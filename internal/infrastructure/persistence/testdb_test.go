package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory SQLite database with foreign keys enforced and
// the schema migrated from the models.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// fleetFixture is one tenant's complete installation
type fleetFixture struct {
	tenantID      uuid.UUID
	customer      *partner.Customer
	paymentDevice *fleet.PaymentDevice
	vendingDevice *fleet.VendingDevice
	product       *catalog.VendingProduct
	device        *fleet.Device
}

func seedCustomer(t *testing.T, db *gorm.DB, tenantID uuid.UUID, taxNumber string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(tenantID, partner.CustomerDetails{
		CompanyName: "Acme Vending",
		FirstName:   "Ivan",
		LastName:    "Petrov",
		City:        "Sofia",
		Email:       "ivan@acme.test",
		TaxNumber:   taxNumber,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, plu string) *catalog.VendingProduct {
	t.Helper()
	p, err := catalog.NewVendingProduct(tenantID, catalog.ProductDetails{
		PLU:         plu,
		Name:        "Espresso",
		Description: "Double shot",
		Category:    "coffee",
	})
	require.NoError(t, err)
	require.NoError(t, NewGormVendingProductRepository(db).Save(context.Background(), p))
	return p
}

func seedFleet(t *testing.T, db *gorm.DB, serial string) fleetFixture {
	t.Helper()
	ctx := context.Background()
	f := fleetFixture{tenantID: uuid.New()}

	f.customer = seedCustomer(t, db, f.tenantID, "BG"+serial)

	var err error
	f.paymentDevice, err = fleet.NewPaymentDevice(f.tenantID, fleet.PaymentDeviceDetails{
		Name: "Move 5000", Manufacturer: "Ingenico", OSVersion: "11", NFC: true, Chip: true,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormPaymentDeviceRepository(db).Save(ctx, f.paymentDevice))

	f.vendingDevice, err = fleet.NewVendingDevice(f.tenantID, fleet.VendingDeviceDetails{
		Model: "Brio 3", Manufacturer: "Necta", SoftwareVersion: "2.1",
	})
	require.NoError(t, err)
	require.NoError(t, NewGormVendingDeviceRepository(db).Save(ctx, f.vendingDevice))

	f.product = seedProduct(t, db, f.tenantID, "101")

	f.device, err = fleet.NewDevice(f.tenantID, fleet.DeviceDetails{
		PaymentDeviceSerial: serial,
		VendingDeviceSerial: "VM-" + serial,
		PaymentDeviceID:     f.paymentDevice.ID,
		VendingDeviceID:     f.vendingDevice.ID,
		CustomerID:          f.customer.ID,
		AcceptCard:          true,
		LocationLat:         42.69,
		LocationLon:         23.32,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormDeviceRepository(db).Save(ctx, f.device))

	return f
}

func seedTransaction(t *testing.T, db *gorm.DB, f fleetFixture, amount string, paymentType sales.PaymentType) *sales.Transaction {
	t.Helper()
	tx, err := sales.NewTransaction(f.device.ID, f.product.ID, decimal.RequireFromString(amount),
		sales.CurrencyBGN, paymentType, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, NewGormTransactionRepository(db).Create(context.Background(), tx))
	return tx
}
