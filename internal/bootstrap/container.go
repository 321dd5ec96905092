// Package bootstrap wires repositories, services and handlers together.
package bootstrap

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogapp "github.com/futurevend/backend/internal/application/catalog"
	fleetapp "github.com/futurevend/backend/internal/application/fleet"
	partnerapp "github.com/futurevend/backend/internal/application/partner"
	salesapp "github.com/futurevend/backend/internal/application/sales"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/persistence"
	"github.com/futurevend/backend/internal/interfaces/http/handler"
	"github.com/futurevend/backend/internal/interfaces/http/router"
)

// Options configures the container
type Options struct {
	Logger *zap.Logger

	// Idempotency is nil when replay detection is off
	Idempotency       shared.IdempotencyStore
	IdempotencyConfig shared.IdempotencyConfig

	// Recorder observes ingestion outcomes; optional
	Recorder salesapp.IngestionRecorder

	// Metrics serves GET /metrics; optional
	Metrics http.Handler

	// HealthChecks are probed by GET /health in addition to the database
	HealthChecks map[string]handler.HealthCheck
}

// Container holds the application services built over one database
type Container struct {
	Customers      *partnerapp.CustomerService
	Products       *catalogapp.ProductService
	PaymentDevices *fleetapp.PaymentDeviceService
	VendingDevices *fleetapp.VendingDeviceService
	Devices        *fleetapp.DeviceService
	Transactions   *salesapp.TransactionService
	Ingestion      *salesapp.IngestionService

	db   *gorm.DB
	opts Options
}

// New builds every service over db
func New(db *gorm.DB, opts Options) *Container {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
		opts.Logger = log
	}

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormVendingProductRepository(db)
	paymentDeviceRepo := persistence.NewGormPaymentDeviceRepository(db)
	vendingDeviceRepo := persistence.NewGormVendingDeviceRepository(db)
	deviceRepo := persistence.NewGormDeviceRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)

	integrityStore := persistence.NewGormIntegrityStore(db)
	uniqueness := integrity.NewUniquenessValidator(integrityStore)
	guard := integrity.NewDeletionGuard(integrityStore)

	ingestionOpts := []salesapp.IngestionOption{}
	if opts.Idempotency != nil {
		ingestionOpts = append(ingestionOpts, salesapp.WithIdempotency(opts.Idempotency, opts.IdempotencyConfig))
	}
	if opts.Recorder != nil {
		ingestionOpts = append(ingestionOpts, salesapp.WithRecorder(opts.Recorder))
	}

	return &Container{
		Customers:      partnerapp.NewCustomerService(customerRepo, uniqueness, guard, log),
		Products:       catalogapp.NewProductService(productRepo, uniqueness, guard, log),
		PaymentDevices: fleetapp.NewPaymentDeviceService(paymentDeviceRepo, guard, log),
		VendingDevices: fleetapp.NewVendingDeviceService(vendingDeviceRepo, guard, log),
		Devices: fleetapp.NewDeviceService(fleetapp.DeviceServiceDeps{
			DeviceRepo:        deviceRepo,
			PaymentDeviceRepo: paymentDeviceRepo,
			VendingDeviceRepo: vendingDeviceRepo,
			CustomerRepo:      customerRepo,
			Query:             persistence.NewGormDeviceQuery(db),
			Uniqueness:        uniqueness,
			Guard:             guard,
			Logger:            log,
		}),
		Transactions: salesapp.NewTransactionService(transactionRepo, persistence.NewGormTransactionQuery(db), guard, log),
		Ingestion:    salesapp.NewIngestionService(persistence.NewGormTransactionScope(db), log, ingestionOpts...),
		db:           db,
		opts:         opts,
	}
}

// Handlers returns the HTTP handlers over the container's services
func (c *Container) Handlers() router.Handlers {
	system := handler.NewSystemHandler(c.opts.Metrics)
	system.AddCheck("database", func(ctx context.Context) error {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	for name, check := range c.opts.HealthChecks {
		system.AddCheck(name, check)
	}

	return router.Handlers{
		System:         system,
		Ingestion:      handler.NewIngestionHandler(c.Ingestion),
		Customers:      handler.NewCustomerHandler(c.Customers),
		PaymentDevices: handler.NewPaymentDeviceHandler(c.PaymentDevices),
		VendingDevices: handler.NewVendingDeviceHandler(c.VendingDevices),
		Products:       handler.NewProductHandler(c.Products),
		Devices:        handler.NewDeviceHandler(c.Devices),
		Transactions:   handler.NewTransactionHandler(c.Transactions),
	}
}
