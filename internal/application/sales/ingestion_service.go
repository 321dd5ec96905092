package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futurevend/backend/internal/application/fleet"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/futurevend/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownProduct is returned when the device's tenant has no product with the reported PLU
var ErrUnknownProduct = shared.NewFieldError(shared.CodeUnknownProduct, "item_number", "Invalid vending product PLU")

// IngestionService records sales reported by field hardware
type IngestionService struct {
	scope       TransactionScope
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	recorder    IngestionRecorder
	logger      *zap.Logger
}

// IngestionOption configures an IngestionService
type IngestionOption func(*IngestionService)

// WithIdempotency enables replay detection on the Idempotency-Key of a request
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) IngestionOption {
	return func(s *IngestionService) {
		s.idempotency = store
		s.idemConfig = cfg
	}
}

// WithRecorder reports every outcome to r
func WithRecorder(r IngestionRecorder) IngestionOption {
	return func(s *IngestionService) {
		s.recorder = r
	}
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(scope TransactionScope, logger *zap.Logger, opts ...IngestionOption) *IngestionService {
	s := &IngestionService{
		scope:    scope,
		recorder: nopRecorder{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest resolves the reporting device and product and persists the sale.
// The tenant is always the one owning the resolved device. Device resolution,
// product lookup and the insert run in one transaction, so either a complete
// transaction is stored or nothing is.
func (s *IngestionService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ingestion", "ingest",
		telemetry.WithAttribute(telemetry.SpanAttrSerialNumber, req.SerialNumber),
		telemetry.WithAttribute(telemetry.SpanAttrItemNumber, req.ItemNumber),
		telemetry.WithAttribute(telemetry.SpanAttrPaymentType, req.PaymentType),
	)
	defer span.End()
	start := time.Now()

	result, tenantID, err := s.ingest(ctx, req)
	elapsed := time.Since(start)
	if tenantID != uuid.Nil {
		telemetry.SetAttributes(span, telemetry.SpanAttrTenantID, tenantID.String())
	}

	fields := []zap.Field{
		zap.String("serial_number", req.SerialNumber),
		zap.String("item_number", req.ItemNumber),
		zap.Duration("latency", elapsed),
	}
	if tenantID != uuid.Nil {
		fields = append(fields, zap.String("tenant_id", tenantID.String()))
	}

	var domainErr *shared.DomainError
	switch {
	case err == nil:
		outcome := OutcomeCreated
		if result.Replayed {
			outcome = OutcomeReplayed
		}
		s.recorder.ObserveIngestion(outcome, "", elapsed)
		telemetry.SetAttributes(span,
			telemetry.SpanAttrTransactionID, result.TransactionID.String(),
			telemetry.SpanAttrReplayed, result.Replayed,
		)
		telemetry.SetOK(span)
		s.logger.Info("Transaction ingested",
			append(fields, zap.String("transaction_id", result.TransactionID.String()), zap.Bool("replayed", result.Replayed))...)
		return result, nil
	case errors.As(err, &domainErr):
		s.recorder.ObserveIngestion(OutcomeRejected, domainErr.Code, elapsed)
		telemetry.RecordError(span, err)
		s.logger.Warn("Transaction rejected", append(fields, zap.String("code", domainErr.Code), zap.String("reason", domainErr.Message))...)
		return nil, err
	default:
		s.recorder.ObserveIngestion(OutcomeFailed, shared.CodeInternal, elapsed)
		telemetry.RecordError(span, err)
		s.logger.Error("Transaction ingestion failed", append(fields, zap.Error(err))...)
		return nil, err
	}
}

func (s *IngestionService) ingest(ctx context.Context, req IngestRequest) (*IngestResult, uuid.UUID, error) {
	currency, paymentType, err := validateIngestRequest(req)
	if err != nil {
		return nil, uuid.Nil, err
	}

	idemKey := s.idempotencyKey(req)
	if idemKey != "" {
		if prior, ok, err := s.idempotency.Lookup(ctx, idemKey); err != nil {
			s.logger.Warn("Idempotency lookup failed", zap.Error(err))
		} else if ok {
			if id, parseErr := uuid.Parse(prior); parseErr == nil {
				return &IngestResult{TransactionID: id, Replayed: true}, uuid.Nil, nil
			}
		}
	}

	var (
		created  *sales.Transaction
		tenantID uuid.UUID
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		device, err := fleet.NewDeviceResolver(repos.Devices()).ResolveBySerial(ctx, req.SerialNumber)
		if err != nil {
			return err
		}
		tenantID = device.TenantID

		product, err := repos.Products().FindByPLU(ctx, device.TenantID, strings.TrimSpace(req.ItemNumber))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrUnknownProduct
			}
			return fmt.Errorf("find product: %w", err)
		}

		tx, err := sales.NewTransaction(device.ID, product.ID, req.Amount, currency, paymentType, req.CreatedAt)
		if err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, tenantID, err
	}

	if idemKey != "" {
		if _, err := s.idempotency.Remember(ctx, idemKey, created.ID.String(), s.idemConfig.TTL); err != nil {
			s.logger.Warn("Idempotency remember failed", zap.Error(err))
		}
	}

	return &IngestResult{TransactionID: created.ID}, tenantID, nil
}

// idempotencyKey scopes the client key by serial so devices cannot collide
func (s *IngestionService) idempotencyKey(req IngestRequest) string {
	key := strings.TrimSpace(req.IdempotencyKey)
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return ""
	}
	return "ingest:" + strings.TrimSpace(req.SerialNumber) + ":" + key
}

func validateIngestRequest(req IngestRequest) (sales.Currency, sales.PaymentType, error) {
	if strings.TrimSpace(req.SerialNumber) == "" {
		return "", "", shared.NewValidationError("serial_number", "serial number is required")
	}
	if strings.TrimSpace(req.ItemNumber) == "" {
		return "", "", shared.NewValidationError("item_number", "item number is required")
	}
	if err := sales.ValidateAmount(req.Amount); err != nil {
		return "", "", err
	}
	currency, err := sales.ParseCurrency(req.Currency)
	if err != nil {
		return "", "", err
	}
	paymentType, err := sales.ParsePaymentType(req.PaymentType)
	if err != nil {
		return "", "", err
	}
	if req.CreatedAt.IsZero() {
		return "", "", shared.NewValidationError("created_at", "created at is required")
	}
	return currency, paymentType, nil
}
