package sales

import (
	"context"

	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionService serves a tenant's view of its transactions
type TransactionService struct {
	repo   sales.TransactionRepository
	query  sales.TransactionQuery
	guard  *integrity.DeletionGuard
	logger *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repo sales.TransactionRepository, query sales.TransactionQuery, guard *integrity.DeletionGuard, logger *zap.Logger) *TransactionService {
	return &TransactionService{repo: repo, query: query, guard: guard, logger: logger}
}

// List returns a page of the tenant's transactions
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, f TransactionListFilter) ([]sales.TransactionListItem, int64, error) {
	filter := sales.TransactionFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			OrderBy:  f.OrderBy,
			OrderDir: f.OrderDir,
			Search:   f.Search,
		}.Normalize(),
	}
	if f.DeviceID != "" {
		id, err := uuid.Parse(f.DeviceID)
		if err != nil {
			return nil, 0, shared.NewValidationError("device_id", "Invalid device ID format")
		}
		filter.DeviceID = &id
	}
	if f.PaymentType != "" {
		pt, err := sales.ParsePaymentType(f.PaymentType)
		if err != nil {
			return nil, 0, err
		}
		filter.PaymentType = pt
	}
	if f.Currency != "" {
		c, err := sales.ParseCurrency(f.Currency)
		if err != nil {
			return nil, 0, err
		}
		filter.Currency = c
	}

	return s.query.ListTransactions(ctx, tenantID, filter)
}

// GetByID returns the transaction details read model
func (s *TransactionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.TransactionDetails, error) {
	return s.query.GetTransaction(ctx, tenantID, id)
}

// Delete removes a transaction. Transactions are terminal records and are never blocked.
func (s *TransactionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.guard.CanDelete(ctx, integrity.KindTransaction, id); err != nil {
		return err
	}
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("transaction_id", id.String()),
	)
	return nil
}
