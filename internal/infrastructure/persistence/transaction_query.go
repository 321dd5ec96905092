package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/sales"
	"github.com/futurevend/backend/internal/domain/shared"
)

// GormTransactionQuery builds the transaction read models, scoped to a tenant through devices
type GormTransactionQuery struct {
	db *gorm.DB
}

// NewGormTransactionQuery creates a new GormTransactionQuery
func NewGormTransactionQuery(db *gorm.DB) *GormTransactionQuery {
	return &GormTransactionQuery{db: db}
}

type transactionRow struct {
	ID                  uuid.UUID
	Amount              decimal.Decimal
	Currency            string
	PaymentType         string
	CreatedAt           time.Time
	RecordedAt          time.Time
	DeviceID            uuid.UUID
	VendingProductID    uuid.UUID
	PaymentDeviceSerial string
	CustomerFirstName   string
	CustomerLastName    string
	CustomerCompanyName string
	PdName              string
	PdManufacturer      string
	ProductName         string
	ProductDescription  string
}

func (r transactionRow) listItem() sales.TransactionListItem {
	return sales.TransactionListItem{
		ID:                        r.ID,
		Amount:                    r.Amount,
		Currency:                  sales.Currency(r.Currency),
		PaymentType:               sales.PaymentType(r.PaymentType),
		CreatedAt:                 r.CreatedAt,
		CustomerInformation:       shared.JoinNonEmpty(" ", r.CustomerFirstName, r.CustomerLastName),
		DeviceInformation:         shared.JoinNonEmpty(" ", r.PdName, r.PdManufacturer),
		VendingProductInformation: shared.JoinNonEmpty(" ", r.ProductName, r.ProductDescription),
	}
}

const transactionColumns = `t.id, t.amount, t.currency, t.payment_type, t.created_at, t.recorded_at,
	t.device_id, t.vending_product_id, d.payment_device_serial,
	c.first_name AS customer_first_name, c.last_name AS customer_last_name, c.company_name AS customer_company_name,
	pd.name AS pd_name, pd.manufacturer AS pd_manufacturer,
	vp.name AS product_name, vp.description AS product_description`

func (q *GormTransactionQuery) joined(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return q.db.WithContext(ctx).
		Table("transactions t").
		Joins("JOIN devices d ON d.id = t.device_id").
		Joins("JOIN payment_devices pd ON pd.id = d.payment_device_id").
		Joins("JOIN customers c ON c.id = d.customer_id").
		Joins("JOIN vending_products vp ON vp.id = t.vending_product_id").
		Where("d.tenant_id = ?", tenantID)
}

// ListTransactions returns one page of the tenant's transactions and the total matching count
func (q *GormTransactionQuery) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter sales.TransactionFilter) ([]sales.TransactionListItem, int64, error) {
	filtered := func() *gorm.DB {
		query := q.joined(ctx, tenantID)
		if filter.DeviceID != nil {
			query = query.Where("t.device_id = ?", *filter.DeviceID)
		}
		if filter.PaymentType != "" {
			query = query.Where("t.payment_type = ?", string(filter.PaymentType))
		}
		if filter.Currency != "" {
			query = query.Where("t.currency = ?", string(filter.Currency))
		}
		return applySearch(query, filter.Search, "vp.plu", "vp.name", "d.payment_device_serial", "c.last_name")
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []transactionRow
	if err := applyPage(filtered().Select(transactionColumns), filter.Filter, "t", TransactionSortFields).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]sales.TransactionListItem, len(rows))
	for i, row := range rows {
		items[i] = row.listItem()
	}
	return items, total, nil
}

// GetTransaction returns the details view of one of the tenant's transactions
func (q *GormTransactionQuery) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*sales.TransactionDetails, error) {
	var row transactionRow
	err := q.joined(ctx, tenantID).
		Select(transactionColumns).
		Where("t.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	details := &sales.TransactionDetails{
		TransactionListItem: row.listItem(),
		DeviceID:            row.DeviceID,
		VendingProductID:    row.VendingProductID,
		PaymentDeviceSerial: row.PaymentDeviceSerial,
		RecordedAt:          row.RecordedAt,
	}
	details.CustomerInformation = shared.JoinNonEmpty(" ", row.CustomerFirstName, row.CustomerLastName, row.CustomerCompanyName)
	return details, nil
}

// Ensure GormTransactionQuery implements TransactionQuery
var _ sales.TransactionQuery = (*GormTransactionQuery)(nil)
