package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/fleet"
	"github.com/futurevend/backend/internal/domain/shared"
)

// GormDeviceQuery builds the installation read models with explicit joins
type GormDeviceQuery struct {
	db *gorm.DB
}

// NewGormDeviceQuery creates a new GormDeviceQuery
func NewGormDeviceQuery(db *gorm.DB) *GormDeviceQuery {
	return &GormDeviceQuery{db: db}
}

// deviceRow is the flat result of the device join
type deviceRow struct {
	ID                  uuid.UUID
	PaymentDeviceSerial string
	VendingDeviceSerial string
	PaymentDeviceID     uuid.UUID
	VendingDeviceID     uuid.UUID
	CustomerID          uuid.UUID
	AcceptCard          bool
	AcceptCash          bool
	LocationLat         float64
	LocationLon         float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	PdName              string
	PdManufacturer      string
	VdModel             string
	VdManufacturer      string
	CustomerFirstName   string
	CustomerLastName    string
	CustomerCompanyName string
}

func (r deviceRow) listItem() fleet.DeviceListItem {
	return fleet.DeviceListItem{
		ID:                       r.ID,
		PaymentDeviceSerial:      r.PaymentDeviceSerial,
		VendingDeviceSerial:      r.VendingDeviceSerial,
		PaymentDeviceInformation: shared.JoinNonEmpty(" ", r.PdName, r.PdManufacturer),
		VendingDeviceInformation: shared.JoinNonEmpty(" ", r.VdModel, r.VdManufacturer),
		CustomerInformation:      shared.JoinNonEmpty(" ", r.CustomerFirstName, r.CustomerLastName, r.CustomerCompanyName),
		AcceptCard:               r.AcceptCard,
		AcceptCash:               r.AcceptCash,
		LocationLat:              r.LocationLat,
		LocationLon:              r.LocationLon,
		CreatedAt:                r.CreatedAt,
	}
}

const deviceColumns = `d.id, d.payment_device_serial, d.vending_device_serial,
	d.payment_device_id, d.vending_device_id, d.customer_id,
	d.accept_card, d.accept_cash, d.location_lat, d.location_lon, d.created_at, d.updated_at,
	pd.name AS pd_name, pd.manufacturer AS pd_manufacturer,
	vd.model AS vd_model, vd.manufacturer AS vd_manufacturer,
	c.first_name AS customer_first_name, c.last_name AS customer_last_name, c.company_name AS customer_company_name`

func (q *GormDeviceQuery) joined(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return q.db.WithContext(ctx).
		Table("devices d").
		Joins("JOIN payment_devices pd ON pd.id = d.payment_device_id").
		Joins("JOIN vending_devices vd ON vd.id = d.vending_device_id").
		Joins("JOIN customers c ON c.id = d.customer_id").
		Where("d.tenant_id = ?", tenantID)
}

// ListDevices returns one page of a tenant's installations and the total matching count
func (q *GormDeviceQuery) ListDevices(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.DeviceListItem, int64, error) {
	filtered := func() *gorm.DB {
		return applySearch(q.joined(ctx, tenantID), filter.Search,
			"d.payment_device_serial", "d.vending_device_serial", "pd.name", "vd.model", "c.company_name", "c.last_name")
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []deviceRow
	if err := applyPage(filtered().Select(deviceColumns), filter, "d", DeviceSortFields).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]fleet.DeviceListItem, len(rows))
	for i, row := range rows {
		items[i] = row.listItem()
	}
	return items, total, nil
}

// GetDevice returns the details view of one installation of the tenant
func (q *GormDeviceQuery) GetDevice(ctx context.Context, tenantID, id uuid.UUID) (*fleet.DeviceDetailsView, error) {
	var row deviceRow
	err := q.joined(ctx, tenantID).
		Select(deviceColumns).
		Where("d.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	return &fleet.DeviceDetailsView{
		DeviceListItem:  row.listItem(),
		PaymentDeviceID: row.PaymentDeviceID,
		VendingDeviceID: row.VendingDeviceID,
		CustomerID:      row.CustomerID,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

// optionRow holds up to three label parts selected as part1..part3
type optionRow struct {
	ID    uuid.UUID
	Part1 string
	Part2 string
	Part3 string
}

func (q *GormDeviceQuery) options(ctx context.Context, table, columns, order string, tenantID uuid.UUID, label func(optionRow) string) ([]fleet.Option, error) {
	var rows []optionRow
	if err := q.db.WithContext(ctx).
		Table(table).
		Select(columns).
		Where("tenant_id = ?", tenantID).
		Order(order).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	options := make([]fleet.Option, len(rows))
	for i, row := range rows {
		options[i] = fleet.Option{ID: row.ID, Label: label(row)}
	}
	return options, nil
}

// PaymentDeviceOptions lists the tenant's payment devices as "Name - Manufacturer"
func (q *GormDeviceQuery) PaymentDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	return q.options(ctx, "payment_devices", "id, name AS part1, manufacturer AS part2", "name", tenantID,
		func(r optionRow) string { return shared.JoinNonEmpty(" - ", r.Part1, r.Part2) })
}

// VendingDeviceOptions lists the tenant's vending devices as "Model - Manufacturer"
func (q *GormDeviceQuery) VendingDeviceOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	return q.options(ctx, "vending_devices", "id, model AS part1, manufacturer AS part2", "model", tenantID,
		func(r optionRow) string { return shared.JoinNonEmpty(" - ", r.Part1, r.Part2) })
}

// CustomerOptions lists the tenant's customers as "FirstName LastName - CompanyName"
func (q *GormDeviceQuery) CustomerOptions(ctx context.Context, tenantID uuid.UUID) ([]fleet.Option, error) {
	return q.options(ctx, "customers", "id, first_name AS part1, last_name AS part2, company_name AS part3", "last_name, first_name", tenantID,
		func(r optionRow) string {
			return shared.JoinNonEmpty(" - ", shared.JoinNonEmpty(" ", r.Part1, r.Part2), r.Part3)
		})
}

// Ensure GormDeviceQuery implements DeviceQuery
var _ fleet.DeviceQuery = (*GormDeviceQuery)(nil)
