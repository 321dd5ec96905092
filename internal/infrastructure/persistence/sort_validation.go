package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"first_name":   true,
	"last_name":    true,
	"company_name": true,
	"city":         true,
	"country":      true,
	"tax_number":   true,
}

// VendingProductSortFields contains allowed sort fields for vending products
var VendingProductSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"plu":        true,
	"name":       true,
	"category":   true,
}

// PaymentDeviceSortFields contains allowed sort fields for payment devices
var PaymentDeviceSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"manufacturer": true,
	"os_version":   true,
}

// VendingDeviceSortFields contains allowed sort fields for vending devices
var VendingDeviceSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"model":            true,
	"manufacturer":     true,
	"software_version": true,
}

// DeviceSortFields contains allowed sort fields for installations
var DeviceSortFields = map[string]bool{
	"created_at":            true,
	"updated_at":            true,
	"payment_device_serial": true,
	"vending_device_serial": true,
}

// TransactionSortFields contains allowed sort fields for transactions
var TransactionSortFields = map[string]bool{
	"created_at":   true,
	"recorded_at":  true,
	"amount":       true,
	"currency":     true,
	"payment_type": true,
}

// applyPage orders and paginates query. Sort columns are qualified with table
// because the read-model queries join several tables that share column names.
func applyPage(query *gorm.DB, filter shared.Filter, table string, allowed map[string]bool) *gorm.DB {
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	if table != "" {
		field = table + "." + field
	}
	return query.
		Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// applySearch adds a case-insensitive substring match over columns
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		conds[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(conds, " OR ")+")", args...)
}
