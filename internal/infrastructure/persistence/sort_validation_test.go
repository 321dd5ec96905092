package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/futurevend/backend/internal/domain/shared"
)

func TestValidateSortOrder(t *testing.T) {
	for input, want := range map[string]string{
		"":                         "DESC",
		"asc":                      "ASC",
		"  ASC ":                   "ASC",
		"desc":                     "DESC",
		"ASC; DROP TABLE devices;": "DESC",
	} {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	payloads := []string{
		"",
		"   ",
		"PLU",
		"plu; DROP TABLE vending_products;--",
		"created_at' OR '1'='1",
		"CASE WHEN 1=1 THEN plu ELSE name END",
		"created_at\n; DROP TABLE devices",
	}
	for _, p := range payloads {
		assert.Equal(t, "created_at", ValidateSortField(p, VendingProductSortFields, "created_at"), "payload %q", p)
	}

	assert.Equal(t, "plu", ValidateSortField(" plu ", VendingProductSortFields, "created_at"))
}

func TestSortFieldsAllowDefault(t *testing.T) {
	for _, whitelist := range []map[string]bool{
		CustomerSortFields, VendingProductSortFields, PaymentDeviceSortFields,
		VendingDeviceSortFields, DeviceSortFields, TransactionSortFields,
	} {
		assert.True(t, whitelist["created_at"])
	}
}

func dryRun(t *testing.T) *gorm.DB {
	return newTestDB(t).Session(&gorm.Session{DryRun: true})
}

func TestApplyPage(t *testing.T) {
	t.Run("qualifies the column for joined queries", func(t *testing.T) {
		var rows []map[string]any
		stmt := applyPage(dryRun(t).Table("transactions t"), shared.Filter{OrderBy: "amount", OrderDir: "asc"}, "t", TransactionSortFields).
			Find(&rows).Statement

		assert.Contains(t, stmt.SQL.String(), "ORDER BY t.amount ASC")
	})

	t.Run("falls back to newest first", func(t *testing.T) {
		var rows []map[string]any
		stmt := applyPage(dryRun(t).Table("devices"), shared.Filter{OrderBy: "tenant_id"}, "", DeviceSortFields).
			Find(&rows).Statement

		assert.Contains(t, stmt.SQL.String(), "ORDER BY created_at DESC")
	})
}

func TestApplySearch(t *testing.T) {
	t.Run("matches any column case-insensitively", func(t *testing.T) {
		var rows []map[string]any
		stmt := applySearch(dryRun(t).Table("vending_products vp"), "  EsPresso ", "vp.plu", "vp.name").
			Find(&rows).Statement

		assert.Contains(t, stmt.SQL.String(), "(LOWER(vp.plu) LIKE ? OR LOWER(vp.name) LIKE ?)")
		assert.Equal(t, []any{"%espresso%", "%espresso%"}, stmt.Vars)
	})

	t.Run("blank search adds nothing", func(t *testing.T) {
		var rows []map[string]any
		stmt := applySearch(dryRun(t).Table("vending_products"), "   ", "plu").
			Find(&rows).Statement

		assert.NotContains(t, stmt.SQL.String(), "LIKE")
	})
}
