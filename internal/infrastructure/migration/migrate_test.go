package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurevend/backend/migrations"
)

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "000001_create_fleet_schema", names[0])
	assert.IsIncreasing(t, names)
}

func TestMigrationsArePaired(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	for _, name := range names {
		down, err := fs.ReadFile(migrations.FS, name+".down.sql")
		require.NoError(t, err, "missing down migration for %s", name)
		assert.Contains(t, strings.ToUpper(string(down)), "DROP")
	}
}

func TestMigrationsNameConstraints(t *testing.T) {
	var all strings.Builder
	names, err := List()
	require.NoError(t, err)
	for _, name := range names {
		up, err := fs.ReadFile(migrations.FS, name+".up.sql")
		require.NoError(t, err)
		all.Write(up)
	}

	// error translation depends on these names
	for _, constraint := range []string{
		"uq_customers_tenant_tax_number",
		"uq_vending_products_tenant_plu",
		"uq_devices_payment_device_serial",
		"uq_devices_vending_device_serial",
		"fk_devices_customer",
		"fk_devices_payment_device",
		"fk_devices_vending_device",
		"fk_transactions_device",
		"fk_transactions_vending_product",
	} {
		assert.Contains(t, all.String(), constraint)
	}
}

func TestNewerThan(t *testing.T) {
	names := []string{"000001_create_fleet_schema", "000002_create_devices", "000003_create_transactions"}

	assert.Equal(t, names, newerThan(names, 0))
	assert.Equal(t, []string{"000003_create_transactions"}, newerThan(names, 2))
	assert.Empty(t, newerThan(names, 3))
}
