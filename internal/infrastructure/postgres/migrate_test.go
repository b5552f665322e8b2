package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		raw, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		body := string(raw)
		assert.Contains(t, body, "-- +goose Up", f)
		assert.Contains(t, body, "-- +goose Down", f)
	}
}

func TestMigrationsCubrenTablasDeRepos(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, migrationsDir+"/00001_init.sql")
	require.NoError(t, err)
	for _, table := range []string{
		"companies", "users", "suppliers", "components", "warehouse_inventory",
		"purchase_orders", "purchase_order_items", "shipments", "bills_of_material",
		"bom_items", "work_orders", "rfqs", "rfq_items",
	} {
		assert.True(t, strings.Contains(string(raw), "CREATE TABLE "+table+" ("), table)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(assertErr("ERROR: duplicate key (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(assertErr("connection refused")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
