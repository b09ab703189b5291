package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "drill.db")
	for i := 0; i < 2; i++ {
		db, err := Open(Config{Driver: DriverSQLite, DSN: dsn})
		require.NoError(t, err)

		var tables []string
		require.NoError(t, db.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
		assert.Equal(t, []string{"items", "of_matrix", "review_logs"}, tables)
		require.NoError(t, db.Close())
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestSchemaFloatColumns(t *testing.T) {
	for _, tbl := range schema(DriverPostgres) {
		assert.NotContains(t, tbl.ddl, " REAL", tbl.name)
		assert.NotContains(t, tbl.ddl, "AUTOINCREMENT", tbl.name)
	}
	matrix := schema(DriverPostgres)[1]
	require.Equal(t, "of_matrix", matrix.name)
	assert.Equal(t, 2, strings.Count(matrix.ddl, "DOUBLE PRECISION"))

	for _, tbl := range schema(DriverSQLite) {
		assert.NotContains(t, tbl.ddl, "DOUBLE PRECISION", tbl.name)
	}
}
