package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteFileCreatesDirectoryAndMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "site.db")

	db, err := Open(Options{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasTable(&models.VisitorStat{}))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestNormalizeMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn, err := NormalizeMySQLDSN("user:pass@tcp(127.0.0.1:3306)/travel")
	require.NoError(t, err)
	assert.True(t, strings.Contains(dsn, "parseTime=true"), dsn)
}

func TestNormalizeMySQLDSN_Invalid(t *testing.T) {
	_, err := NormalizeMySQLDSN("not a dsn")
	require.Error(t, err)
}
