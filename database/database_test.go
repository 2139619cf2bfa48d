package database

import (
	"path/filepath"
	"testing"

	"github.com/lshigami/testportal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.Database{Driver: "sqlite", Name: filepath.Join(t.TempDir(), "portal.db")}}

	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"tests", "questions", "test_results", "detailed_results", "review_requests"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("test_results", "idx_test_results_test_user"))
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.Config{Database: config.Database{Driver: "oracle"}})
	assert.ErrorContains(t, err, "unsupported database driver")
}
