// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalog "github.com/tair/pos-engine/internal/catalog/domain"
	discount "github.com/tair/pos-engine/internal/discount/domain"
	inventory "github.com/tair/pos-engine/internal/inventory/domain"
	sale "github.com/tair/pos-engine/internal/sale/domain"
)

// NewDB opens a migrated SQLite database in the test's temp dir. A single
// connection serializes transactions the way row locks would on PostgreSQL.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.RecipeLine{},
		&inventory.Supply{},
		&inventory.HistoryEntry{},
		&discount.Discount{},
		&sale.Sale{},
		&sale.SupplyUsage{},
	))
	return db
}
