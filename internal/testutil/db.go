// internal/testutil/db.go
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/movement"
	"github.com/your-org/inventory-backend/internal/domain/sale"
	"github.com/your-org/inventory-backend/internal/domain/stockin"
)

var dbSeq atomic.Int64

// NewTestDB opens an in-memory SQLite database with the full schema migrated.
// Each call gets its own named shared-cache database so the connection pool
// sees one schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	models := []interface{}{
		&catalog.Category{},
		&catalog.Product{},
		&stockin.StockIn{},
		&stockin.StockInItem{},
		&sale.Sale{},
		&sale.SaleItem{},
		&movement.InventoryMovement{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate %T: %v", model, err)
		}
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// NewTestConfig returns a minimal configuration for service construction
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "inventory-test",
			Environment: "test",
		},
	}
}
