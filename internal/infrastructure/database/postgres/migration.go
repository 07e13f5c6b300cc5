// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/movement"
	"github.com/your-org/inventory-backend/internal/domain/sale"
	"github.com/your-org/inventory-backend/internal/domain/stockin"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order: catalog first, then batches, then the log
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
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",

		// Batch indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_ins_date ON stock_ins(stock_in_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_in_items_product ON stock_in_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_sales_datetime ON sales(sale_datetime DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items(product_id)",

		// Movement log indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_product ON inventory_movements(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_type ON inventory_movements(movement_type)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_date ON inventory_movements(movement_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_sale_item ON inventory_movements(sale_item_id)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_movements_stock_in_item ON inventory_movements(stock_in_item_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts development data so reports return something
// out of the box
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedOpeningStock(); err != nil {
		return fmt.Errorf("failed to seed opening stock: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates default product categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	names := []string{"Beverages", "Snacks", "Household", "Stationery"}

	for _, name := range names {
		var existing catalog.Category
		result := m.db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&catalog.Category{Name: name}).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", name)
		} else {
			log.Printf("⏭️ Category already exists: %s", name)
		}
	}

	return nil
}

// seedProducts creates a few sample products
func (m *Migration) seedProducts() error {
	log.Println("🛍️ Seeding products...")

	var productCount int64
	m.db.Model(&catalog.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	var beverages, snacks catalog.Category
	m.db.Where("name = ?", "Beverages").First(&beverages)
	m.db.Where("name = ?", "Snacks").First(&snacks)

	sku1, sku2, sku3 := "BEV-0001", "BEV-0002", "SNK-0001"
	products := []catalog.Product{
		{
			Name:         "Sparkling Water 500ml",
			CategoryID:   &beverages.ID,
			SKU:          &sku1,
			Price:        decimal.NewFromFloat(1.50),
			ReorderLevel: 24,
		},
		{
			Name:         "Cold Brew Coffee 250ml",
			CategoryID:   &beverages.ID,
			SKU:          &sku2,
			Price:        decimal.NewFromFloat(3.25),
			ReorderLevel: 12,
		},
		{
			Name:         "Sea Salt Crisps 150g",
			CategoryID:   &snacks.ID,
			SKU:          &sku3,
			Price:        decimal.NewFromFloat(2.00),
			ReorderLevel: 20,
		},
	}

	for _, prod := range products {
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create product %s: %v", prod.Name, err)
		} else {
			log.Printf("✅ Created product: %s", prod.Name)
		}
	}

	return nil
}

// seedOpeningStock records one OPENING movement per seeded product
func (m *Migration) seedOpeningStock() error {
	log.Println("📦 Seeding opening stock...")

	var products []catalog.Product
	if err := m.db.Find(&products).Error; err != nil {
		return err
	}

	for _, prod := range products {
		var count int64
		m.db.Model(&movement.InventoryMovement{}).
			Where("product_id = ? AND movement_type = ?", prod.ID, movement.TypeOpening).
			Count(&count)
		if count > 0 {
			continue
		}

		// Opening stock carries a cost like a receipt would; without a prior
		// invoice the selling price is the best stand-in.
		unitCost := prod.Price
		mv := movement.InventoryMovement{
			ProductID:    prod.ID,
			MovementType: movement.TypeOpening,
			Quantity:     50,
			UnitCost:     &unitCost,
			MovementDate: time.Now(),
		}
		if err := m.db.Create(&mv).Error; err != nil {
			log.Printf("⚠️ Failed to create opening movement for product %d: %v", prod.ID, err)
		} else {
			log.Printf("✅ Opening stock recorded for product: %s", prod.Name)
		}
	}

	return nil
}

// GetTableInfo logs row counts per table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"inventory_movements",
		"sale_items",
		"sales",
		"stock_in_items",
		"stock_ins",
		"products",
		"categories",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}
