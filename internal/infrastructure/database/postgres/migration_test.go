// internal/infrastructure/database/postgres/migration_test.go
package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/movement"
	"github.com/your-org/inventory-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func TestSeedInitialData(t *testing.T) {
	db := testutil.NewTestDB(t)
	m := postgres.NewMigration(db)

	require.NoError(t, m.SeedInitialData())

	var products []catalog.Product
	require.NoError(t, db.Find(&products).Error)
	require.NotEmpty(t, products)

	// Every seeded product gets one OPENING movement with a unit cost
	for _, prod := range products {
		var mv movement.InventoryMovement
		require.NoError(t, db.Where("product_id = ? AND movement_type = ?", prod.ID, movement.TypeOpening).First(&mv).Error)
		assert.Equal(t, 50, mv.Quantity)
		require.NotNil(t, mv.UnitCost, "opening movement for %s carries a unit cost", prod.Name)
		assert.True(t, mv.UnitCost.Equal(prod.Price))
	}
}

func TestSeedInitialDataIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	m := postgres.NewMigration(db)

	require.NoError(t, m.SeedInitialData())
	require.NoError(t, m.SeedInitialData())

	var openings int64
	require.NoError(t, db.Model(&movement.InventoryMovement{}).
		Where("movement_type = ?", movement.TypeOpening).
		Count(&openings).Error)

	var productCount int64
	require.NoError(t, db.Model(&catalog.Product{}).Count(&productCount).Error)
	assert.Equal(t, productCount, openings)
}
