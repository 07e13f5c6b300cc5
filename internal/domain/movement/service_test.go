// internal/domain/movement/service_test.go
package movement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/movement"
	"github.com/your-org/inventory-backend/internal/domain/shared"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func seedMovements(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	products := catalog.NewProductService(db, testutil.NewTestConfig())

	first, err := products.CreateProduct(&catalog.ProductCreateRequest{
		Name:  "First",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	second, err := products.CreateProduct(&catalog.ProductCreateRequest{
		Name:  "Second",
		Price: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []movement.InventoryMovement{
		{ProductID: first.ID, MovementType: movement.TypeOpening, Quantity: 10, MovementDate: base},
		{ProductID: first.ID, MovementType: movement.TypeStockIn, Quantity: 5, MovementDate: base.AddDate(0, 0, 1)},
		{ProductID: second.ID, MovementType: movement.TypeSale, Quantity: -3, MovementDate: base.AddDate(0, 0, 2)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return first.ID, second.ID
}

func TestListMovementsNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{})
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, movement.TypeSale, movements[0].MovementType)
	assert.Equal(t, movement.TypeOpening, movements[2].MovementType)
}

func TestListMovementsFilterByProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	firstID, _ := seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{ProductID: &firstID})
	require.NoError(t, err)
	require.Len(t, movements, 2)
	for _, mv := range movements {
		assert.Equal(t, firstID, mv.ProductID)
	}
}

func TestListMovementsFilterByType(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{MovementType: "SALE"})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, -3, movements[0].Quantity)
}

func TestListMovementsFilterByTypeLowercase(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{MovementType: "sale"})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, movement.TypeSale, movements[0].MovementType)
}

func TestListMovementsInvalidType(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	_, err := svc.List(&movement.ListFilter{MovementType: "TRANSFER"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestListMovementsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())

	_, err := svc.List(&movement.ListFilter{})
	require.ErrorIs(t, err, shared.ErrEmptyResult)
}

func TestGetMovementNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())

	_, err := svc.Get(9999)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateMovementType(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{MovementType: "OPENING"})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	target := movements[0]

	updated, err := svc.UpdateType(target.ID, &movement.UpdateRequest{MovementType: movement.TypeStockIn})
	require.NoError(t, err)
	assert.Equal(t, movement.TypeStockIn, updated.MovementType)
	assert.Equal(t, target.Quantity, updated.Quantity, "quantity stays immutable")
}

func TestUpdateMovementTypeInvalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := movement.NewService(db, testutil.NewTestConfig())
	seedMovements(t, db)

	movements, err := svc.List(&movement.ListFilter{})
	require.NoError(t, err)

	_, err = svc.UpdateType(movements[0].ID, &movement.UpdateRequest{MovementType: movement.Type("ADJUSTMENT")})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestMovementTypeIsValid(t *testing.T) {
	assert.True(t, movement.TypeOpening.IsValid())
	assert.True(t, movement.TypeStockIn.IsValid())
	assert.True(t, movement.TypeSale.IsValid())
	assert.False(t, movement.Type("TRANSFER").IsValid())
	assert.False(t, movement.Type("").IsValid())
}
