// internal/domain/stockin/service_test.go
package stockin_test

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
	"github.com/your-org/inventory-backend/internal/domain/stockin"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func createProduct(t *testing.T, db *gorm.DB, name string) *catalog.Product {
	t.Helper()
	svc := catalog.NewProductService(db, testutil.NewTestConfig())
	product, err := svc.CreateProduct(&catalog.ProductCreateRequest{
		Name:  name,
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return product
}

func stockOnHand(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var total int
	err := db.Model(&movement.InventoryMovement{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	require.NoError(t, err)
	return total
}

func TestCreateStockIn(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: product.ID, Quantity: 20, UnitCost: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	assert.True(t, receipt.TotalCost.Equal(decimal.NewFromInt(80)), "total 20 x 4 = 80, got %s", receipt.TotalCost)

	// One STOCK_IN movement with positive quantity
	var movements []movement.InventoryMovement
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, movement.TypeStockIn, movements[0].MovementType)
	assert.Equal(t, 20, movements[0].Quantity)
	require.NotNil(t, movements[0].StockInItemID)
	assert.Equal(t, receipt.Items[0].ID, *movements[0].StockInItemID)

	assert.Equal(t, 20, stockOnHand(t, db, product.ID))
}

func TestCreateStockInMultipleItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	first := createProduct(t, db, "First")
	second := createProduct(t, db, "Second")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: first.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)},
			{ProductID: second.ID, Quantity: 3, UnitCost: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)
	assert.True(t, receipt.TotalCost.Equal(decimal.NewFromInt(31)), "5x2 + 3x7 = 31, got %s", receipt.TotalCost)
}

func TestCreateStockInUnknownProductRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	_, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)},
			{ProductID: 9999, Quantity: 1, UnitCost: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, shared.ErrInvalidReference)

	// Nothing persisted
	var count int64
	db.Model(&stockin.StockIn{}).Count(&count)
	assert.Zero(t, count)
	assert.Equal(t, 0, stockOnHand(t, db, product.ID))
}

func TestCreateStockInDuplicateProductInPayload(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	_, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)},
			{ProductID: product.ID, Quantity: 3, UnitCost: decimal.NewFromInt(2)},
		},
	})
	require.ErrorIs(t, err, shared.ErrDuplicateLineItem)
}

func TestCreateStockInNonPositiveUnitCost(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	_, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: product.ID, Quantity: 5, UnitCost: decimal.Zero},
		},
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestListStockInsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())

	_, err := svc.List()
	require.ErrorIs(t, err, shared.ErrEmptyResult)
}

func TestListStockInsNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(&stockin.CreateRequest{
		StockInDate: &older,
		Items:       []stockin.ItemRequest{{ProductID: product.ID, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	_, err = svc.Create(&stockin.CreateRequest{
		StockInDate: &newer,
		Items:       []stockin.ItemRequest{{ProductID: product.ID, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	receipts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.True(t, receipts[0].StockInDate.After(receipts[1].StockInDate))
}

func TestUpdateStockInHeader(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{{ProductID: product.ID, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	ref := "PO-2025-001"
	updated, err := svc.UpdateHeader(receipt.ID, &stockin.UpdateHeaderRequest{RefNo: &ref})
	require.NoError(t, err)
	require.NotNil(t, updated.RefNo)
	assert.Equal(t, ref, *updated.RefNo)
	assert.True(t, updated.TotalCost.Equal(receipt.TotalCost), "header update must not touch the total")
}

func TestDeleteStockInRemovesItemsAndMovements(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{{ProductID: product.ID, Quantity: 20, UnitCost: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	require.Equal(t, 20, stockOnHand(t, db, product.ID))

	require.NoError(t, svc.Delete(receipt.ID))

	var itemCount, movementCount int64
	db.Model(&stockin.StockInItem{}).Count(&itemCount)
	db.Model(&movement.InventoryMovement{}).Count(&movementCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, movementCount)
	assert.Equal(t, 0, stockOnHand(t, db, product.ID))
}

func TestAddItemRecomputesTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	first := createProduct(t, db, "First")
	second := createProduct(t, db, "Second")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{{ProductID: first.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	_, err = svc.AddItem(receipt.ID, &stockin.ItemRequest{
		ProductID: second.ID,
		Quantity:  3,
		UnitCost:  decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	refreshed, err := svc.Get(receipt.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.TotalCost.Equal(decimal.NewFromInt(31)), "got %s", refreshed.TotalCost)
	assert.Equal(t, 3, stockOnHand(t, db, second.ID))
}

func TestAddItemDuplicateProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{{ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	_, err = svc.AddItem(receipt.ID, &stockin.ItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		UnitCost:  decimal.NewFromInt(2),
	})
	require.ErrorIs(t, err, shared.ErrDuplicateLineItem)
}

func TestUpdateItemAdjustsMovementAndTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	product := createProduct(t, db, "Widget")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{{ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	itemID := receipt.Items[0].ID

	newQty := 8
	newCost := decimal.NewFromInt(3)
	_, err = svc.UpdateItem(receipt.ID, itemID, &stockin.ItemUpdateRequest{
		Quantity: &newQty,
		UnitCost: &newCost,
	})
	require.NoError(t, err)

	refreshed, err := svc.Get(receipt.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.TotalCost.Equal(decimal.NewFromInt(24)), "8 x 3 = 24, got %s", refreshed.TotalCost)

	var mv movement.InventoryMovement
	require.NoError(t, db.Where("stock_in_item_id = ?", itemID).First(&mv).Error)
	assert.Equal(t, 8, mv.Quantity)
	require.NotNil(t, mv.UnitCost)
	assert.True(t, mv.UnitCost.Equal(newCost))
}

func TestDeleteItemAdjustsMovementAndTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())
	first := createProduct(t, db, "First")
	second := createProduct(t, db, "Second")

	receipt, err := svc.Create(&stockin.CreateRequest{
		Items: []stockin.ItemRequest{
			{ProductID: first.ID, Quantity: 5, UnitCost: decimal.NewFromInt(2)},
			{ProductID: second.ID, Quantity: 3, UnitCost: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)

	var target stockin.StockInItem
	require.NoError(t, db.Where("stock_in_id = ? AND product_id = ?", receipt.ID, second.ID).First(&target).Error)

	require.NoError(t, svc.DeleteItem(receipt.ID, target.ID))

	refreshed, err := svc.Get(receipt.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.TotalCost.Equal(decimal.NewFromInt(10)), "got %s", refreshed.TotalCost)
	assert.Equal(t, 0, stockOnHand(t, db, second.ID))
}

func TestGetStockInNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := stockin.NewService(db, testutil.NewTestConfig())

	_, err := svc.Get(9999)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
