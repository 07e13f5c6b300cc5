// internal/domain/report/service_test.go
package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/report"
	"github.com/your-org/inventory-backend/internal/domain/sale"
	"github.com/your-org/inventory-backend/internal/domain/shared"
	"github.com/your-org/inventory-backend/internal/domain/stockin"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func createProduct(t *testing.T, db *gorm.DB, name string, reorderLevel int) *catalog.Product {
	t.Helper()
	svc := catalog.NewProductService(db, testutil.NewTestConfig())
	product, err := svc.CreateProduct(&catalog.ProductCreateRequest{
		Name:         name,
		Price:        decimal.NewFromInt(10),
		ReorderLevel: &reorderLevel,
	})
	require.NoError(t, err)
	return product
}

func receiveStock(t *testing.T, db *gorm.DB, productID uint, qty int, unitCost int64, at time.Time) {
	t.Helper()
	svc := stockin.NewService(db, testutil.NewTestConfig())
	_, err := svc.Create(&stockin.CreateRequest{
		StockInDate: &at,
		Items: []stockin.ItemRequest{
			{ProductID: productID, Quantity: qty, UnitCost: decimal.NewFromInt(unitCost)},
		},
	})
	require.NoError(t, err)
}

func sellStock(t *testing.T, db *gorm.DB, productID uint, qty int, unitPrice int64, at time.Time) {
	t.Helper()
	svc := sale.NewService(db, testutil.NewTestConfig())
	_, err := svc.Create(&sale.CreateRequest{
		SaleDatetime:  &at,
		PaymentMethod: sale.PaymentMethodCash,
		Items: []sale.ItemRequest{
			{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(unitPrice)},
		},
	})
	require.NoError(t, err)
}

// The full widget lifecycle: receive 20 at cost 4, sell 18 at price 10,
// leaving 2 on hand below the reorder level of 10.
func TestWidgetLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	widget := createProduct(t, db, "Widget", 10)

	day1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 5, 2, 15, 30, 0, 0, time.UTC)

	receiveStock(t, db, widget.ID, 20, 4, day1)

	stock, err := svc.ProductStock(&report.ProductStockRequest{})
	require.NoError(t, err)
	require.Len(t, stock.Rows, 1)
	assert.Equal(t, 20, stock.Rows[0].StockOnHand)
	assert.False(t, stock.Rows[0].NeedsRestock)

	sellStock(t, db, widget.ID, 18, 10, day2)

	stock, err = svc.ProductStock(&report.ProductStockRequest{})
	require.NoError(t, err)
	require.Len(t, stock.Rows, 1)
	assert.Equal(t, 2, stock.Rows[0].StockOnHand)
	assert.True(t, stock.Rows[0].NeedsRestock)

	profit, err := svc.Profitability(&report.ProfitabilityRequest{})
	require.NoError(t, err)
	require.Len(t, profit.Rows, 1)
	row := profit.Rows[0]
	assert.True(t, row.Revenue.Equal(decimal.NewFromInt(180)), "revenue 18x10, got %s", row.Revenue)
	assert.True(t, row.UnitCost.Equal(decimal.NewFromInt(4)))
	assert.True(t, row.Cost.Equal(decimal.NewFromInt(72)), "cost 18x4, got %s", row.Cost)
	assert.True(t, row.Profit.Equal(decimal.NewFromInt(108)), "profit 180-72, got %s", row.Profit)
}

func TestProductStockZeroForUnmovedProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	createProduct(t, db, "Dormant", 5)

	stock, err := svc.ProductStock(&report.ProductStockRequest{})
	require.NoError(t, err)
	require.Len(t, stock.Rows, 1)
	assert.Equal(t, 0, stock.Rows[0].StockOnHand)
	assert.True(t, stock.Rows[0].NeedsRestock)
}

func TestProductStockSearchAndSort(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	createProduct(t, db, "Zebra Notebook", 5)
	createProduct(t, db, "Apple Juice", 5)
	createProduct(t, db, "Apple Crisps", 5)

	stock, err := svc.ProductStock(&report.ProductStockRequest{Search: "apple"})
	require.NoError(t, err)
	require.Len(t, stock.Rows, 2)
	assert.Equal(t, "Apple Crisps", stock.Rows[0].Name, "sorted by name")
	assert.Equal(t, "Apple Juice", stock.Rows[1].Name)
}

func TestProductStockRestockFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	healthy := createProduct(t, db, "Healthy", 5)
	createProduct(t, db, "Starving", 5)

	receiveStock(t, db, healthy.ID, 50, 1, time.Now())

	restock, err := svc.ProductStock(&report.ProductStockRequest{Restock: "r"})
	require.NoError(t, err)
	require.Len(t, restock.Rows, 1)
	assert.Equal(t, "Starving", restock.Rows[0].Name)

	covered, err := svc.ProductStock(&report.ProductStockRequest{Restock: "nr"})
	require.NoError(t, err)
	require.Len(t, covered.Rows, 1)
	assert.Equal(t, "Healthy", covered.Rows[0].Name)

	_, err = svc.ProductStock(&report.ProductStockRequest{Restock: "bogus"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestProductStockPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	for _, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		createProduct(t, db, name, 5)
	}

	page1, err := svc.ProductStock(&report.ProductStockRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Rows, 2)
	assert.Equal(t, "Alpha", page1.Rows[0].Name)
	assert.Equal(t, int64(5), page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.True(t, page1.Pagination.HasNext)
	assert.False(t, page1.Pagination.HasPrev)

	page3, err := svc.ProductStock(&report.ProductStockRequest{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3.Rows, 1)
	assert.Equal(t, "Echo", page3.Rows[0].Name)
	assert.False(t, page3.Pagination.HasNext)
	assert.True(t, page3.Pagination.HasPrev)
}

func TestProductStockEmptyMatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	createProduct(t, db, "Widget", 5)

	_, err := svc.ProductStock(&report.ProductStockRequest{Search: "nonexistent"})
	require.ErrorIs(t, err, shared.ErrEmptyResult)
}

func TestProfitabilityCostMatchesLatestReceiptBeforeSale(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	widget := createProduct(t, db, "Widget", 5)

	// Cost changes over time; the sale in between uses the older cost
	receiveStock(t, db, widget.ID, 10, 4, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	sellStock(t, db, widget.ID, 2, 10, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	receiveStock(t, db, widget.ID, 10, 6, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))
	sellStock(t, db, widget.ID, 2, 10, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC))

	profit, err := svc.Profitability(&report.ProfitabilityRequest{})
	require.NoError(t, err)
	require.Len(t, profit.Rows, 2)

	// Newest first: the late sale cost 6, the early one cost 4
	assert.True(t, profit.Rows[0].UnitCost.Equal(decimal.NewFromInt(6)), "got %s", profit.Rows[0].UnitCost)
	assert.True(t, profit.Rows[1].UnitCost.Equal(decimal.NewFromInt(4)), "got %s", profit.Rows[1].UnitCost)
}

func TestProfitabilityCostFallback(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	widget := createProduct(t, db, "Widget", 5)

	// Sale predates the only receipt; the latest known cost still applies
	sellStock(t, db, widget.ID, 2, 10, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	receiveStock(t, db, widget.ID, 10, 7, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))

	profit, err := svc.Profitability(&report.ProfitabilityRequest{})
	require.NoError(t, err)
	require.Len(t, profit.Rows, 1)
	assert.True(t, profit.Rows[0].UnitCost.Equal(decimal.NewFromInt(7)), "got %s", profit.Rows[0].UnitCost)
}

func TestProfitabilityZeroCostWhenNeverStockedIn(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	widget := createProduct(t, db, "Widget", 5)

	sellStock(t, db, widget.ID, 3, 10, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	profit, err := svc.Profitability(&report.ProfitabilityRequest{})
	require.NoError(t, err)
	require.Len(t, profit.Rows, 1)
	assert.True(t, profit.Rows[0].UnitCost.IsZero())
	assert.True(t, profit.Rows[0].Profit.Equal(decimal.NewFromInt(30)))
}

func TestProfitabilityDateRangeEndOfDayInclusive(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	widget := createProduct(t, db, "Widget", 5)

	// Late-evening sale on the end date must be included
	sellStock(t, db, widget.ID, 1, 10, time.Date(2025, 5, 15, 23, 30, 0, 0, time.UTC))
	sellStock(t, db, widget.ID, 1, 10, time.Date(2025, 5, 16, 1, 0, 0, 0, time.UTC))

	profit, err := svc.Profitability(&report.ProfitabilityRequest{
		StartDate: "2025-05-01",
		EndDate:   "2025-05-15",
	})
	require.NoError(t, err)
	assert.Len(t, profit.Rows, 1)

	_, err = svc.Profitability(&report.ProfitabilityRequest{StartDate: "15-05-2025"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestProfitabilityFilterByProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	first := createProduct(t, db, "First", 5)
	second := createProduct(t, db, "Second", 5)

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	sellStock(t, db, first.ID, 1, 10, at)
	sellStock(t, db, second.ID, 1, 20, at.Add(time.Hour))

	profit, err := svc.Profitability(&report.ProfitabilityRequest{ProductID: &second.ID})
	require.NoError(t, err)
	require.Len(t, profit.Rows, 1)
	assert.Equal(t, second.ID, profit.Rows[0].ProductID)
}

func TestProfitabilityEmptyMatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := report.NewService(db, testutil.NewTestConfig())
	createProduct(t, db, "Widget", 5)

	_, err := svc.Profitability(&report.ProfitabilityRequest{})
	require.ErrorIs(t, err, shared.ErrEmptyResult)
}
