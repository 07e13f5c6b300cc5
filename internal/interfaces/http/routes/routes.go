// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/interfaces/http/handlers"
)

// SetupRoutes wires all resource routes onto the API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupCatalogRoutes(rg, db, cfg)
	SetupStockInRoutes(rg, db, cfg)
	SetupSaleRoutes(rg, db, cfg)
	SetupMovementRoutes(rg, db, cfg)
	SetupReportRoutes(rg, db, cfg)
}

// SetupCatalogRoutes sets up category and product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.PUT("/:id", categoryHandler.UpdateCategory)
		categories.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.POST("", productHandler.CreateProduct)
		products.GET("/:id", productHandler.GetProduct)
		products.PATCH("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupStockInRoutes sets up stock-in receipt routes
func SetupStockInRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	stockInHandler := handlers.NewStockInHandler(db, cfg)

	stockIn := rg.Group("/stock-in")
	{
		stockIn.GET("", stockInHandler.GetStockIns)
		stockIn.POST("", stockInHandler.CreateStockIn)
		stockIn.GET("/:id", stockInHandler.GetStockIn)
		stockIn.PATCH("/:id", stockInHandler.UpdateStockIn)
		stockIn.DELETE("/:id", stockInHandler.DeleteStockIn)

		stockIn.GET("/:id/items", stockInHandler.GetStockInItems)
		stockIn.POST("/:id/items", stockInHandler.AddStockInItem)
		stockIn.PATCH("/:id/items/:itemId", stockInHandler.UpdateStockInItem)
		stockIn.DELETE("/:id/items/:itemId", stockInHandler.DeleteStockInItem)
	}
}

// SetupSaleRoutes sets up sale routes
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, cfg)

	sales := rg.Group("/sales")
	{
		sales.GET("", saleHandler.GetSales)
		sales.POST("", saleHandler.CreateSale)
		sales.GET("/:id", saleHandler.GetSale)
		sales.PATCH("/:id", saleHandler.UpdateSale)
		sales.DELETE("/:id", saleHandler.DeleteSale)

		sales.GET("/:id/items", saleHandler.GetSaleItems)
		sales.POST("/:id/items", saleHandler.AddSaleItem)
		sales.PATCH("/:id/items/:itemId", saleHandler.UpdateSaleItem)
		sales.DELETE("/:id/items/:itemId", saleHandler.DeleteSaleItem)
	}
}

// SetupMovementRoutes sets up inventory movement routes
func SetupMovementRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	movementHandler := handlers.NewMovementHandler(db, cfg)

	movements := rg.Group("/inventory-movements")
	{
		movements.GET("", movementHandler.GetMovements)
		movements.GET("/:id", movementHandler.GetMovement)
		movements.PATCH("/:id", movementHandler.UpdateMovement)
	}
}

// SetupReportRoutes sets up report routes
func SetupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	reportHandler := handlers.NewReportHandler(db, cfg)

	reports := rg.Group("/reports")
	{
		reports.GET("/product-stock", reportHandler.GetProductStock)
		reports.GET("/profitability", reportHandler.GetProfitability)
	}
}
