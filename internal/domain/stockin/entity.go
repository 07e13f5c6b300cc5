// internal/domain/stockin/entity.go
package stockin

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockIn represents an inbound stock receipt owning one or more line items.
// TotalCost is derived from the items and recomputed inside the same
// transaction as any item mutation.
type StockIn struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	RefNo       *string         `gorm:"size:100" json:"ref_no"`
	StockInDate time.Time       `gorm:"not null;index" json:"stock_in_date"`
	Notes       *string         `gorm:"type:text" json:"notes"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Items []StockInItem `gorm:"foreignKey:StockInID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// StockInItem represents one product line on a stock-in receipt
type StockInItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	StockInID uint            `gorm:"not null;index:idx_stock_in_items_batch_product,unique" json:"stock_in_id"`
	ProductID uint            `gorm:"not null;index:idx_stock_in_items_batch_product,unique" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides
func (StockIn) TableName() string     { return "stock_ins" }
func (StockInItem) TableName() string { return "stock_in_items" }

// LineCost returns quantity x unit cost for this item
func (i *StockInItem) LineCost() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
