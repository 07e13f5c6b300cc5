// internal/domain/movement/entity.go
package movement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the origin of an inventory movement
type Type string

const (
	TypeOpening Type = "OPENING"  // Opening balance, both item FKs nil
	TypeStockIn Type = "STOCK_IN" // Inbound stock, stock_in_item_id set
	TypeSale    Type = "SALE"     // Outbound sale, sale_item_id set
)

// IsValid reports whether t is a known movement type
func (t Type) IsValid() bool {
	switch t {
	case TypeOpening, TypeStockIn, TypeSale:
		return true
	}
	return false
}

// InventoryMovement is a single signed quantity change against a product's
// stock. Rows are append-only: the only permitted mutation is an
// administrative correction of the movement type. Deletion happens only as a
// side effect of deleting the owning stock-in or sale item, inside the same
// transaction as that deletion.
type InventoryMovement struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	ProductID     uint             `gorm:"not null;index" json:"product_id"`
	MovementType  Type             `gorm:"not null;size:20;index" json:"movement_type"`
	Quantity      int              `gorm:"not null" json:"quantity"` // Signed: positive inbound, negative outbound
	UnitCost      *decimal.Decimal `gorm:"type:decimal(20,4)" json:"unit_cost"`
	SaleItemID    *uint            `gorm:"index" json:"sale_item_id"`
	StockInItemID *uint            `gorm:"index" json:"stock_in_item_id"`
	MovementDate  time.Time        `gorm:"not null;index" json:"movement_date"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName overrides
func (InventoryMovement) TableName() string { return "inventory_movements" }
