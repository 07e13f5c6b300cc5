// internal/domain/sale/entity.go
package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodQR   PaymentMethod = "QR"
)

// IsValid reports whether the payment method is one of the accepted values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQR:
		return true
	}
	return false
}

// Sale represents an outbound sale owning one or more line items.
// TotalAmount is derived from the items and recomputed inside the same
// transaction as any item mutation.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SaleDatetime  time.Time       `gorm:"not null;index" json:"sale_datetime"`
	PaymentMethod PaymentMethod   `gorm:"not null;size:10" json:"payment_method"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// SaleItem represents one product line on a sale
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"not null;index:idx_sale_items_batch_product,unique" json:"sale_id"`
	ProductID uint            `gorm:"not null;index:idx_sale_items_batch_product,unique" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Discount  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"discount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides
func (Sale) TableName() string     { return "sales" }
func (SaleItem) TableName() string { return "sale_items" }

// LineAmount returns quantity x unit price minus discount for this item
func (i *SaleItem) LineAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}
