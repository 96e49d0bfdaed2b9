package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// OrderItem captures one revenue line within an order. Subtotal is the
// post-discount pre-tax amount; GrossSales is the pre-discount amount and
// falls back to Subtotal when absent.
type OrderItem struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	ProductID      *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	CategoryID     *uuid.UUID          `gorm:"column:category_id;type:uuid"`
	ItemType       enums.ItemType      `gorm:"column:item_type;not null"`
	Quantity       int                 `gorm:"column:quantity;not null;default:1"`
	Subtotal       decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	GrossSales     decimal.NullDecimal `gorm:"column:gross_sales;type:numeric(12,2)"`
	DiscountAmount decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	ShippingCost   decimal.Decimal     `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	ProcessingFees decimal.Decimal     `gorm:"column:processing_fees;type:numeric(12,2);not null;default:0"`
	SalesTax       decimal.Decimal     `gorm:"column:sales_tax;type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
