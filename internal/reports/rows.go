package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// The item-granularity reports each scan into a narrow row shape rather
// than hydrating full order aggregates. Column aliases in the repository
// queries line up with the snake_case of these field names.

// SeriesRow carries the minimum needed to bucket revenue by payment day.
type SeriesRow struct {
	PaymentDate    time.Time           `gorm:"column:payment_date"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status"`
	Subtotal       decimal.Decimal     `gorm:"column:subtotal"`
	ShippingCost   decimal.Decimal     `gorm:"column:shipping_cost"`
	ProcessingFees decimal.Decimal     `gorm:"column:processing_fees"`
}

// GroupRow feeds the top-N reports. GroupID is the product or category
// id depending on the requested dimension; GroupName is the joined
// display name and may be absent when the relation is missing.
type GroupRow struct {
	GroupID        uuid.UUID           `gorm:"column:group_id"`
	GroupName      *string             `gorm:"column:group_name"`
	OrderID        uuid.UUID           `gorm:"column:order_id"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status"`
	Subtotal       decimal.Decimal     `gorm:"column:subtotal"`
	ShippingCost   decimal.Decimal     `gorm:"column:shipping_cost"`
	ProcessingFees decimal.Decimal     `gorm:"column:processing_fees"`
}

// ItemDetailRow is the widest item projection, shared by the summary,
// revenue-breakdown, and per-product detail reports.
type ItemDetailRow struct {
	OrderID        uuid.UUID           `gorm:"column:order_id"`
	ProductID      *uuid.UUID          `gorm:"column:product_id"`
	ProductName    *string             `gorm:"column:product_name"`
	ItemType       enums.ItemType      `gorm:"column:item_type"`
	Quantity       int                 `gorm:"column:quantity"`
	Subtotal       decimal.Decimal     `gorm:"column:subtotal"`
	GrossSales     decimal.NullDecimal `gorm:"column:gross_sales"`
	DiscountAmount decimal.Decimal     `gorm:"column:discount_amount"`
	ShippingCost   decimal.Decimal     `gorm:"column:shipping_cost"`
	ProcessingFees decimal.Decimal     `gorm:"column:processing_fees"`
	SalesTax       decimal.Decimal     `gorm:"column:sales_tax"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status"`
}

// grossOrSubtotal is the gross-sales fallback used by summary and
// product-detail accumulation.
func (r ItemDetailRow) grossOrSubtotal() decimal.Decimal {
	if r.GrossSales.Valid {
		return r.GrossSales.Decimal
	}
	return r.Subtotal
}
