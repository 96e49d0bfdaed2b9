package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// Order is the settled-order record consumed by reporting. Orders are
// created and mutated by the order-management system; this service only
// reads them.
type Order struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID        uuid.UUID           `gorm:"column:store_id;type:uuid;not null"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;not null"`
	PaymentDate    *time.Time          `gorm:"column:payment_date"`
	PaymentMethod  *string             `gorm:"column:payment_method"`
	DiscountAmount decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	GrossAmount    decimal.Decimal     `gorm:"column:gross_amount;type:numeric(12,2);not null;default:0"`
	RefundType     *enums.RefundType   `gorm:"column:refund_type"`
	RefundReason   *string             `gorm:"column:refund_reason"`
	Items          []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
