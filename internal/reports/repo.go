package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trackside-rentals/reporting-backend/pkg/db/models"
	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// GroupDim selects the grouping dimension for the top-N queries.
type GroupDim string

const (
	GroupByProduct  GroupDim = "product"
	GroupByCategory GroupDim = "category"
)

var settledStatuses = []enums.PaymentStatus{
	enums.PaymentStatusPaid,
	enums.PaymentStatusRefunded,
}

// Repository builds and runs the report queries. All fetches share the
// settled-order base (PAID or REFUNDED, payment date present); each
// report layers its own predicates and projection on top.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// baseItemQuery is the item-granularity starting point: line items joined
// to their settled parent order.
func (r *Repository) baseItemQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders AS o ON o.id = oi.order_id").
		Where("o.payment_status IN ?", settledStatuses).
		Where("o.payment_date IS NOT NULL")
}

// applyItemFilters narrows a joined item query by the id dimensions and
// the exclude/only toggles. ExcludeShipping is deliberately absent: it
// changes arithmetic, never row membership.
func applyItemFilters(q *gorm.DB, f Filters) *gorm.DB {
	if f.storeScoped() {
		q = q.Where("o.store_id = ?", f.Store)
	}
	if f.categoryScoped() {
		q = q.Where("oi.category_id = ?", f.Category)
	}
	if f.productScoped() {
		q = q.Where("oi.product_id = ?", f.Product)
	}
	if f.itemTypeScoped() {
		q = q.Where("oi.item_type = ?", f.ItemType)
	}
	switch {
	case f.WaiverOnly:
		q = q.Where("oi.item_type = ?", enums.ItemTypeDamageWaiver)
	case f.ExcludeWaiver:
		q = q.Where("oi.item_type <> ?", enums.ItemTypeDamageWaiver)
	}
	switch {
	case f.InsuranceOnly:
		q = q.Where("oi.item_type = ?", enums.ItemTypeTrackInsurance)
	case f.ExcludeInsurance:
		q = q.Where("oi.item_type <> ?", enums.ItemTypeTrackInsurance)
	}
	switch {
	case f.DeliveryOnly:
		q = q.Where("oi.item_type = ?", enums.ItemTypeDelivery)
	case f.ExcludeDelivery:
		q = q.Where("oi.item_type <> ?", enums.ItemTypeDelivery)
	}
	return q
}

// applyNestedItemFilters is the un-aliased variant used for preloaded
// order items. Orders whose items all fall out of scope still surface
// with an empty item set.
func applyNestedItemFilters(q *gorm.DB, f Filters) *gorm.DB {
	if f.categoryScoped() {
		q = q.Where("category_id = ?", f.Category)
	}
	if f.productScoped() {
		q = q.Where("product_id = ?", f.Product)
	}
	if f.itemTypeScoped() {
		q = q.Where("item_type = ?", f.ItemType)
	}
	switch {
	case f.WaiverOnly:
		q = q.Where("item_type = ?", enums.ItemTypeDamageWaiver)
	case f.ExcludeWaiver:
		q = q.Where("item_type <> ?", enums.ItemTypeDamageWaiver)
	}
	switch {
	case f.InsuranceOnly:
		q = q.Where("item_type = ?", enums.ItemTypeTrackInsurance)
	case f.ExcludeInsurance:
		q = q.Where("item_type <> ?", enums.ItemTypeTrackInsurance)
	}
	switch {
	case f.DeliveryOnly:
		q = q.Where("item_type = ?", enums.ItemTypeDelivery)
	case f.ExcludeDelivery:
		q = q.Where("item_type <> ?", enums.ItemTypeDelivery)
	}
	return q
}

func applyDateFilter(q *gorm.DB, f Filters, now time.Time, column string) *gorm.DB {
	if w, ok := resolveWindow(f, now); ok {
		q = q.Where(column+" >= ? AND "+column+" < ?", w.Start, w.End)
	}
	return q
}

// FetchSeriesRows returns the items settled inside an explicit window.
// The trend charts carry their own fixed windows, so the filter model's
// date range is ignored here.
func (r *Repository) FetchSeriesRows(ctx context.Context, f Filters, w Window) ([]SeriesRow, error) {
	var rows []SeriesRow
	q := r.baseItemQuery(ctx).
		Select("o.payment_date, o.payment_status, oi.subtotal, oi.shipping_cost, oi.processing_fees").
		Where("o.payment_date >= ? AND o.payment_date < ?", w.Start, w.End)
	q = applyItemFilters(q, f)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchGroupRows returns items for the top-N reports. Waiver and
// insurance lines are never ranked, and rows missing the grouping id are
// dropped at the query.
func (r *Repository) FetchGroupRows(ctx context.Context, f Filters, dim GroupDim, now time.Time) ([]GroupRow, error) {
	q := r.baseItemQuery(ctx).
		Where("oi.item_type NOT IN ?", []enums.ItemType{
			enums.ItemTypeDamageWaiver,
			enums.ItemTypeTrackInsurance,
		})

	switch dim {
	case GroupByCategory:
		q = q.
			Select("oi.category_id AS group_id, c.name AS group_name, oi.order_id, o.payment_status, oi.subtotal, oi.shipping_cost, oi.processing_fees").
			Joins("LEFT JOIN categories AS c ON c.id = oi.category_id").
			Where("oi.category_id IS NOT NULL")
	default:
		q = q.
			Select("oi.product_id AS group_id, p.name AS group_name, oi.order_id, o.payment_status, oi.subtotal, oi.shipping_cost, oi.processing_fees").
			Joins("LEFT JOIN products AS p ON p.id = oi.product_id").
			Where("oi.product_id IS NOT NULL")
	}

	q = applyItemFilters(q, f)
	q = applyDateFilter(q, f, now, "o.payment_date")

	var rows []GroupRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchItemDetailRows returns the wide item projection used by the
// summary, revenue-breakdown, and product-detail reports.
func (r *Repository) FetchItemDetailRows(ctx context.Context, f Filters, now time.Time) ([]ItemDetailRow, error) {
	q := r.baseItemQuery(ctx).
		Select("oi.order_id, oi.product_id, p.name AS product_name, oi.item_type, oi.quantity, oi.subtotal, oi.gross_sales, oi.discount_amount, oi.shipping_cost, oi.processing_fees, oi.sales_tax, o.payment_status").
		Joins("LEFT JOIN products AS p ON p.id = oi.product_id")
	q = applyItemFilters(q, f)
	q = applyDateFilter(q, f, now, "o.payment_date")

	var rows []ItemDetailRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchOrdersWithItems hydrates settled orders plus their in-scope items
// for the order-granularity reports (tax and payments, refunds).
func (r *Repository) FetchOrdersWithItems(ctx context.Context, f Filters, now time.Time, statuses ...enums.PaymentStatus) ([]models.Order, error) {
	if len(statuses) == 0 {
		statuses = settledStatuses
	}

	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status IN ?", statuses).
		Where("payment_date IS NOT NULL").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return applyNestedItemFilters(tx, f)
		})
	if f.storeScoped() {
		q = q.Where("store_id = ?", f.Store)
	}
	q = applyDateFilter(q, f, now, "payment_date")

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchDiscountedOrders returns paid orders carrying a discount.
func (r *Repository) FetchDiscountedOrders(ctx context.Context, f Filters, now time.Time) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("payment_date IS NOT NULL").
		Where("discount_amount > 0")
	if f.storeScoped() {
		q = q.Where("store_id = ?", f.Store)
	}
	q = applyDateFilter(q, f, now, "payment_date")

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
