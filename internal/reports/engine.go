package reports

import (
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackside-rentals/reporting-backend/pkg/db/models"
	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// The reductions in this file are pure: rows in, report out, no I/O.
// Running the same reduction twice over the same rows yields identical
// results.

const (
	unknownProductName  = "Unknown Product"
	unknownCategoryName = "Unknown Category"
	unspecifiedReason   = "Not specified"
)

// SeriesPeriod tags a data point as belonging to the comparison window
// or the one before it.
type SeriesPeriod string

const (
	PeriodCurrent  SeriesPeriod = "current"
	PeriodPrevious SeriesPeriod = "previous"
)

// SalesDataPoint is one day of a trend series.
type SalesDataPoint struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Period SeriesPeriod    `json:"period"`
}

// TopGroup is one ranked entry of the top-products / top-categories
// reports.
type TopGroup struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}

// SalesSummary is the headline financial rollup.
type SalesSummary struct {
	TotalGrossSales     decimal.Decimal `json:"total_gross_sales"`
	TotalDiscounts      decimal.Decimal `json:"total_discounts"`
	TotalRefunds        decimal.Decimal `json:"total_refunds"`
	TotalNetSales       decimal.Decimal `json:"total_net_sales"`
	TransactionCount    int             `json:"transaction_count"`
	ItemsSold           int             `json:"items_sold"`
	AverageSaleValue    decimal.Decimal `json:"average_sale_value"`
	AverageItemsPerSale decimal.Decimal `json:"average_items_per_sale"`
}

// RevenueBreakdown partitions signed revenue across the fixed item-type
// buckets. Every row lands in exactly one bucket.
type RevenueBreakdown struct {
	RetailSales            decimal.Decimal `json:"retail_sales"`
	RentalRevenue          decimal.Decimal `json:"rental_revenue"`
	DeliveryRevenue        decimal.Decimal `json:"delivery_revenue"`
	DamageWaiverRevenue    decimal.Decimal `json:"damage_waiver_revenue"`
	TrackInsuranceRevenue  decimal.Decimal `json:"track_insurance_revenue"`
	PrepaidFuelRevenue     decimal.Decimal `json:"prepaid_fuel_revenue"`
	PrepaidCleaningRevenue decimal.Decimal `json:"prepaid_cleaning_revenue"`
	FeesOtherRevenue       decimal.Decimal `json:"fees_other_revenue"`
}

// TaxAndPayments is the order-granularity tax and payment-method rollup.
type TaxAndPayments struct {
	SalesTaxCollected decimal.Decimal `json:"sales_tax_collected"`
	CashPayments      decimal.Decimal `json:"cash_payments"`
	CardPayments      decimal.Decimal `json:"card_payments"`
	ACHPayments       decimal.Decimal `json:"ach_payments"`
	CheckPayments     decimal.Decimal `json:"check_payments"`
	AccountPayments   decimal.Decimal `json:"account_payments"`
	OtherPayments     decimal.Decimal `json:"other_payments"`
}

// DiscountsReport summarizes paid orders carrying a discount.
type DiscountsReport struct {
	TotalDiscounts                decimal.Decimal `json:"total_discounts"`
	DiscountPercentage            decimal.Decimal `json:"discount_percentage"`
	TransactionsWithDiscounts     int             `json:"transactions_with_discounts"`
	AverageDiscountPerTransaction decimal.Decimal `json:"average_discount_per_transaction"`
}

// RefundReasonGroup is one refund-reason bucket.
type RefundReasonGroup struct {
	Reason string          `json:"reason"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// RefundsReport summarizes refunded orders.
type RefundsReport struct {
	TotalRefundAmount      decimal.Decimal     `json:"total_refund_amount"`
	RefundTransactionCount int                 `json:"refund_transaction_count"`
	FullRefunds            int                 `json:"full_refunds"`
	PartialRefunds         int                 `json:"partial_refunds"`
	RefundsByReason        []RefundReasonGroup `json:"refunds_by_reason"`
}

// ProductSalesDetail is one product's row of the per-product report.
type ProductSalesDetail struct {
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name"`
	SKU                 string          `json:"sku"`
	QuantitySold        int             `json:"quantity_sold"`
	GrossSales          decimal.Decimal `json:"gross_sales"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	NetSales            decimal.Decimal `json:"net_sales"`
	SalesTax            decimal.Decimal `json:"sales_tax"`
	AverageSellingPrice decimal.Decimal `json:"average_selling_price"`
	RefundAmount        decimal.Decimal `json:"refund_amount"`
	RefundQuantity      int             `json:"refund_quantity"`
	NetQuantitySold     int             `json:"net_quantity_sold"`
}

// itemAmount is the single source-of-truth revenue formula:
// subtotal plus shipping (unless excluded) plus processing fees.
// Sales tax never participates.
func itemAmount(subtotal, shipping, fees decimal.Decimal, excludeShipping bool) decimal.Decimal {
	total := subtotal.Add(fees)
	if !excludeShipping {
		total = total.Add(shipping)
	}
	return total
}

// signed negates the amount for REFUNDED parents.
func signed(amount decimal.Decimal, status enums.PaymentStatus) decimal.Decimal {
	if status == enums.PaymentStatusRefunded {
		return amount.Neg()
	}
	return amount
}

// rollingWindow is the fetch window for a 2*span-day trend: the span
// days ending yesterday plus the span before them.
func rollingWindow(now time.Time, span int) Window {
	today := startOfDay(now)
	return Window{Start: today.AddDate(0, 0, -2*span), End: today}
}

// monthComparisonWindow covers the two full calendar months preceding
// the current one.
func monthComparisonWindow(now time.Time) Window {
	month := startOfMonth(now)
	return Window{Start: month.AddDate(0, -2, 0), End: month}
}

func bucketByDay(rows []SeriesRow, excludeShipping bool) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		amt := signed(itemAmount(row.Subtotal, row.ShippingCost, row.ProcessingFees, excludeShipping), row.PaymentStatus)
		totals[dayKey(row.PaymentDate)] = totals[dayKey(row.PaymentDate)].Add(amt)
	}
	return totals
}

// BuildRollingSeries produces a fixed-length 2*span-day series ending
// yesterday. Days without activity appear with zero sales; the first
// span days are tagged previous, the rest current.
func BuildRollingSeries(rows []SeriesRow, now time.Time, span int, excludeShipping bool) []SalesDataPoint {
	totals := bucketByDay(rows, excludeShipping)
	start := startOfDay(now).AddDate(0, 0, -2*span)

	points := make([]SalesDataPoint, 0, 2*span)
	for i := 0; i < 2*span; i++ {
		day := start.AddDate(0, 0, i)
		period := PeriodPrevious
		if i >= span {
			period = PeriodCurrent
		}
		points = append(points, SalesDataPoint{
			Date:   dayKey(day),
			Sales:  totals[dayKey(day)],
			Period: period,
		})
	}
	return points
}

// BuildMonthComparisonSeries covers every calendar day of the previous
// month (current) and the month before it (previous).
func BuildMonthComparisonSeries(rows []SeriesRow, now time.Time, excludeShipping bool) []SalesDataPoint {
	totals := bucketByDay(rows, excludeShipping)

	month := startOfMonth(now)
	currentStart := month.AddDate(0, -1, 0)
	previousStart := month.AddDate(0, -2, 0)

	var points []SalesDataPoint
	appendMonth := func(start, end time.Time, period SeriesPeriod) {
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			points = append(points, SalesDataPoint{
				Date:   dayKey(day),
				Sales:  totals[dayKey(day)],
				Period: period,
			})
		}
	}
	appendMonth(previousStart, currentStart, PeriodPrevious)
	appendMonth(currentStart, month, PeriodCurrent)
	return points
}

// TopGroups ranks groups by summed signed revenue, descending, keeping
// at most limit entries. Ties keep first-row encounter order.
func TopGroups(rows []GroupRow, limit int, excludeShipping bool, fallbackName string) []TopGroup {
	index := make(map[uuid.UUID]int, len(rows))
	orderSets := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(rows))
	groups := make([]TopGroup, 0, len(rows))

	for _, row := range rows {
		idx, seen := index[row.GroupID]
		if !seen {
			name := fallbackName
			if row.GroupName != nil && *row.GroupName != "" {
				name = *row.GroupName
			}
			idx = len(groups)
			index[row.GroupID] = idx
			orderSets[row.GroupID] = make(map[uuid.UUID]struct{})
			groups = append(groups, TopGroup{ID: row.GroupID, Name: name})
		}
		amt := signed(itemAmount(row.Subtotal, row.ShippingCost, row.ProcessingFees, excludeShipping), row.PaymentStatus)
		groups[idx].TotalSales = groups[idx].TotalSales.Add(amt)
		orderSets[row.GroupID][row.OrderID] = struct{}{}
	}

	for i := range groups {
		groups[i].OrderCount = len(orderSets[groups[i].ID])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalSales.GreaterThan(groups[j].TotalSales)
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// SummarizeSales rolls up the headline totals. Gross, discounts, items
// sold, and the transaction count come from PAID rows only; refunded
// net is accumulated separately and subtracted for the net-sales line.
func SummarizeSales(rows []ItemDetailRow, excludeShipping bool) SalesSummary {
	var summary SalesSummary
	var paidNet decimal.Decimal
	paidOrders := make(map[uuid.UUID]struct{})

	for _, row := range rows {
		net := itemAmount(row.Subtotal, row.ShippingCost, row.ProcessingFees, excludeShipping)
		if row.PaymentStatus == enums.PaymentStatusRefunded {
			summary.TotalRefunds = summary.TotalRefunds.Add(net)
			continue
		}
		if row.PaymentStatus != enums.PaymentStatusPaid {
			continue
		}
		gross := itemAmount(row.grossOrSubtotal(), row.ShippingCost, row.ProcessingFees, excludeShipping)
		summary.TotalGrossSales = summary.TotalGrossSales.Add(gross)
		summary.TotalDiscounts = summary.TotalDiscounts.Add(row.DiscountAmount)
		summary.ItemsSold += row.Quantity
		paidNet = paidNet.Add(net)
		paidOrders[row.OrderID] = struct{}{}
	}

	summary.TransactionCount = len(paidOrders)
	summary.TotalNetSales = paidNet.Sub(summary.TotalRefunds)
	if summary.TransactionCount > 0 {
		count := decimal.NewFromInt(int64(summary.TransactionCount))
		summary.AverageSaleValue = paidNet.Div(count)
		summary.AverageItemsPerSale = decimal.NewFromInt(int64(summary.ItemsSold)).Div(count)
	}
	return summary
}

// BreakdownRevenue partitions combined-status signed revenue into the
// fixed item-type buckets; unrecognized types land in fees/other.
func BreakdownRevenue(rows []ItemDetailRow, excludeShipping bool) RevenueBreakdown {
	var breakdown RevenueBreakdown
	for _, row := range rows {
		amt := signed(itemAmount(row.Subtotal, row.ShippingCost, row.ProcessingFees, excludeShipping), row.PaymentStatus)
		switch row.ItemType {
		case enums.ItemTypeRetail:
			breakdown.RetailSales = breakdown.RetailSales.Add(amt)
		case enums.ItemTypeRental:
			breakdown.RentalRevenue = breakdown.RentalRevenue.Add(amt)
		case enums.ItemTypeDelivery:
			breakdown.DeliveryRevenue = breakdown.DeliveryRevenue.Add(amt)
		case enums.ItemTypeDamageWaiver:
			breakdown.DamageWaiverRevenue = breakdown.DamageWaiverRevenue.Add(amt)
		case enums.ItemTypeTrackInsurance:
			breakdown.TrackInsuranceRevenue = breakdown.TrackInsuranceRevenue.Add(amt)
		case enums.ItemTypePrepaidFuel:
			breakdown.PrepaidFuelRevenue = breakdown.PrepaidFuelRevenue.Add(amt)
		case enums.ItemTypePrepaidCleaning:
			breakdown.PrepaidCleaningRevenue = breakdown.PrepaidCleaningRevenue.Add(amt)
		default:
			breakdown.FeesOtherRevenue = breakdown.FeesOtherRevenue.Add(amt)
		}
	}
	return breakdown
}

// paymentBucket maps a raw payment method onto one of the six report
// buckets, case-insensitively. Null and unrecognized methods fall into
// other.
func paymentBucket(method *string) string {
	if method == nil {
		return "other"
	}
	switch strings.ToLower(strings.TrimSpace(*method)) {
	case "cash":
		return "cash"
	case "card", "credit_card", "debit_card", "credit", "debit":
		return "card"
	case "ach":
		return "ach"
	case "check", "cheque":
		return "check"
	case "account", "on_account":
		return "account"
	default:
		return "other"
	}
}

// CollectTaxAndPayments sums item amounts and tax per order, negating
// whole-order totals for refunds, then spreads the order totals across
// payment-method buckets. The sign flip here is order-level: items are
// summed first, then negated together.
func CollectTaxAndPayments(orders []models.Order, excludeShipping bool) TaxAndPayments {
	var report TaxAndPayments
	for _, order := range orders {
		var orderTotal, orderTax decimal.Decimal
		for _, item := range order.Items {
			orderTotal = orderTotal.Add(itemAmount(item.Subtotal, item.ShippingCost, item.ProcessingFees, excludeShipping))
			orderTax = orderTax.Add(item.SalesTax)
		}
		if order.PaymentStatus == enums.PaymentStatusRefunded {
			orderTotal = orderTotal.Neg()
			orderTax = orderTax.Neg()
		}

		report.SalesTaxCollected = report.SalesTaxCollected.Add(orderTax)
		switch paymentBucket(order.PaymentMethod) {
		case "cash":
			report.CashPayments = report.CashPayments.Add(orderTotal)
		case "card":
			report.CardPayments = report.CardPayments.Add(orderTotal)
		case "ach":
			report.ACHPayments = report.ACHPayments.Add(orderTotal)
		case "check":
			report.CheckPayments = report.CheckPayments.Add(orderTotal)
		case "account":
			report.AccountPayments = report.AccountPayments.Add(orderTotal)
		default:
			report.OtherPayments = report.OtherPayments.Add(orderTotal)
		}
	}
	return report
}

// SummarizeDiscounts rolls up paid orders that carried a discount.
func SummarizeDiscounts(orders []models.Order) DiscountsReport {
	var report DiscountsReport
	var totalGross decimal.Decimal

	for _, order := range orders {
		report.TotalDiscounts = report.TotalDiscounts.Add(order.DiscountAmount)
		totalGross = totalGross.Add(order.GrossAmount)
		report.TransactionsWithDiscounts++
	}

	if totalGross.IsPositive() {
		report.DiscountPercentage = report.TotalDiscounts.Div(totalGross).Mul(decimal.NewFromInt(100))
	}
	if report.TransactionsWithDiscounts > 0 {
		report.AverageDiscountPerTransaction = report.TotalDiscounts.Div(decimal.NewFromInt(int64(report.TransactionsWithDiscounts)))
	}
	return report
}

// SummarizeRefunds totals refunded orders by amount, type, and reason.
// Reason groups keep first-seen order. Refund amounts here are positive
// magnitudes.
func SummarizeRefunds(orders []models.Order, excludeShipping bool) RefundsReport {
	report := RefundsReport{RefundsByReason: []RefundReasonGroup{}}
	reasonIndex := make(map[string]int)

	for _, order := range orders {
		var orderTotal decimal.Decimal
		for _, item := range order.Items {
			orderTotal = orderTotal.Add(itemAmount(item.Subtotal, item.ShippingCost, item.ProcessingFees, excludeShipping))
		}

		report.TotalRefundAmount = report.TotalRefundAmount.Add(orderTotal)
		report.RefundTransactionCount++

		if order.RefundType != nil {
			switch *order.RefundType {
			case enums.RefundTypeFull:
				report.FullRefunds++
			case enums.RefundTypePartial:
				report.PartialRefunds++
			}
		}

		reason := unspecifiedReason
		if order.RefundReason != nil && *order.RefundReason != "" {
			reason = *order.RefundReason
		}
		idx, ok := reasonIndex[reason]
		if !ok {
			idx = len(report.RefundsByReason)
			reasonIndex[reason] = idx
			report.RefundsByReason = append(report.RefundsByReason, RefundReasonGroup{Reason: reason})
		}
		report.RefundsByReason[idx].Count++
		report.RefundsByReason[idx].Amount = report.RefundsByReason[idx].Amount.Add(orderTotal)
	}
	return report
}

// displaySKU derives a stable display SKU from the product id.
func displaySKU(id uuid.UUID) string {
	return "SKU-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// BuildProductDetails groups item rows by product. PAID rows feed the
// sales-side accumulators; REFUNDED rows feed the refund quantity and
// amount as positive magnitudes. Rows without a product id are pooled
// under a single unknown bucket. Results are ordered by net sales,
// highest first.
func BuildProductDetails(rows []ItemDetailRow, excludeShipping bool) []ProductSalesDetail {
	type accumulator struct {
		detail     ProductSalesDetail
		salesCount int
	}

	index := make(map[uuid.UUID]int, len(rows))
	accs := make([]accumulator, 0, len(rows))

	for _, row := range rows {
		var productID uuid.UUID
		if row.ProductID != nil {
			productID = *row.ProductID
		}

		idx, seen := index[productID]
		if !seen {
			name := unknownProductName
			if row.ProductName != nil && *row.ProductName != "" {
				name = *row.ProductName
			}
			idx = len(accs)
			index[productID] = idx
			accs = append(accs, accumulator{detail: ProductSalesDetail{
				ProductID:   productID.String(),
				ProductName: name,
				SKU:         displaySKU(productID),
			}})
		}

		acc := &accs[idx]
		net := itemAmount(row.Subtotal, row.ShippingCost, row.ProcessingFees, excludeShipping)

		switch row.PaymentStatus {
		case enums.PaymentStatusRefunded:
			acc.detail.RefundQuantity += row.Quantity
			acc.detail.RefundAmount = acc.detail.RefundAmount.Add(net)
		case enums.PaymentStatusPaid:
			acc.detail.QuantitySold += row.Quantity
			acc.detail.GrossSales = acc.detail.GrossSales.Add(row.grossOrSubtotal())
			acc.detail.DiscountAmount = acc.detail.DiscountAmount.Add(row.DiscountAmount)
			acc.detail.NetSales = acc.detail.NetSales.Add(net)
			acc.detail.SalesTax = acc.detail.SalesTax.Add(row.SalesTax)
			acc.salesCount++
		}
	}

	details := make([]ProductSalesDetail, 0, len(accs))
	for _, acc := range accs {
		if acc.salesCount > 0 {
			acc.detail.AverageSellingPrice = acc.detail.NetSales.Div(decimal.NewFromInt(int64(acc.salesCount)))
		}
		acc.detail.NetQuantitySold = acc.detail.QuantitySold - acc.detail.RefundQuantity
		details = append(details, acc.detail)
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].NetSales.GreaterThan(details[j].NetSales)
	})
	return details
}
