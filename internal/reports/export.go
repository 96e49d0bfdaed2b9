package reports

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/trackside-rentals/reporting-backend/pkg/errors"
)

const (
	summarySheet  = "Summary"
	productsSheet = "Products"
)

// SummaryWorkbook bundles the report shapes included in the xlsx export.
type SummaryWorkbook struct {
	Summary   SalesSummary
	Breakdown RevenueBreakdown
	Products  []ProductSalesDetail
}

// WriteSummaryWorkbook renders the export as a two-sheet xlsx file:
// a Summary sheet with the headline totals and revenue buckets, and a
// Products sheet with one row per product.
func WriteSummaryWorkbook(w io.Writer, book SummaryWorkbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "renaming summary sheet")
	}
	if _, err := f.NewSheet(productsSheet); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating products sheet")
	}

	writeSummarySheet(f, book.Summary, book.Breakdown)
	writeProductsSheet(f, book.Products)

	if err := f.Write(w); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "writing workbook")
	}
	return nil
}

func moneyCell(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

func writeSummarySheet(f *excelize.File, summary SalesSummary, breakdown RevenueBreakdown) {
	rows := []struct {
		label string
		value any
	}{
		{"Total Gross Sales", moneyCell(summary.TotalGrossSales)},
		{"Total Discounts", moneyCell(summary.TotalDiscounts)},
		{"Total Refunds", moneyCell(summary.TotalRefunds)},
		{"Total Net Sales", moneyCell(summary.TotalNetSales)},
		{"Transactions", summary.TransactionCount},
		{"Items Sold", summary.ItemsSold},
		{"Average Sale Value", moneyCell(summary.AverageSaleValue)},
		{"Average Items Per Sale", moneyCell(summary.AverageItemsPerSale)},
		{"", nil},
		{"Retail Sales", moneyCell(breakdown.RetailSales)},
		{"Rental Revenue", moneyCell(breakdown.RentalRevenue)},
		{"Delivery Revenue", moneyCell(breakdown.DeliveryRevenue)},
		{"Damage Waiver Revenue", moneyCell(breakdown.DamageWaiverRevenue)},
		{"Track Insurance Revenue", moneyCell(breakdown.TrackInsuranceRevenue)},
		{"Prepaid Fuel Revenue", moneyCell(breakdown.PrepaidFuelRevenue)},
		{"Prepaid Cleaning Revenue", moneyCell(breakdown.PrepaidCleaningRevenue)},
		{"Fees & Other Revenue", moneyCell(breakdown.FeesOtherRevenue)},
	}

	f.SetCellValue(summarySheet, "A1", "Metric")
	f.SetCellValue(summarySheet, "B1", "Value")
	for i, row := range rows {
		if row.label == "" {
			continue
		}
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+2), row.label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+2), row.value)
	}
}

func writeProductsSheet(f *excelize.File, products []ProductSalesDetail) {
	headers := []string{
		"Product", "SKU", "Quantity Sold", "Gross Sales", "Discounts",
		"Net Sales", "Sales Tax", "Avg Selling Price", "Refund Amount",
		"Refund Quantity", "Net Quantity Sold",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(productsSheet, cell, h)
	}

	for i, p := range products {
		values := []any{
			p.ProductName,
			p.SKU,
			p.QuantitySold,
			moneyCell(p.GrossSales),
			moneyCell(p.DiscountAmount),
			moneyCell(p.NetSales),
			moneyCell(p.SalesTax),
			moneyCell(p.AverageSellingPrice),
			moneyCell(p.RefundAmount),
			p.RefundQuantity,
			p.NetQuantitySold,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(productsSheet, cell, v)
		}
	}
}
