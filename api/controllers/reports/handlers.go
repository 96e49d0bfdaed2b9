package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/trackside-rentals/reporting-backend/api/responses"
	"github.com/trackside-rentals/reporting-backend/internal/reports"
	"github.com/trackside-rentals/reporting-backend/pkg/logger"
)

// Rolling30Days serves the 60-point rolling trend comparison.
func Rolling30Days(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		points, err := service.Rolling30Days(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

// SevenDayComparison serves the 14-point week-over-week trend.
func SevenDayComparison(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		points, err := service.SevenDayComparison(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

// LastMonthComparison serves the previous two full calendar months.
func LastMonthComparison(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		points, err := service.LastMonthComparison(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

func TopProducts(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		groups, err := service.TopProducts(ctx, f, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}

func TopCategories(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := parseLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		groups, err := service.TopCategories(ctx, f, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}

func SalesSummary(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := service.SalesSummary(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func RevenueBreakdown(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		breakdown, err := service.RevenueBreakdown(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

func TaxAndPayments(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := service.TaxAndPayments(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func Discounts(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := service.Discounts(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func Refunds(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := service.Refunds(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func ProductDetails(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		details, err := service.ProductDetails(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, details)
	}
}

// ExportSummary streams the summary workbook as an xlsx attachment.
func ExportSummary(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f, err := parseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := service.SalesSummary(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		breakdown, err := service.RevenueBreakdown(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		details, err := service.ProductDetails(ctx, f)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		book := reports.SummaryWorkbook{
			Summary:   *summary,
			Breakdown: *breakdown,
			Products:  details,
		}

		filename := fmt.Sprintf("sales-summary-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
		if err := reports.WriteSummaryWorkbook(w, book); err != nil {
			if logg != nil {
				logg.Error(ctx, "workbook write failed", err)
			}
		}
	}
}
