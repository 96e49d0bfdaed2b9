package reports

import (
	"context"
	"time"

	"github.com/trackside-rentals/reporting-backend/pkg/config"
	"github.com/trackside-rentals/reporting-backend/pkg/enums"
	"github.com/trackside-rentals/reporting-backend/pkg/errors"
	"github.com/trackside-rentals/reporting-backend/pkg/logger"
	"github.com/trackside-rentals/reporting-backend/pkg/metrics"
)

// Service is the reporting surface consumed by the HTTP layer: one
// operation per report shape, each taking the shared filter model.
type Service interface {
	Rolling30Days(ctx context.Context, f Filters) ([]SalesDataPoint, error)
	SevenDayComparison(ctx context.Context, f Filters) ([]SalesDataPoint, error)
	LastMonthComparison(ctx context.Context, f Filters) ([]SalesDataPoint, error)
	TopProducts(ctx context.Context, f Filters, limit int) ([]TopGroup, error)
	TopCategories(ctx context.Context, f Filters, limit int) ([]TopGroup, error)
	SalesSummary(ctx context.Context, f Filters) (*SalesSummary, error)
	RevenueBreakdown(ctx context.Context, f Filters) (*RevenueBreakdown, error)
	TaxAndPayments(ctx context.Context, f Filters) (*TaxAndPayments, error)
	Discounts(ctx context.Context, f Filters) (*DiscountsReport, error)
	Refunds(ctx context.Context, f Filters) (*RefundsReport, error)
	ProductDetails(ctx context.Context, f Filters) ([]ProductSalesDetail, error)
}

type service struct {
	repo  *Repository
	cfg   config.ReportsConfig
	logg  *logger.Logger
	stats *metrics.ReportMetrics
	now   func() time.Time
}

func NewService(repo *Repository, cfg config.ReportsConfig, logg *logger.Logger, stats *metrics.ReportMetrics) Service {
	return &service{
		repo:  repo,
		cfg:   cfg,
		logg:  logg,
		stats: stats,
		now:   time.Now,
	}
}

// run validates the filters, times the computation, and wraps fetch
// failures as dependency errors. Validation failures pass through with
// their own code.
func (s *service) run(ctx context.Context, name string, f Filters, compute func(context.Context) error) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if s.logg != nil {
		ctx = s.logg.WithReport(ctx, name)
	}

	start := time.Now()
	err := compute(ctx)
	s.stats.ObserveDuration(name, time.Since(start))
	if err != nil {
		s.stats.IncFailure(name)
		if s.logg != nil {
			s.logg.Error(ctx, "report computation failed", err)
		}
		return errors.Wrap(errors.CodeDependency, err, "computing "+name+" report")
	}
	s.stats.IncSuccess(name)
	return nil
}

func (s *service) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if s.cfg.MaxTopLimit > 0 && limit > s.cfg.MaxTopLimit {
		limit = s.cfg.MaxTopLimit
	}
	return limit
}

func (s *service) Rolling30Days(ctx context.Context, f Filters) ([]SalesDataPoint, error) {
	var points []SalesDataPoint
	err := s.run(ctx, "rolling_30_days", f, func(ctx context.Context) error {
		now := s.now()
		rows, err := s.repo.FetchSeriesRows(ctx, f, rollingWindow(now, 30))
		if err != nil {
			return err
		}
		points = BuildRollingSeries(rows, now, 30, f.ExcludeShipping)
		return nil
	})
	return points, err
}

func (s *service) SevenDayComparison(ctx context.Context, f Filters) ([]SalesDataPoint, error) {
	var points []SalesDataPoint
	err := s.run(ctx, "seven_day_comparison", f, func(ctx context.Context) error {
		now := s.now()
		rows, err := s.repo.FetchSeriesRows(ctx, f, rollingWindow(now, 7))
		if err != nil {
			return err
		}
		points = BuildRollingSeries(rows, now, 7, f.ExcludeShipping)
		return nil
	})
	return points, err
}

func (s *service) LastMonthComparison(ctx context.Context, f Filters) ([]SalesDataPoint, error) {
	var points []SalesDataPoint
	err := s.run(ctx, "last_month_comparison", f, func(ctx context.Context) error {
		now := s.now()
		rows, err := s.repo.FetchSeriesRows(ctx, f, monthComparisonWindow(now))
		if err != nil {
			return err
		}
		points = BuildMonthComparisonSeries(rows, now, f.ExcludeShipping)
		return nil
	})
	return points, err
}

func (s *service) TopProducts(ctx context.Context, f Filters, limit int) ([]TopGroup, error) {
	limit = s.clampLimit(limit, s.cfg.TopProductsLimit)
	var groups []TopGroup
	err := s.run(ctx, "top_products", f, func(ctx context.Context) error {
		rows, err := s.repo.FetchGroupRows(ctx, f, GroupByProduct, s.now())
		if err != nil {
			return err
		}
		groups = TopGroups(rows, limit, f.ExcludeShipping, unknownProductName)
		return nil
	})
	return groups, err
}

func (s *service) TopCategories(ctx context.Context, f Filters, limit int) ([]TopGroup, error) {
	limit = s.clampLimit(limit, s.cfg.TopCategoriesLimit)
	var groups []TopGroup
	err := s.run(ctx, "top_categories", f, func(ctx context.Context) error {
		rows, err := s.repo.FetchGroupRows(ctx, f, GroupByCategory, s.now())
		if err != nil {
			return err
		}
		groups = TopGroups(rows, limit, f.ExcludeShipping, unknownCategoryName)
		return nil
	})
	return groups, err
}

func (s *service) SalesSummary(ctx context.Context, f Filters) (*SalesSummary, error) {
	var summary SalesSummary
	err := s.run(ctx, "sales_summary", f, func(ctx context.Context) error {
		rows, err := s.repo.FetchItemDetailRows(ctx, f, s.now())
		if err != nil {
			return err
		}
		summary = SummarizeSales(rows, f.ExcludeShipping)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *service) RevenueBreakdown(ctx context.Context, f Filters) (*RevenueBreakdown, error) {
	var breakdown RevenueBreakdown
	err := s.run(ctx, "revenue_breakdown", f, func(ctx context.Context) error {
		rows, err := s.repo.FetchItemDetailRows(ctx, f, s.now())
		if err != nil {
			return err
		}
		breakdown = BreakdownRevenue(rows, f.ExcludeShipping)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (s *service) TaxAndPayments(ctx context.Context, f Filters) (*TaxAndPayments, error) {
	var report TaxAndPayments
	err := s.run(ctx, "tax_and_payments", f, func(ctx context.Context) error {
		orders, err := s.repo.FetchOrdersWithItems(ctx, f, s.now())
		if err != nil {
			return err
		}
		report = CollectTaxAndPayments(orders, f.ExcludeShipping)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) Discounts(ctx context.Context, f Filters) (*DiscountsReport, error) {
	var report DiscountsReport
	err := s.run(ctx, "discounts", f, func(ctx context.Context) error {
		orders, err := s.repo.FetchDiscountedOrders(ctx, f, s.now())
		if err != nil {
			return err
		}
		report = SummarizeDiscounts(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) Refunds(ctx context.Context, f Filters) (*RefundsReport, error) {
	var report RefundsReport
	err := s.run(ctx, "refunds", f, func(ctx context.Context) error {
		orders, err := s.repo.FetchOrdersWithItems(ctx, f, s.now(), enums.PaymentStatusRefunded)
		if err != nil {
			return err
		}
		report = SummarizeRefunds(orders, f.ExcludeShipping)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) ProductDetails(ctx context.Context, f Filters) ([]ProductSalesDetail, error) {
	var details []ProductSalesDetail
	err := s.run(ctx, "product_details", f, func(ctx context.Context) error {
		rows, err := s.repo.FetchItemDetailRows(ctx, f, s.now())
		if err != nil {
			return err
		}
		details = BuildProductDetails(rows, f.ExcludeShipping)
		return nil
	})
	return details, err
}
