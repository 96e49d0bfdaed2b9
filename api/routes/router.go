package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trackside-rentals/reporting-backend/api/controllers"
	reportcontrollers "github.com/trackside-rentals/reporting-backend/api/controllers/reports"
	"github.com/trackside-rentals/reporting-backend/api/middleware"
	"github.com/trackside-rentals/reporting-backend/internal/catalog"
	"github.com/trackside-rentals/reporting-backend/internal/reports"
	"github.com/trackside-rentals/reporting-backend/pkg/config"
	"github.com/trackside-rentals/reporting-backend/pkg/db"
	"github.com/trackside-rentals/reporting-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	reportsService reports.Service,
	catalogService catalog.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Route("/trends", func(r chi.Router) {
				r.Get("/rolling-30", reportcontrollers.Rolling30Days(reportsService, logg))
				r.Get("/seven-day", reportcontrollers.SevenDayComparison(reportsService, logg))
				r.Get("/last-month", reportcontrollers.LastMonthComparison(reportsService, logg))
			})
			r.Get("/top-products", reportcontrollers.TopProducts(reportsService, logg))
			r.Get("/top-categories", reportcontrollers.TopCategories(reportsService, logg))
			r.Get("/summary", reportcontrollers.SalesSummary(reportsService, logg))
			r.Get("/summary/export", reportcontrollers.ExportSummary(reportsService, logg))
			r.Get("/revenue", reportcontrollers.RevenueBreakdown(reportsService, logg))
			r.Get("/tax-payments", reportcontrollers.TaxAndPayments(reportsService, logg))
			r.Get("/discounts", reportcontrollers.Discounts(reportsService, logg))
			r.Get("/refunds", reportcontrollers.Refunds(reportsService, logg))
			r.Get("/products", reportcontrollers.ProductDetails(reportsService, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.ListCategories(catalogService, logg))
			r.Get("/products", controllers.ListProducts(catalogService, logg))
			r.Get("/stores", controllers.ListStores(catalogService, logg))
		})
	})

	return r
}
