package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside-rentals/reporting-backend/internal/catalog"
	"github.com/trackside-rentals/reporting-backend/internal/reports"
	"github.com/trackside-rentals/reporting-backend/pkg/config"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubReportsService struct{}

func (stubReportsService) Rolling30Days(ctx context.Context, f reports.Filters) ([]reports.SalesDataPoint, error) {
	return []reports.SalesDataPoint{}, nil
}

func (stubReportsService) SevenDayComparison(ctx context.Context, f reports.Filters) ([]reports.SalesDataPoint, error) {
	return []reports.SalesDataPoint{}, nil
}

func (stubReportsService) LastMonthComparison(ctx context.Context, f reports.Filters) ([]reports.SalesDataPoint, error) {
	return []reports.SalesDataPoint{}, nil
}

func (stubReportsService) TopProducts(ctx context.Context, f reports.Filters, limit int) ([]reports.TopGroup, error) {
	return []reports.TopGroup{}, nil
}

func (stubReportsService) TopCategories(ctx context.Context, f reports.Filters, limit int) ([]reports.TopGroup, error) {
	return []reports.TopGroup{}, nil
}

func (stubReportsService) SalesSummary(ctx context.Context, f reports.Filters) (*reports.SalesSummary, error) {
	return &reports.SalesSummary{TransactionCount: 7}, nil
}

func (stubReportsService) RevenueBreakdown(ctx context.Context, f reports.Filters) (*reports.RevenueBreakdown, error) {
	return &reports.RevenueBreakdown{}, nil
}

func (stubReportsService) TaxAndPayments(ctx context.Context, f reports.Filters) (*reports.TaxAndPayments, error) {
	return &reports.TaxAndPayments{}, nil
}

func (stubReportsService) Discounts(ctx context.Context, f reports.Filters) (*reports.DiscountsReport, error) {
	return &reports.DiscountsReport{}, nil
}

func (stubReportsService) Refunds(ctx context.Context, f reports.Filters) (*reports.RefundsReport, error) {
	return &reports.RefundsReport{}, nil
}

func (stubReportsService) ProductDetails(ctx context.Context, f reports.Filters) ([]reports.ProductSalesDetail, error) {
	return []reports.ProductSalesDetail{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Categories(ctx context.Context) ([]catalog.CategoryRef, error) {
	return []catalog.CategoryRef{}, nil
}

func (stubCatalogService) Products(ctx context.Context, categoryID string) ([]catalog.ProductRef, error) {
	return []catalog.ProductRef{}, nil
}

func (stubCatalogService) Stores(ctx context.Context) ([]catalog.StoreRef, error) {
	return []catalog.StoreRef{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(cfg, nil, stubPinger{}, stubReportsService{}, stubCatalogService{}, prometheus.NewRegistry())
}

func doRequest(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	live := doRequest(t, router, "/health/live")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, "test", live.Header().Get("X-Trackside-Env"))

	ready := doRequest(t, router, "/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
}

func TestRouterReportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{
		"/api/v1/reports/trends/rolling-30",
		"/api/v1/reports/trends/seven-day",
		"/api/v1/reports/trends/last-month",
		"/api/v1/reports/top-products",
		"/api/v1/reports/top-categories",
		"/api/v1/reports/summary",
		"/api/v1/reports/revenue",
		"/api/v1/reports/tax-payments",
		"/api/v1/reports/discounts",
		"/api/v1/reports/refunds",
		"/api/v1/reports/products",
	}
	for _, path := range paths {
		rec := doRequest(t, router, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterSummaryPayload(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/v1/reports/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	var payload struct {
		Data struct {
			TransactionCount int `json:"transaction_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 7, payload.Data.TransactionCount)
}

func TestRouterRejectsBadFilterParams(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/api/v1/reports/summary?date_range=fortnight")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterCatalogEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/catalog/categories",
		"/api/v1/catalog/products",
		"/api/v1/catalog/stores",
	} {
		rec := doRequest(t, router, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
