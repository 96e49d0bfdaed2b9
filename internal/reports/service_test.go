package reports

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trackside-rentals/reporting-backend/pkg/config"
	"github.com/trackside-rentals/reporting-backend/pkg/db/models"
	"github.com/trackside-rentals/reporting-backend/pkg/enums"
	"github.com/trackside-rentals/reporting-backend/pkg/errors"
	"github.com/trackside-rentals/reporting-backend/pkg/metrics"
)

func newTestService(t *testing.T, db *gorm.DB, now time.Time) Service {
	t.Helper()

	cfg := config.ReportsConfig{
		TopProductsLimit:   10,
		TopCategoriesLimit: 5,
		MaxTopLimit:        100,
	}
	svc := NewService(NewRepository(db), cfg, nil, metrics.NewReportMetrics(prometheus.NewRegistry()))
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func seedScenario(t *testing.T, db *gorm.DB, now time.Time) {
	t.Helper()

	store := seedStore(t, db, "Main")
	category := seedCategory(t, db, "Karts")
	product := seedProduct(t, db, "GT Kart", category.ID)
	yesterday := ptrTime(now.AddDate(0, 0, -1))

	paid := seedOrder(t, db, store, enums.PaymentStatusPaid, yesterday)
	seedItem(t, db, paid, enums.ItemTypeRetail, 100, func(i *models.OrderItem) {
		i.ProductID = &product.ID
		i.CategoryID = &category.ID
		i.Quantity = 2
		i.ShippingCost = decimal.NewFromInt(10)
	})

	refunded := seedOrder(t, db, store, enums.PaymentStatusRefunded, yesterday)
	reason := "Damaged kart"
	full := enums.RefundTypeFull
	require.NoError(t, db.Model(refunded).Updates(map[string]any{
		"refund_type":   full,
		"refund_reason": reason,
	}).Error)
	seedItem(t, db, refunded, enums.ItemTypeRetail, 40, func(i *models.OrderItem) {
		i.ProductID = &product.ID
		i.CategoryID = &category.ID
		i.ShippingCost = decimal.NewFromInt(5)
	})
}

func TestServiceRolling30Days(t *testing.T) {
	db := setupReportsTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedScenario(t, db, now)

	svc := newTestService(t, db, now)
	points, err := svc.Rolling30Days(context.Background(), DefaultFilters())
	require.NoError(t, err)
	require.Len(t, points, 60)
	assert.True(t, points[59].Sales.Equal(decimal.NewFromInt(65)))
}

func TestServiceSalesSummary(t *testing.T) {
	db := setupReportsTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedScenario(t, db, now)

	svc := newTestService(t, db, now)
	summary, err := svc.SalesSummary(context.Background(), DefaultFilters())
	require.NoError(t, err)
	assert.True(t, summary.TotalNetSales.Equal(decimal.NewFromInt(65)))
	assert.True(t, summary.TotalRefunds.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, 1, summary.TransactionCount)
	assert.Equal(t, 2, summary.ItemsSold)
}

func TestServiceTopProductsHonorsLimitCap(t *testing.T) {
	db := setupReportsTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedScenario(t, db, now)

	svc := newTestService(t, db, now)
	groups, err := svc.TopProducts(context.Background(), DefaultFilters(), 100000)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "GT Kart", groups[0].Name)
	assert.True(t, groups[0].TotalSales.Equal(decimal.NewFromInt(65)))
}

func TestServiceRefunds(t *testing.T) {
	db := setupReportsTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedScenario(t, db, now)

	svc := newTestService(t, db, now)
	report, err := svc.Refunds(context.Background(), DefaultFilters())
	require.NoError(t, err)
	assert.True(t, report.TotalRefundAmount.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, 1, report.FullRefunds)
	require.Len(t, report.RefundsByReason, 1)
	assert.Equal(t, "Damaged kart", report.RefundsByReason[0].Reason)
}

func TestServiceRejectsInvalidFilters(t *testing.T) {
	db := setupReportsTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	f := DefaultFilters()
	f.ExcludeWaiver = true
	f.WaiverOnly = true

	svc := newTestService(t, db, now)
	_, err := svc.RevenueBreakdown(context.Background(), f)
	require.Error(t, err)
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeValidation, typed.Code())
}
