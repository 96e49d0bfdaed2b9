package reports

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

func TestParseFiltersDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/summary", nil)

	f, err := parseFilters(r)
	require.NoError(t, err)
	assert.Equal(t, "all", f.Store)
	assert.Equal(t, "all", f.ItemType)
	assert.Equal(t, enums.DateRangeAll, f.DateRange)
	assert.False(t, f.ExcludeShipping)
}

func TestParseFiltersReadsDimensions(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/summary?store=abc&category=def&product=ghi&item_type=rental&exclude_shipping=true&date_range=rolling_30", nil)

	f, err := parseFilters(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", f.Store)
	assert.Equal(t, "def", f.Category)
	assert.Equal(t, "ghi", f.Product)
	assert.Equal(t, "rental", f.ItemType)
	assert.True(t, f.ExcludeShipping)
	assert.Equal(t, enums.DateRangeRolling30, f.DateRange)
}

func TestParseFiltersOnlyClearsExclude(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/summary?waiver_only=true&exclude_waiver=true", nil)

	f, err := parseFilters(r)
	require.NoError(t, err)
	assert.True(t, f.WaiverOnly)
	assert.False(t, f.ExcludeWaiver)
}

func TestParseFiltersCustomDates(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/summary?date_range=custom&start_date=2026-01-05&end_date=2026-01-09", nil)

	f, err := parseFilters(r)
	require.NoError(t, err)
	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, 5, f.StartDate.Day())
	assert.Equal(t, 9, f.EndDate.Day())
}

func TestParseFiltersRejectsBadInput(t *testing.T) {
	cases := []string{
		"/reports/summary?exclude_waiver=maybe",
		"/reports/summary?date_range=fortnight",
		"/reports/summary?start_date=Jan-5",
		"/reports/summary?item_type=snacks",
	}
	for _, target := range cases {
		r := httptest.NewRequest("GET", target, nil)
		_, err := parseFilters(r)
		assert.Error(t, err, target)
	}
}

func TestParseLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports/top-products", nil)
	limit, err := parseLimit(r)
	require.NoError(t, err)
	assert.Equal(t, 0, limit)

	r = httptest.NewRequest("GET", "/reports/top-products?limit=25", nil)
	limit, err = parseLimit(r)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)

	r = httptest.NewRequest("GET", "/reports/top-products?limit=-3", nil)
	_, err = parseLimit(r)
	assert.Error(t, err)
}
