package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

func filtersFor(r enums.DateRange) Filters {
	f := DefaultFilters()
	f.DateRange = r
	return f
}

func TestResolveWindow(t *testing.T) {
	// A Tuesday.
	now := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		r     enums.DateRange
		start time.Time
		end   time.Time
	}{
		{"today", enums.DateRangeToday, day(2026, 3, 10), day(2026, 3, 11)},
		{"yesterday", enums.DateRangeYesterday, day(2026, 3, 9), day(2026, 3, 10)},
		{"this_week", enums.DateRangeThisWeek, day(2026, 3, 8), day(2026, 3, 15)},
		{"last_week", enums.DateRangeLastWeek, day(2026, 3, 1), day(2026, 3, 8)},
		{"this_month", enums.DateRangeThisMonth, day(2026, 3, 1), day(2026, 4, 1)},
		{"last_month", enums.DateRangeLastMonth, day(2026, 2, 1), day(2026, 3, 1)},
		{"this_year", enums.DateRangeThisYear, day(2026, 1, 1), day(2027, 1, 1)},
		{"last_year", enums.DateRangeLastYear, day(2025, 1, 1), day(2026, 1, 1)},
		{"rolling_30", enums.DateRangeRolling30, day(2026, 2, 8), day(2026, 3, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, ok := resolveWindow(filtersFor(tc.r), now)
			require.True(t, ok)
			assert.Equal(t, tc.start, w.Start)
			assert.Equal(t, tc.end, w.End)
		})
	}
}

func TestResolveWindowAllIsUnbounded(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)
	_, ok := resolveWindow(filtersFor(enums.DateRangeAll), now)
	assert.False(t, ok)
}

func TestResolveWindowCustom(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC)

	f := filtersFor(enums.DateRangeCustom)
	f.StartDate = &start
	f.EndDate = &end

	w, ok := resolveWindow(f, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), w.Start)
	// The end date itself is included.
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindowCustomMissingBound(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	f := filtersFor(enums.DateRangeCustom)
	f.StartDate = &start

	_, ok := resolveWindow(f, now)
	assert.False(t, ok)
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.Start.Add(23*time.Hour)))
	assert.False(t, w.Contains(w.End))
}
