package reports

import (
	"time"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
)

// Window is a half-open [Start, End) interval over payment dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

func startOfDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// startOfWeek truncates to the most recent Sunday.
func startOfWeek(ts time.Time) time.Time {
	day := startOfDay(ts)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func startOfMonth(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}

func startOfYear(ts time.Time) time.Time {
	return time.Date(ts.Year(), 1, 1, 0, 0, 0, 0, ts.Location())
}

// resolveWindow maps a date-range selector onto concrete bounds relative
// to now. The second return is false when the selector imposes no
// constraint: the all range, and a custom range missing either endpoint.
func resolveWindow(f Filters, now time.Time) (Window, bool) {
	today := startOfDay(now)

	switch f.DateRange {
	case enums.DateRangeToday:
		return Window{Start: today, End: today.AddDate(0, 0, 1)}, true
	case enums.DateRangeYesterday:
		return Window{Start: today.AddDate(0, 0, -1), End: today}, true
	case enums.DateRangeThisWeek:
		week := startOfWeek(now)
		return Window{Start: week, End: week.AddDate(0, 0, 7)}, true
	case enums.DateRangeLastWeek:
		week := startOfWeek(now)
		return Window{Start: week.AddDate(0, 0, -7), End: week}, true
	case enums.DateRangeThisMonth:
		month := startOfMonth(now)
		return Window{Start: month, End: month.AddDate(0, 1, 0)}, true
	case enums.DateRangeLastMonth:
		month := startOfMonth(now)
		return Window{Start: month.AddDate(0, -1, 0), End: month}, true
	case enums.DateRangeThisYear:
		year := startOfYear(now)
		return Window{Start: year, End: year.AddDate(1, 0, 0)}, true
	case enums.DateRangeLastYear:
		year := startOfYear(now)
		return Window{Start: year.AddDate(-1, 0, 0), End: year}, true
	case enums.DateRangeRolling30:
		return Window{Start: today.AddDate(0, 0, -30), End: today}, true
	case enums.DateRangeCustom:
		if f.StartDate == nil || f.EndDate == nil {
			return Window{}, false
		}
		// End date is inclusive on the day level.
		return Window{
			Start: startOfDay(*f.StartDate),
			End:   startOfDay(*f.EndDate).AddDate(0, 0, 1),
		}, true
	default:
		return Window{}, false
	}
}

// dayKey is the canonical per-day bucket key for series aggregation.
func dayKey(ts time.Time) string {
	return ts.Format("2006-01-02")
}
