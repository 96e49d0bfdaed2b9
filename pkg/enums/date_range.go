package enums

import "fmt"

// DateRange enumerates the period selectors supported by the report filters.
type DateRange string

const (
	DateRangeAll       DateRange = "all"
	DateRangeToday     DateRange = "today"
	DateRangeYesterday DateRange = "yesterday"
	DateRangeThisWeek  DateRange = "this_week"
	DateRangeLastWeek  DateRange = "last_week"
	DateRangeThisMonth DateRange = "this_month"
	DateRangeLastMonth DateRange = "last_month"
	DateRangeThisYear  DateRange = "this_year"
	DateRangeLastYear  DateRange = "last_year"
	DateRangeRolling30 DateRange = "rolling_30"
	DateRangeCustom    DateRange = "custom"
)

var validDateRanges = []DateRange{
	DateRangeAll,
	DateRangeToday,
	DateRangeYesterday,
	DateRangeThisWeek,
	DateRangeLastWeek,
	DateRangeThisMonth,
	DateRangeLastMonth,
	DateRangeThisYear,
	DateRangeLastYear,
	DateRangeRolling30,
	DateRangeCustom,
}

// String implements fmt.Stringer.
func (d DateRange) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DateRange.
func (d DateRange) IsValid() bool {
	for _, candidate := range validDateRanges {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDateRange converts raw input into a DateRange.
func ParseDateRange(value string) (DateRange, error) {
	for _, candidate := range validDateRanges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid date range %q", value)
}
