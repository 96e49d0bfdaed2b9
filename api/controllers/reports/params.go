package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/trackside-rentals/reporting-backend/internal/reports"
	"github.com/trackside-rentals/reporting-backend/pkg/enums"
	"github.com/trackside-rentals/reporting-backend/pkg/errors"
)

const dateParamLayout = "2006-01-02"

// parseFilters builds the filter model from query parameters. This is
// the producing layer for the exclude/only pairs: an "only" flag clears
// its paired "exclude" flag, so a contradictory pair can never leave
// this function.
func parseFilters(r *http.Request) (reports.Filters, error) {
	q := r.URL.Query()
	f := reports.DefaultFilters()

	if v := q.Get("store"); v != "" {
		f.Store = v
	}
	if v := q.Get("category"); v != "" {
		f.Category = v
	}
	if v := q.Get("product"); v != "" {
		f.Product = v
	}
	if v := q.Get("item_type"); v != "" {
		f.ItemType = v
	}

	var err error
	if f.ExcludeWaiver, err = parseBoolParam(q.Get("exclude_waiver")); err != nil {
		return f, invalidParam("exclude_waiver", err)
	}
	if f.WaiverOnly, err = parseBoolParam(q.Get("waiver_only")); err != nil {
		return f, invalidParam("waiver_only", err)
	}
	if f.ExcludeInsurance, err = parseBoolParam(q.Get("exclude_insurance")); err != nil {
		return f, invalidParam("exclude_insurance", err)
	}
	if f.InsuranceOnly, err = parseBoolParam(q.Get("insurance_only")); err != nil {
		return f, invalidParam("insurance_only", err)
	}
	if f.ExcludeDelivery, err = parseBoolParam(q.Get("exclude_delivery")); err != nil {
		return f, invalidParam("exclude_delivery", err)
	}
	if f.DeliveryOnly, err = parseBoolParam(q.Get("delivery_only")); err != nil {
		return f, invalidParam("delivery_only", err)
	}
	if f.ExcludeShipping, err = parseBoolParam(q.Get("exclude_shipping")); err != nil {
		return f, invalidParam("exclude_shipping", err)
	}

	if f.WaiverOnly {
		f.ExcludeWaiver = false
	}
	if f.InsuranceOnly {
		f.ExcludeInsurance = false
	}
	if f.DeliveryOnly {
		f.ExcludeDelivery = false
	}

	if v := q.Get("date_range"); v != "" {
		dr, err := enums.ParseDateRange(v)
		if err != nil {
			return f, invalidParam("date_range", err)
		}
		f.DateRange = dr
	}
	if v := q.Get("start_date"); v != "" {
		ts, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return f, invalidParam("start_date", err)
		}
		f.StartDate = &ts
	}
	if v := q.Get("end_date"); v != "" {
		ts, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return f, invalidParam("end_date", err)
		}
		f.EndDate = &ts
	}

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// parseLimit reads the optional top-N limit; zero means use the
// configured default.
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 1 {
		return 0, errors.New(errors.CodeValidation, "limit must be a positive integer")
	}
	return limit, nil
}

func parseBoolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func invalidParam(name string, err error) error {
	return errors.Wrap(errors.CodeValidation, err, fmt.Sprintf("invalid %s parameter", name))
}
