package reports

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trackside-rentals/reporting-backend/pkg/enums"
	"github.com/trackside-rentals/reporting-backend/pkg/errors"
)

// FilterAll is the wildcard value for the id-based dimensions.
const FilterAll = "all"

// Item type scoping for the ItemType filter dimension. Unlike the
// exclude/only toggles this restricts the whole report to one line of
// business.
const (
	ItemScopeAll    = "all"
	ItemScopeRental = "rental"
	ItemScopeRetail = "retail"
)

// Filters is the single filter model shared by every report. The
// exclude/only pairs are mutually exclusive per dimension; the producing
// layer (query params, export requests) must resolve conflicts before a
// Filters value is built, and Validate rejects any pair that slipped
// through.
type Filters struct {
	Store    string `validate:"omitempty"`
	ItemType string `validate:"omitempty,oneof=all rental retail"`
	Category string `validate:"omitempty"`
	Product  string `validate:"omitempty"`

	ExcludeWaiver    bool `validate:"excluded_with=WaiverOnly"`
	WaiverOnly       bool
	ExcludeInsurance bool `validate:"excluded_with=InsuranceOnly"`
	InsuranceOnly    bool
	ExcludeDelivery  bool `validate:"excluded_with=DeliveryOnly"`
	DeliveryOnly     bool

	// ExcludeShipping drops shipping cost from every computed amount.
	// It never filters rows out.
	ExcludeShipping bool

	DateRange enums.DateRange `validate:"omitempty"`
	StartDate *time.Time
	EndDate   *time.Time
}

// DefaultFilters is the unfiltered view: every dimension wide open, all
// toggles off, no date constraint.
func DefaultFilters() Filters {
	return Filters{
		Store:     FilterAll,
		ItemType:  ItemScopeAll,
		Category:  FilterAll,
		Product:   FilterAll,
		DateRange: enums.DateRangeAll,
	}
}

var filterValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate rejects contradictory filter states. Exclude/only conflicts
// are construction-time errors, not something resolved downstream.
func (f Filters) Validate() error {
	if err := filterValidator.Struct(f); err != nil {
		return errors.Wrap(errors.CodeValidation, err, "conflicting filter combination")
	}
	if f.DateRange != "" && !f.DateRange.IsValid() {
		return errors.New(errors.CodeValidation, fmt.Sprintf("unknown date range %q", f.DateRange))
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return errors.New(errors.CodeValidation, "end date precedes start date")
	}
	return nil
}

func (f Filters) storeScoped() bool {
	return f.Store != "" && f.Store != FilterAll
}

func (f Filters) categoryScoped() bool {
	return f.Category != "" && f.Category != FilterAll
}

func (f Filters) productScoped() bool {
	return f.Product != "" && f.Product != FilterAll
}

func (f Filters) itemTypeScoped() bool {
	return f.ItemType != "" && f.ItemType != ItemScopeAll
}
