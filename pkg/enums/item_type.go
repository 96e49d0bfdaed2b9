package enums

import "fmt"

// ItemType tags an order line item with the revenue source it represents.
// Values outside the known set are reported under the fees/other bucket.
type ItemType string

const (
	ItemTypeRetail          ItemType = "retail"
	ItemTypeRental          ItemType = "rental"
	ItemTypeDelivery        ItemType = "delivery"
	ItemTypeDamageWaiver    ItemType = "damage_waiver"
	ItemTypeTrackInsurance  ItemType = "thrown_track_insurance"
	ItemTypePrepaidFuel     ItemType = "prepaid_fuel"
	ItemTypePrepaidCleaning ItemType = "prepaid_cleaning"
	ItemTypeFee             ItemType = "fee"
)

var validItemTypes = []ItemType{
	ItemTypeRetail,
	ItemTypeRental,
	ItemTypeDelivery,
	ItemTypeDamageWaiver,
	ItemTypeTrackInsurance,
	ItemTypePrepaidFuel,
	ItemTypePrepaidCleaning,
	ItemTypeFee,
}

// String implements fmt.Stringer.
func (i ItemType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemType.
func (i ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}
