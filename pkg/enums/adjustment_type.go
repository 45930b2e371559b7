package enums

import (
	"fmt"
	"strings"
)

// AdjustmentType controls how a discount, surcharge or shipping value is applied.
type AdjustmentType string

const (
	AdjustmentTypePercent AdjustmentType = "PERCENT"
	AdjustmentTypeFixed   AdjustmentType = "FIXED"
)

var validAdjustmentTypes = []AdjustmentType{
	AdjustmentTypePercent,
	AdjustmentTypeFixed,
}

// String implements fmt.Stringer.
func (a AdjustmentType) String() string {
	return string(a)
}

// IsValid reports whether the value is known.
func (a AdjustmentType) IsValid() bool {
	for _, candidate := range validAdjustmentTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdjustmentType converts raw input into an AdjustmentType.
func ParseAdjustmentType(value string) (AdjustmentType, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validAdjustmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment type %q", value)
}
