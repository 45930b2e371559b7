package enums

import (
	"fmt"
	"strings"
)

// PriceMode selects computed or manually entered unit pricing.
type PriceMode string

const (
	PriceModeCalculated PriceMode = "calculated"
	PriceModeCustom     PriceMode = "custom"
)

var validPriceModes = []PriceMode{
	PriceModeCalculated,
	PriceModeCustom,
}

// String implements fmt.Stringer.
func (m PriceMode) String() string {
	return string(m)
}

// IsValid reports whether the value is known.
func (m PriceMode) IsValid() bool {
	for _, candidate := range validPriceModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePriceMode converts raw input into a PriceMode.
func ParsePriceMode(value string) (PriceMode, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPriceModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price mode %q", value)
}
