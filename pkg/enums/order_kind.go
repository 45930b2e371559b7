package enums

import (
	"fmt"
	"strings"
)

// OrderKind separates quotes from confirmed orders.
type OrderKind string

const (
	OrderKindQuote     OrderKind = "quote"
	OrderKindConfirmed OrderKind = "confirmed"
)

var validOrderKinds = []OrderKind{
	OrderKindQuote,
	OrderKindConfirmed,
}

// String implements fmt.Stringer.
func (k OrderKind) String() string {
	return string(k)
}

// IsValid reports whether the value is known.
func (k OrderKind) IsValid() bool {
	for _, candidate := range validOrderKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseOrderKind converts raw input into an OrderKind.
func ParseOrderKind(value string) (OrderKind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validOrderKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order kind %q", value)
}
