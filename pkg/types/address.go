package types

import (
	"database/sql/driver"
	"strings"
)

// BillingAddress is the billing snapshot copied onto an order at finalize.
type BillingAddress struct {
	Name       string `json:"name" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Phone      string `json:"phone,omitempty"`
}

// Matches reports whether two snapshots describe the same billing party.
// Comparison ignores surrounding whitespace and letter case.
func (a BillingAddress) Matches(other BillingAddress) bool {
	pairs := [][2]string{
		{a.Name, other.Name},
		{a.Line1, other.Line1},
		{a.Line2, other.Line2},
		{a.City, other.City},
		{a.State, other.State},
		{a.PostalCode, other.PostalCode},
	}
	for _, p := range pairs {
		if !strings.EqualFold(strings.TrimSpace(p[0]), strings.TrimSpace(p[1])) {
			return false
		}
	}
	return true
}

// Value stores the snapshot as a JSON document.
func (a BillingAddress) Value() (driver.Value, error) {
	return jsonValue(a)
}

// Scan decodes the JSON document written by Value.
func (a *BillingAddress) Scan(value any) error {
	*a = BillingAddress{}
	return scanJSON(value, a)
}
