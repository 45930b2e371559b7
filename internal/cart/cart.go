package cart

import (
	"time"

	"github.com/doorsanddrawers/quote-backend/internal/pricing"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the session-held order in progress.
type Cart struct {
	SessionID      string                 `json:"session_id"`
	CustomerID     *uuid.UUID             `json:"customer_id,omitempty"`
	BillingAddress *types.BillingAddress  `json:"billing_address,omitempty"`
	Items          []pricing.LineItemSpec `json:"items"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Header carries the order-level fields supplied at finalize.
type Header struct {
	CustomerID     uuid.UUID             `json:"customer_id"`
	IsQuote        bool                  `json:"is_quote"`
	OrderDate      time.Time             `json:"order_date"`
	BillingAddress *types.BillingAddress `json:"billing_address,omitempty"`
	Notes          string                `json:"notes,omitempty" validate:"max=5000"`
	TaxAmount      decimal.Decimal       `json:"tax_amount" validate:"decimal_gte0"`
}

// Preview is the priced view of an entry that was just added.
type Preview struct {
	Index int                  `json:"index"`
	Spec  pricing.LineItemSpec `json:"spec"`
	Quote pricing.Quote        `json:"quote"`
}
