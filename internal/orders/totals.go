package orders

import (
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the order-level aggregation of line items and adjustments.
type Totals struct {
	ItemTotal decimal.Decimal
	Discount  decimal.Decimal
	Surcharge decimal.Decimal
	Shipping  decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// ItemTotal sums the total price of every line item on the order.
func ItemTotal(order *models.Order) decimal.Decimal {
	sum := decimal.Zero
	if order == nil {
		return sum
	}
	for _, item := range order.Items() {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}

// CalculateTotals recomputes the order amounts from its items and the
// customer's adjustments and writes them onto order. Discount, surcharge and
// shipping are each taken against the item total; tax is the order's stored
// tax and is added last.
func CalculateTotals(order *models.Order, adj *models.CustomerAdjustments) (Totals, error) {
	if order == nil {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if adj == nil {
		return Totals{}, pkgerrors.New(pkgerrors.CodeMissingDefaults, "customer adjustments are not configured")
	}
	terms := []struct {
		name string
		adj  models.Adjustment
	}{
		{"discount", adj.Discount()},
		{"surcharge", adj.Surcharge()},
		{"shipping", adj.Shipping()},
	}
	for _, term := range terms {
		if err := checkAdjustment(term.name, term.adj); err != nil {
			return Totals{}, err
		}
	}

	t := Totals{ItemTotal: ItemTotal(order), Tax: order.TaxAmount}
	t.Discount = terms[0].adj.Amount(t.ItemTotal)
	t.Surcharge = terms[1].adj.Amount(t.ItemTotal)
	t.Shipping = terms[2].adj.Amount(t.ItemTotal)
	t.Subtotal = t.ItemTotal.Sub(t.Discount).Add(t.Surcharge).Add(t.Shipping)
	t.Total = t.Subtotal.Add(t.Tax)

	order.DiscountAmount = t.Discount
	order.SurchargeAmount = t.Surcharge
	order.ShippingAmount = t.Shipping
	order.Subtotal = t.Subtotal
	order.Total = t.Total
	return t, nil
}

func checkAdjustment(name string, adj models.Adjustment) error {
	if !adj.Type.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s type %q is invalid", name, adj.Type)
	}
	if adj.Value.IsNegative() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s cannot be negative", name)
	}
	if adj.Type == enums.AdjustmentTypePercent && adj.Value.GreaterThan(hundred) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s percentage must be between 0 and 100", name)
	}
	return nil
}
