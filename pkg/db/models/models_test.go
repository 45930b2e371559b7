package models

import (
	"testing"
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestNumberFor(t *testing.T) {
	date := time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC)
	if got := NumberFor(enums.OrderKindQuote, date, 42); got != "QTE-20250410-000042" {
		t.Fatalf("unexpected quote number %s", got)
	}
	if got := NumberFor(enums.OrderKindConfirmed, date, 7); got != "ORD-20250410-000007" {
		t.Fatalf("unexpected order number %s", got)
	}
}

func TestLineItemTotalPrice(t *testing.T) {
	item := &DoorLineItem{LineItemBase: LineItemBase{Quantity: 3, PricePerUnit: decimal.RequireFromString("25.00")}}
	if !item.TotalPrice().Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("expected 75.00 got %s", item.TotalPrice())
	}
}

func TestDoorSquareFeet(t *testing.T) {
	item := &DoorLineItem{Width: decimal.RequireFromString("12"), Height: decimal.RequireFromString("30")}
	if got := item.SquareFeet().StringFixed(2); got != "2.50" {
		t.Fatalf("expected 2.50 got %s", got)
	}
}

func TestOrderItemsOrderedByTypeThenPosition(t *testing.T) {
	order := Order{
		GenericItems: []GenericLineItem{{LineItemBase: LineItemBase{Position: 0}}},
		DrawerItems:  []DrawerLineItem{{LineItemBase: LineItemBase{Position: 1}}},
		DoorItems: []DoorLineItem{
			{LineItemBase: LineItemBase{Position: 4}},
			{LineItemBase: LineItemBase{Position: 2}},
		},
	}
	items := order.Items()
	want := []struct {
		typ enums.ItemType
		pos int
	}{
		{enums.ItemTypeDoor, 2},
		{enums.ItemTypeDoor, 4},
		{enums.ItemTypeDrawer, 1},
		{enums.ItemTypeOther, 0},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items got %d", len(want), len(items))
	}
	for i, w := range want {
		if items[i].ItemType() != w.typ || items[i].LinePosition() != w.pos {
			t.Fatalf("item %d: expected %s@%d got %s@%d", i, w.typ, w.pos, items[i].ItemType(), items[i].LinePosition())
		}
	}
}

func TestAdjustmentAmountAndFormat(t *testing.T) {
	base := decimal.RequireFromString("200.00")
	percent := Adjustment{Type: enums.AdjustmentTypePercent, Value: decimal.RequireFromString("15")}
	if got := percent.Amount(base).StringFixed(2); got != "30.00" {
		t.Fatalf("expected 30.00 got %s", got)
	}
	if percent.Format() != "15%" {
		t.Fatalf("unexpected format %s", percent.Format())
	}
	fixed := Adjustment{Type: enums.AdjustmentTypeFixed, Value: decimal.RequireFromString("30")}
	if got := fixed.Amount(base).StringFixed(2); got != "30.00" {
		t.Fatalf("expected 30.00 got %s", got)
	}
	if fixed.Format() != "$30.00" {
		t.Fatalf("unexpected format %s", fixed.Format())
	}
}
