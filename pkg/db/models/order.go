package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a quote or confirmed order with its priced line items.
type Order struct {
	ID              uint                 `gorm:"column:id;primaryKey"`
	OrderNumber     *string              `gorm:"column:order_number;size:32;uniqueIndex"`
	CustomerID      uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	IsQuote         bool                 `gorm:"column:is_quote;not null"`
	OrderDate       time.Time            `gorm:"column:order_date;not null"`
	BillingAddress  types.BillingAddress `gorm:"column:billing_address;type:jsonb;not null"`
	Notes           string               `gorm:"column:notes;type:text;not null;default:''"`
	DiscountAmount  decimal.Decimal      `gorm:"column:discount_amount;type:numeric(10,2);not null;default:0"`
	SurchargeAmount decimal.Decimal      `gorm:"column:surcharge_amount;type:numeric(10,2);not null;default:0"`
	ShippingAmount  decimal.Decimal      `gorm:"column:shipping_amount;type:numeric(10,2);not null;default:0"`
	TaxAmount       decimal.Decimal      `gorm:"column:tax_amount;type:numeric(10,2);not null;default:0"`
	Subtotal        decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null;default:0"`
	Total           decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	DoorItems       []DoorLineItem       `gorm:"foreignKey:OrderID"`
	DrawerItems     []DrawerLineItem     `gorm:"foreignKey:OrderID"`
	GenericItems    []GenericLineItem    `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

func (o Order) Kind() enums.OrderKind {
	if o.IsQuote {
		return enums.OrderKindQuote
	}
	return enums.OrderKindConfirmed
}

// NumberFor formats the public order number, e.g. QTE-20250410-000042.
func NumberFor(kind enums.OrderKind, date time.Time, id uint) string {
	prefix := "ORD"
	if kind == enums.OrderKindQuote {
		prefix = "QTE"
	}
	return fmt.Sprintf("%s-%s-%06d", prefix, date.Format("20060102"), id)
}

// Items returns every line item, doors first, then drawers, then generic
// items, each group in position order.
func (o Order) Items() []LineItem {
	items := make([]LineItem, 0, len(o.DoorItems)+len(o.DrawerItems)+len(o.GenericItems))
	for i := range o.DoorItems {
		items = append(items, &o.DoorItems[i])
	}
	for i := range o.DrawerItems {
		items = append(items, &o.DrawerItems[i])
	}
	for i := range o.GenericItems {
		items = append(items, &o.GenericItems[i])
	}
	sort.SliceStable(items, func(a, b int) bool {
		ta, tb := itemTypeRank(items[a].ItemType()), itemTypeRank(items[b].ItemType())
		if ta != tb {
			return ta < tb
		}
		return items[a].LinePosition() < items[b].LinePosition()
	})
	return items
}

func itemTypeRank(t enums.ItemType) int {
	switch t {
	case enums.ItemTypeDoor:
		return 0
	case enums.ItemTypeDrawer:
		return 1
	default:
		return 2
	}
}
