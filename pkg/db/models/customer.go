package models

import (
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is the quoting party together with its per-family overrides.
type Customer struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CompanyName    string                `gorm:"column:company_name;size:200;not null"`
	Email          *string               `gorm:"column:email;size:254"`
	BillingAddress types.BillingAddress  `gorm:"column:billing_address;type:jsonb;not null"`
	DoorDefaults   types.DoorOverrides   `gorm:"column:door_defaults;type:jsonb;not null"`
	DrawerDefaults types.DrawerOverrides `gorm:"column:drawer_defaults;type:jsonb;not null"`
	Adjustments    *CustomerAdjustments  `gorm:"foreignKey:CustomerID"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CustomerAdjustments holds the discount, surcharge and shipping terms.
type CustomerAdjustments struct {
	CustomerID     uuid.UUID            `gorm:"column:customer_id;type:uuid;primaryKey"`
	DiscountType   enums.AdjustmentType `gorm:"column:discount_type;size:10;not null;default:'PERCENT'"`
	DiscountValue  decimal.Decimal      `gorm:"column:discount_value;type:numeric(10,2);not null;default:0"`
	SurchargeType  enums.AdjustmentType `gorm:"column:surcharge_type;size:10;not null;default:'PERCENT'"`
	SurchargeValue decimal.Decimal      `gorm:"column:surcharge_value;type:numeric(10,2);not null;default:0"`
	ShippingType   enums.AdjustmentType `gorm:"column:shipping_type;size:10;not null;default:'FIXED'"`
	ShippingValue  decimal.Decimal      `gorm:"column:shipping_value;type:numeric(10,2);not null;default:0"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerAdjustments) TableName() string { return "customer_adjustments" }

var hundred = decimal.NewFromInt(100)

// Adjustment is one typed discount, surcharge or shipping term.
type Adjustment struct {
	Type  enums.AdjustmentType
	Value decimal.Decimal
}

// Amount applies the adjustment to base, rounded to cents.
func (a Adjustment) Amount(base decimal.Decimal) decimal.Decimal {
	if a.Type == enums.AdjustmentTypePercent {
		return base.Mul(a.Value).Div(hundred).Round(2)
	}
	return a.Value.Round(2)
}

// Format renders the adjustment for display, e.g. "15%" or "$30.00".
func (a Adjustment) Format() string {
	if a.Type == enums.AdjustmentTypePercent {
		return a.Value.String() + "%"
	}
	return "$" + a.Value.StringFixed(2)
}

func (c CustomerAdjustments) Discount() Adjustment {
	return Adjustment{Type: c.DiscountType, Value: c.DiscountValue}
}

func (c CustomerAdjustments) Surcharge() Adjustment {
	return Adjustment{Type: c.SurchargeType, Value: c.SurchargeValue}
}

func (c CustomerAdjustments) Shipping() Adjustment {
	return Adjustment{Type: c.ShippingType, Value: c.ShippingValue}
}
