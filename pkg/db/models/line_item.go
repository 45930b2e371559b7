package models

import (
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

var squareInches = decimal.NewFromInt(144)

// LineItem is the pricing contract shared by every persisted item type.
type LineItem interface {
	ItemType() enums.ItemType
	UnitPrice() decimal.Decimal
	Qty() int
	TotalPrice() decimal.Decimal
	LinePosition() int
}

// LineItemBase carries the columns common to all line item tables.
type LineItemBase struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	OrderID      uint            `gorm:"column:order_id;not null;index"`
	Position     int             `gorm:"column:position;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:numeric(10,2);not null"`
	CustomPrice  bool            `gorm:"column:custom_price;not null;default:false"`
	Notes        string          `gorm:"column:notes;type:text;not null;default:''"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (b *LineItemBase) UnitPrice() decimal.Decimal { return b.PricePerUnit }
func (b *LineItemBase) Qty() int { return b.Quantity }
func (b *LineItemBase) LinePosition() int { return b.Position }

func (b *LineItemBase) TotalPrice() decimal.Decimal {
	return b.PricePerUnit.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

type DoorLineItem struct {
	LineItemBase
	WoodStockID      uint            `gorm:"column:wood_stock_id;not null;index"`
	EdgeProfileID    *uint           `gorm:"column:edge_profile_id"`
	PanelRiseID      *uint           `gorm:"column:panel_rise_id"`
	StyleID          uint            `gorm:"column:style_id;not null;index"`
	Width            decimal.Decimal `gorm:"column:width;type:numeric(8,3);not null"`
	Height           decimal.Decimal `gorm:"column:height;type:numeric(8,3);not null"`
	RailTop          decimal.Decimal `gorm:"column:rail_top;type:numeric(6,3);not null"`
	RailBottom       decimal.Decimal `gorm:"column:rail_bottom;type:numeric(6,3);not null"`
	RailLeft         decimal.Decimal `gorm:"column:rail_left;type:numeric(6,3);not null"`
	RailRight        decimal.Decimal `gorm:"column:rail_right;type:numeric(6,3);not null"`
	InteriorRailSize decimal.Decimal `gorm:"column:interior_rail_size;type:numeric(6,3);not null"`
	SandEdge         bool            `gorm:"column:sand_edge;not null;default:false"`
	SandCrossGrain   bool            `gorm:"column:sand_cross_grain;not null;default:false"`
}

func (DoorLineItem) TableName() string { return "door_line_items" }

func (d *DoorLineItem) ItemType() enums.ItemType { return enums.ItemTypeDoor }

// SquareFeet is the face area of one door, rounded to hundredths.
func (d *DoorLineItem) SquareFeet() decimal.Decimal {
	return d.Width.Mul(d.Height).Div(squareInches).Round(2)
}

type DrawerLineItem struct {
	LineItemBase
	WoodStockID uint            `gorm:"column:wood_stock_id;not null;index"`
	EdgeTypeID  *uint           `gorm:"column:edge_type_id"`
	BottomID    uint            `gorm:"column:bottom_id;not null;index"`
	Width       decimal.Decimal `gorm:"column:width;type:numeric(8,3);not null"`
	Height      decimal.Decimal `gorm:"column:height;type:numeric(8,3);not null"`
	Depth       decimal.Decimal `gorm:"column:depth;type:numeric(8,3);not null"`
	Undermount  bool            `gorm:"column:undermount;not null;default:false"`
	Finishing   bool            `gorm:"column:finishing;not null;default:false"`
}

func (DrawerLineItem) TableName() string { return "drawer_line_items" }

func (d *DrawerLineItem) ItemType() enums.ItemType { return enums.ItemTypeDrawer }

// GenericLineItem is a miscellaneous item priced by hand.
type GenericLineItem struct {
	LineItemBase
	Name        string `gorm:"column:name;size:200;not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
}

func (GenericLineItem) TableName() string { return "generic_line_items" }

func (g *GenericLineItem) ItemType() enums.ItemType { return enums.ItemTypeOther }
