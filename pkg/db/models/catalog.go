package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WoodStock is a door material priced per panel style.
type WoodStock struct {
	ID               uint            `gorm:"column:id;primaryKey"`
	Name             string          `gorm:"column:name;size:100;not null;uniqueIndex"`
	RaisedPanelPrice decimal.Decimal `gorm:"column:raised_panel_price;type:numeric(10,2);not null"`
	FlatPanelPrice   decimal.Decimal `gorm:"column:flat_panel_price;type:numeric(10,2);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (WoodStock) TableName() string { return "wood_stocks" }

// ComponentPrice returns the per-panel price for the panel construction.
func (w WoodStock) ComponentPrice(flatPanel bool) decimal.Decimal {
	if flatPanel {
		return w.FlatPanelPrice
	}
	return w.RaisedPanelPrice
}

type EdgeProfile struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EdgeProfile) TableName() string { return "edge_profiles" }

type PanelRise struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PanelRise) TableName() string { return "panel_rises" }

// PanelType decides which wood stock price column a style uses.
type PanelType struct {
	ID                uint            `gorm:"column:id;primaryKey"`
	Name              string          `gorm:"column:name;size:100;not null;uniqueIndex"`
	UseFlatPanelPrice bool            `gorm:"column:use_flat_panel_price;not null;default:false"`
	SurchargeWidth    decimal.Decimal `gorm:"column:surcharge_width;type:numeric(8,3);not null;default:0"`
	SurchargeHeight   decimal.Decimal `gorm:"column:surcharge_height;type:numeric(8,3);not null;default:0"`
	SurchargePercent  decimal.Decimal `gorm:"column:surcharge_percent;type:numeric(5,2);not null;default:0"`
	MinimumSqFt       decimal.Decimal `gorm:"column:minimum_sq_ft;type:numeric(6,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (PanelType) TableName() string { return "panel_types" }

type Style struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	Name         string          `gorm:"column:name;size:100;not null;uniqueIndex"`
	PanelTypeID  uint            `gorm:"column:panel_type_id;not null;index"`
	PanelType    PanelType       `gorm:"foreignKey:PanelTypeID"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	PanelsAcross int             `gorm:"column:panels_across;not null;default:1"`
	PanelsDown   int             `gorm:"column:panels_down;not null;default:1"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Style) TableName() string { return "styles" }

type DrawerWoodStock struct {
	ID        uint            `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name;size:100;not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (DrawerWoodStock) TableName() string { return "drawer_wood_stocks" }

type DrawerEdgeType struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (DrawerEdgeType) TableName() string { return "drawer_edge_types" }

type DrawerBottomSize struct {
	ID        uint            `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name;size:100;not null;uniqueIndex"`
	Thickness decimal.Decimal `gorm:"column:thickness;type:numeric(5,3);not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (DrawerBottomSize) TableName() string { return "drawer_bottom_sizes" }
