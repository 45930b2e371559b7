package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RailDefaults is the singleton row holding shop-wide door rail sizes.
type RailDefaults struct {
	ID               uint            `gorm:"column:id;primaryKey"`
	RailTop          decimal.Decimal `gorm:"column:rail_top;type:numeric(6,3);not null"`
	RailBottom       decimal.Decimal `gorm:"column:rail_bottom;type:numeric(6,3);not null"`
	RailLeft         decimal.Decimal `gorm:"column:rail_left;type:numeric(6,3);not null"`
	RailRight        decimal.Decimal `gorm:"column:rail_right;type:numeric(6,3);not null"`
	InteriorRailSize decimal.Decimal `gorm:"column:interior_rail_size;type:numeric(6,3);not null"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (RailDefaults) TableName() string { return "rail_defaults" }

// DrawerSettings is the singleton row holding drawer add-on charges.
type DrawerSettings struct {
	ID               uint            `gorm:"column:id;primaryKey"`
	UndermountCharge decimal.Decimal `gorm:"column:undermount_charge;type:numeric(10,2);not null;default:0"`
	FinishCharge     decimal.Decimal `gorm:"column:finish_charge;type:numeric(10,2);not null;default:0"`
	SurchargeWidth   decimal.Decimal `gorm:"column:surcharge_width;type:numeric(8,3);not null;default:0"`
	SurchargeDepth   decimal.Decimal `gorm:"column:surcharge_depth;type:numeric(8,3);not null;default:0"`
	SurchargePercent decimal.Decimal `gorm:"column:surcharge_percent;type:numeric(5,2);not null;default:0"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (DrawerSettings) TableName() string { return "drawer_settings" }
