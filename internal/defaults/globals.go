package defaults

import (
	"context"
	"errors"

	"github.com/doorsanddrawers/quote-backend/internal/repo"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	fallbackRail         = decimal.RequireFromString("2.500")
	fallbackInteriorRail = decimal.RequireFromString("1.000")
)

// Globals is the shop-wide configuration layered under customer overrides.
type Globals struct {
	Rails  models.RailDefaults
	Drawer models.DrawerSettings
}

// Rail returns the global value for a rail field.
func (g Globals) Rail(field string) (decimal.Decimal, bool) {
	switch field {
	case types.DoorFieldRailTop:
		return g.Rails.RailTop, true
	case types.DoorFieldRailBottom:
		return g.Rails.RailBottom, true
	case types.DoorFieldRailLeft:
		return g.Rails.RailLeft, true
	case types.DoorFieldRailRight:
		return g.Rails.RailRight, true
	case types.DoorFieldInteriorRailSize:
		return g.Rails.InteriorRailSize, true
	}
	return decimal.Zero, false
}

// GlobalsRepository reads the global singletons.
type GlobalsRepository interface {
	WithTx(tx *gorm.DB) GlobalsRepository
	RailDefaults(ctx context.Context) (*models.RailDefaults, error)
	DrawerSettings(ctx context.Context) (*models.DrawerSettings, error)
}

type globalsRepository struct {
	base repo.Base
}

// NewGlobalsRepository builds a repository over the settings tables.
func NewGlobalsRepository(db *gorm.DB) GlobalsRepository {
	return &globalsRepository{base: repo.NewBase(db)}
}

func (r *globalsRepository) WithTx(tx *gorm.DB) GlobalsRepository {
	if tx == nil {
		return r
	}
	return &globalsRepository{base: r.base.WithTx(tx)}
}

// RailDefaults returns the singleton, creating it with fallback sizes on
// first use.
func (r *globalsRepository) RailDefaults(ctx context.Context) (*models.RailDefaults, error) {
	var rails models.RailDefaults
	err := r.base.DB(ctx).
		Order("id ASC").
		Attrs(models.RailDefaults{
			RailTop:          fallbackRail,
			RailBottom:       fallbackRail,
			RailLeft:         fallbackRail,
			RailRight:        fallbackRail,
			InteriorRailSize: fallbackInteriorRail,
		}).
		FirstOrCreate(&rails).Error
	if err != nil {
		return nil, err
	}
	return &rails, nil
}

// DrawerSettings returns the singleton or a zero-charge value when absent.
func (r *globalsRepository) DrawerSettings(ctx context.Context) (*models.DrawerSettings, error) {
	var settings models.DrawerSettings
	err := r.base.DB(ctx).Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DrawerSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// LoadGlobals reads both singletons through r.
func LoadGlobals(ctx context.Context, r GlobalsRepository) (Globals, error) {
	rails, err := r.RailDefaults(ctx)
	if err != nil {
		return Globals{}, err
	}
	drawer, err := r.DrawerSettings(ctx)
	if err != nil {
		return Globals{}, err
	}
	return Globals{Rails: *rails, Drawer: *drawer}, nil
}
