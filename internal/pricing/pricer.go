package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/doorsanddrawers/quote-backend/internal/catalog"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Quote is the priced result for one line item.
type Quote struct {
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Mode      enums.PriceMode
}

// Pricer computes per-unit prices from catalog references and drawer charges.
type Pricer struct {
	catalog catalog.Repository
	drawer  models.DrawerSettings
	logg    *logger.Logger
}

// NewPricer binds a pricer to a catalog view and the global drawer charges.
func NewPricer(cat catalog.Repository, drawer models.DrawerSettings, logg *logger.Logger) (*Pricer, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Pricer{catalog: cat, drawer: drawer, logg: logg}, nil
}

// Price returns the unit and total price for spec. Catalog references must
// exist in every mode. A valid CUSTOM price replaces the formula, which is
// then not evaluated; a CUSTOM price that is not a positive decimal falls
// back to the calculated price. A calculated unit price must be positive.
func (p *Pricer) Price(ctx context.Context, spec LineItemSpec) (Quote, error) {
	switch spec.Type {
	case enums.ItemTypeDoor:
		if spec.Door == nil {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "door payload required")
		}
	case enums.ItemTypeDrawer:
		if spec.Drawer == nil {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "drawer payload required")
		}
	case enums.ItemTypeOther:
		return otherQuote(spec)
	default:
		return Quote{}, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown item type %q", spec.Type)
	}

	if manual, ok := p.customUnit(ctx, spec); ok {
		var err error
		if spec.Type == enums.ItemTypeDoor {
			_, _, err = p.doorRefs(ctx, *spec.Door)
		} else {
			_, _, err = p.drawerRefs(ctx, *spec.Drawer)
		}
		if err != nil {
			return Quote{}, err
		}
		return newQuote(manual, spec.Quantity, enums.PriceModeCustom), nil
	}

	var (
		unit decimal.Decimal
		err  error
	)
	if spec.Type == enums.ItemTypeDoor {
		unit, err = p.DoorUnitPrice(ctx, *spec.Door)
	} else {
		unit, err = p.DrawerUnitPrice(ctx, *spec.Drawer)
	}
	if err != nil {
		return Quote{}, err
	}
	if !unit.IsPositive() {
		return Quote{}, pkgerrors.Newf(pkgerrors.CodeValidation, "calculated %s unit price must be positive", spec.Type).
			WithDetails(map[string]string{"item_type": spec.Type.String(), "unit_price": unit.StringFixed(2)})
	}
	return newQuote(unit, spec.Quantity, enums.PriceModeCalculated), nil
}

// customUnit returns the manual price when the item asks for one and it is a
// positive decimal.
func (p *Pricer) customUnit(ctx context.Context, spec LineItemSpec) (decimal.Decimal, bool) {
	if !spec.CustomPrice {
		return decimal.Zero, false
	}
	manual, ok := parsePositive(spec.PricePerUnit)
	if !ok {
		p.logg.Warn(p.logg.WithFields(ctx, map[string]any{
			"item_type":      spec.Type.String(),
			"price_per_unit": spec.PricePerUnit,
		}), "invalid custom price, using calculated price")
	}
	return manual, ok
}

// DoorUnitPrice is style price plus two panels of the wood stock, using the
// flat panel price when the style's panel type calls for it.
func (p *Pricer) DoorUnitPrice(ctx context.Context, door DoorSpec) (decimal.Decimal, error) {
	style, wood, err := p.doorRefs(ctx, door)
	if err != nil {
		return decimal.Zero, err
	}
	component := wood.ComponentPrice(style.PanelType.UseFlatPanelPrice)
	return style.Price.Add(component.Mul(two)).Round(2), nil
}

func (p *Pricer) doorRefs(ctx context.Context, door DoorSpec) (*models.Style, *models.WoodStock, error) {
	style, err := p.catalog.Style(ctx, door.StyleID)
	if err != nil {
		return nil, nil, err
	}
	wood, err := p.catalog.WoodStock(ctx, door.WoodStockID)
	if err != nil {
		return nil, nil, err
	}
	if door.EdgeProfileID != nil {
		if _, err := p.catalog.EdgeProfile(ctx, *door.EdgeProfileID); err != nil {
			return nil, nil, err
		}
	}
	if door.PanelRiseID != nil {
		if _, err := p.catalog.PanelRise(ctx, *door.PanelRiseID); err != nil {
			return nil, nil, err
		}
	}
	return style, wood, nil
}

// DrawerUnitPrice is wood plus bottom plus the enabled global add-on charges.
func (p *Pricer) DrawerUnitPrice(ctx context.Context, drawer DrawerSpec) (decimal.Decimal, error) {
	wood, bottom, err := p.drawerRefs(ctx, drawer)
	if err != nil {
		return decimal.Zero, err
	}
	unit := wood.Price.Add(bottom.Price)
	if flag(drawer.Undermount) {
		unit = unit.Add(p.drawer.UndermountCharge)
	}
	if flag(drawer.Finishing) {
		unit = unit.Add(p.drawer.FinishCharge)
	}
	return unit.Round(2), nil
}

func (p *Pricer) drawerRefs(ctx context.Context, drawer DrawerSpec) (*models.DrawerWoodStock, *models.DrawerBottomSize, error) {
	wood, err := p.catalog.DrawerWoodStock(ctx, drawer.WoodStockID)
	if err != nil {
		return nil, nil, err
	}
	bottom, err := p.catalog.DrawerBottomSize(ctx, drawer.BottomID)
	if err != nil {
		return nil, nil, err
	}
	if drawer.EdgeTypeID != nil {
		if _, err := p.catalog.DrawerEdgeType(ctx, *drawer.EdgeTypeID); err != nil {
			return nil, nil, err
		}
	}
	return wood, bottom, nil
}

func otherQuote(spec LineItemSpec) (Quote, error) {
	unit, ok := parsePositive(spec.PricePerUnit)
	if !ok {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit must be a positive decimal").
			WithDetails(map[string]string{"price_per_unit": spec.PricePerUnit})
	}
	mode := enums.PriceModeCalculated
	if spec.CustomPrice {
		mode = enums.PriceModeCustom
	}
	return newQuote(unit, spec.Quantity, mode), nil
}

func newQuote(unit decimal.Decimal, quantity int, mode enums.PriceMode) Quote {
	return Quote{
		UnitPrice: unit,
		Total:     unit.Mul(decimal.NewFromInt(int64(quantity))),
		Mode:      mode,
	}
}

func parsePositive(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d.Round(2), true
}
