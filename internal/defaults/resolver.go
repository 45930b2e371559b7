package defaults

import (
	"context"
	"fmt"
	"strings"

	"github.com/doorsanddrawers/quote-backend/internal/catalog"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// EffectiveDoor is a customer's door configuration after layering overrides
// over the globals. Nil selections and flags are unset.
type EffectiveDoor struct {
	WoodStock        *models.WoodStock
	EdgeProfile      *models.EdgeProfile
	PanelRise        *models.PanelRise
	Style            *models.Style
	RailTop          decimal.Decimal
	RailBottom       decimal.Decimal
	RailLeft         decimal.Decimal
	RailRight        decimal.Decimal
	InteriorRailSize decimal.Decimal
	SandEdge         *bool
	SandCrossGrain   *bool
}

// Fields returns the configuration keyed by override field name.
func (d EffectiveDoor) Fields() map[string]any {
	return map[string]any{
		types.DoorFieldWoodStock:        entityOrNil(d.WoodStock),
		types.DoorFieldEdgeProfile:      entityOrNil(d.EdgeProfile),
		types.DoorFieldPanelRise:        entityOrNil(d.PanelRise),
		types.DoorFieldStyle:            entityOrNil(d.Style),
		types.DoorFieldRailTop:          d.RailTop,
		types.DoorFieldRailBottom:       d.RailBottom,
		types.DoorFieldRailLeft:         d.RailLeft,
		types.DoorFieldRailRight:        d.RailRight,
		types.DoorFieldInteriorRailSize: d.InteriorRailSize,
		types.DoorFieldSandEdge:         boolOrNil(d.SandEdge),
		types.DoorFieldSandCrossGrain:   boolOrNil(d.SandCrossGrain),
	}
}

// EffectiveDrawer is a customer's drawer configuration plus the global charges.
type EffectiveDrawer struct {
	WoodStock        *models.DrawerWoodStock
	EdgeType         *models.DrawerEdgeType
	Bottom           *models.DrawerBottomSize
	Undermount       *bool
	Finishing        *bool
	UndermountCharge decimal.Decimal
	FinishCharge     decimal.Decimal
}

func (d EffectiveDrawer) Fields() map[string]any {
	return map[string]any{
		types.DrawerFieldWoodStock:  entityOrNil(d.WoodStock),
		types.DrawerFieldEdgeType:   entityOrNil(d.EdgeType),
		types.DrawerFieldBottom:     entityOrNil(d.Bottom),
		types.DrawerFieldUndermount: boolOrNil(d.Undermount),
		types.DrawerFieldFinishing:  boolOrNil(d.Finishing),
		"undermount_charge":         d.UndermountCharge,
		"finish_charge":             d.FinishCharge,
	}
}

// Resolver layers one customer's overrides over a loaded Globals value.
// Malformed or dangling override values fall back silently; only catalog
// storage failures are returned.
type Resolver struct {
	catalog catalog.Repository
	globals Globals
	logg    *logger.Logger
}

// NewResolver binds a resolver to a catalog view and a globals snapshot.
func NewResolver(cat catalog.Repository, globals Globals, logg *logger.Logger) (*Resolver, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Resolver{catalog: cat, globals: globals, logg: logg}, nil
}

func (r *Resolver) Globals() Globals {
	return r.globals
}

func (r *Resolver) Door(ctx context.Context, o types.DoorOverrides) (EffectiveDoor, error) {
	var (
		out EffectiveDoor
		err error
	)
	if out.WoodStock, err = resolveRef(ctx, r, types.DoorFieldWoodStock, o.WoodStock, r.catalog.WoodStock); err != nil {
		return EffectiveDoor{}, err
	}
	if out.EdgeProfile, err = resolveRef(ctx, r, types.DoorFieldEdgeProfile, o.EdgeProfile, r.catalog.EdgeProfile); err != nil {
		return EffectiveDoor{}, err
	}
	if out.PanelRise, err = resolveRef(ctx, r, types.DoorFieldPanelRise, o.PanelRise, r.catalog.PanelRise); err != nil {
		return EffectiveDoor{}, err
	}
	if out.Style, err = resolveRef(ctx, r, types.DoorFieldStyle, o.Style, r.catalog.Style); err != nil {
		return EffectiveDoor{}, err
	}
	out.RailTop = r.Rail(ctx, o, types.DoorFieldRailTop)
	out.RailBottom = r.Rail(ctx, o, types.DoorFieldRailBottom)
	out.RailLeft = r.Rail(ctx, o, types.DoorFieldRailLeft)
	out.RailRight = r.Rail(ctx, o, types.DoorFieldRailRight)
	out.InteriorRailSize = r.Rail(ctx, o, types.DoorFieldInteriorRailSize)
	out.SandEdge = resolveFlag(o.SandEdge)
	out.SandCrossGrain = resolveFlag(o.SandCrossGrain)
	return out, nil
}

func (r *Resolver) Drawer(ctx context.Context, o types.DrawerOverrides) (EffectiveDrawer, error) {
	var (
		out EffectiveDrawer
		err error
	)
	if out.WoodStock, err = resolveRef(ctx, r, types.DrawerFieldWoodStock, o.WoodStock, r.catalog.DrawerWoodStock); err != nil {
		return EffectiveDrawer{}, err
	}
	if out.EdgeType, err = resolveRef(ctx, r, types.DrawerFieldEdgeType, o.EdgeType, r.catalog.DrawerEdgeType); err != nil {
		return EffectiveDrawer{}, err
	}
	if out.Bottom, err = resolveRef(ctx, r, types.DrawerFieldBottom, o.Bottom, r.catalog.DrawerBottomSize); err != nil {
		return EffectiveDrawer{}, err
	}
	out.Undermount = resolveFlag(o.Undermount)
	out.Finishing = resolveFlag(o.Finishing)
	out.UndermountCharge = r.globals.Drawer.UndermountCharge
	out.FinishCharge = r.globals.Drawer.FinishCharge
	return out, nil
}

// Rail resolves a single rail dimension. Values that do not parse as a
// positive decimal fall back to the global size.
func (r *Resolver) Rail(ctx context.Context, o types.DoorOverrides, field string) decimal.Decimal {
	global, _ := r.globals.Rail(field)
	ov, ok := o.Rail(field)
	if !ok {
		return global
	}
	raw, set := ov.Get()
	if !set {
		return global
	}
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsPositive() {
		r.logg.Warn(r.logg.WithFields(ctx, map[string]any{"field": field, "value": raw}), "ignoring malformed rail override")
		return global
	}
	return value
}

func resolveRef[T any](ctx context.Context, r *Resolver, field string, ov types.Override[uint], lookup func(context.Context, uint) (*T, error)) (*T, error) {
	id, ok := ov.Get()
	if !ok {
		return nil, nil
	}
	entity, err := lookup(ctx, id)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			r.logg.Warn(r.logg.WithFields(ctx, map[string]any{"field": field, "id": id}), "ignoring dangling override reference")
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

func resolveFlag(ov types.Override[bool]) *bool {
	v, ok := ov.Get()
	if !ok {
		return nil
	}
	return &v
}

func entityOrNil[T any](v *T) any {
	if v == nil {
		return nil
	}
	return v
}

func boolOrNil(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
