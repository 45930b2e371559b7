package pricing

import (
	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/validate"
)

// LineItemSpec is one cart entry. Exactly one payload is set and it must
// match Type.
type LineItemSpec struct {
	Type         enums.ItemType `json:"type" validate:"required,oneof=door drawer other"`
	Quantity     int            `json:"quantity" validate:"min=1"`
	CustomPrice  bool           `json:"custom_price"`
	PricePerUnit string         `json:"price_per_unit,omitempty"`
	Notes        string         `json:"notes,omitempty" validate:"max=2000"`
	Door         *DoorSpec      `json:"door,omitempty"`
	Drawer       *DrawerSpec    `json:"drawer,omitempty"`
	Other        *OtherSpec     `json:"other,omitempty"`
}

type DoorSpec struct {
	WoodStockID      uint   `json:"wood_stock_id" validate:"required"`
	EdgeProfileID    *uint  `json:"edge_profile_id,omitempty"`
	PanelRiseID      *uint  `json:"panel_rise_id,omitempty"`
	StyleID          uint   `json:"style_id" validate:"required"`
	Width            string `json:"width" validate:"decimal_gt0"`
	Height           string `json:"height" validate:"decimal_gt0"`
	RailTop          string `json:"rail_top,omitempty" validate:"omitempty,decimal_gt0"`
	RailBottom       string `json:"rail_bottom,omitempty" validate:"omitempty,decimal_gt0"`
	RailLeft         string `json:"rail_left,omitempty" validate:"omitempty,decimal_gt0"`
	RailRight        string `json:"rail_right,omitempty" validate:"omitempty,decimal_gt0"`
	InteriorRailSize string `json:"interior_rail_size,omitempty" validate:"omitempty,decimal_gt0"`
	SandEdge         *bool  `json:"sand_edge,omitempty"`
	SandCrossGrain   *bool  `json:"sand_cross_grain,omitempty"`
}

type DrawerSpec struct {
	WoodStockID uint   `json:"wood_stock_id" validate:"required"`
	EdgeTypeID  *uint  `json:"edge_type_id,omitempty"`
	BottomID    uint   `json:"bottom_id" validate:"required"`
	Width       string `json:"width" validate:"decimal_gt0"`
	Height      string `json:"height" validate:"decimal_gt0"`
	Depth       string `json:"depth" validate:"decimal_gt0"`
	Undermount  *bool  `json:"undermount,omitempty"`
	Finishing   *bool  `json:"finishing,omitempty"`
}

type OtherSpec struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

// Validate checks field rules and that the payload matches the type tag.
func (s LineItemSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	payloads := 0
	for _, set := range []bool{s.Door != nil, s.Drawer != nil, s.Other != nil} {
		if set {
			payloads++
		}
	}
	if payloads != 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "line item must carry exactly one payload")
	}
	var ok bool
	switch s.Type {
	case enums.ItemTypeDoor:
		ok = s.Door != nil
	case enums.ItemTypeDrawer:
		ok = s.Drawer != nil
	case enums.ItemTypeOther:
		ok = s.Other != nil
	}
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "payload does not match item type %q", s.Type)
	}
	return nil
}

// ApplyDefaults fills unset selections, blank rails and unset flags from
// the customer's effective door configuration.
func (d *DoorSpec) ApplyDefaults(eff defaults.EffectiveDoor) {
	if d.WoodStockID == 0 && eff.WoodStock != nil {
		d.WoodStockID = eff.WoodStock.ID
	}
	if d.StyleID == 0 && eff.Style != nil {
		d.StyleID = eff.Style.ID
	}
	if d.EdgeProfileID == nil && eff.EdgeProfile != nil {
		id := eff.EdgeProfile.ID
		d.EdgeProfileID = &id
	}
	if d.PanelRiseID == nil && eff.PanelRise != nil {
		id := eff.PanelRise.ID
		d.PanelRiseID = &id
	}
	fillDecimal(&d.RailTop, eff.RailTop.String())
	fillDecimal(&d.RailBottom, eff.RailBottom.String())
	fillDecimal(&d.RailLeft, eff.RailLeft.String())
	fillDecimal(&d.RailRight, eff.RailRight.String())
	fillDecimal(&d.InteriorRailSize, eff.InteriorRailSize.String())
	if d.SandEdge == nil {
		d.SandEdge = eff.SandEdge
	}
	if d.SandCrossGrain == nil {
		d.SandCrossGrain = eff.SandCrossGrain
	}
}

// ApplyDefaults fills unset selections and flags from the customer's
// effective drawer configuration.
func (d *DrawerSpec) ApplyDefaults(eff defaults.EffectiveDrawer) {
	if d.WoodStockID == 0 && eff.WoodStock != nil {
		d.WoodStockID = eff.WoodStock.ID
	}
	if d.BottomID == 0 && eff.Bottom != nil {
		d.BottomID = eff.Bottom.ID
	}
	if d.EdgeTypeID == nil && eff.EdgeType != nil {
		id := eff.EdgeType.ID
		d.EdgeTypeID = &id
	}
	if d.Undermount == nil {
		d.Undermount = eff.Undermount
	}
	if d.Finishing == nil {
		d.Finishing = eff.Finishing
	}
}

func fillDecimal(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

func flag(v *bool) bool {
	return v != nil && *v
}
