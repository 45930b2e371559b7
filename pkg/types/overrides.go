package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Door override field names as they appear in the stored JSON.
const (
	DoorFieldWoodStock        = "wood_stock"
	DoorFieldEdgeProfile      = "edge_profile"
	DoorFieldPanelRise        = "panel_rise"
	DoorFieldStyle            = "style"
	DoorFieldRailTop          = "rail_top"
	DoorFieldRailBottom       = "rail_bottom"
	DoorFieldRailLeft         = "rail_left"
	DoorFieldRailRight        = "rail_right"
	DoorFieldInteriorRailSize = "interior_rail_size"
	DoorFieldSandEdge         = "sand_edge"
	DoorFieldSandCrossGrain   = "sand_cross_grain"
)

// Drawer override field names as they appear in the stored JSON.
const (
	DrawerFieldWoodStock  = "wood_stock"
	DrawerFieldEdgeType   = "edge_type"
	DrawerFieldBottom     = "bottom"
	DrawerFieldUndermount = "undermount"
	DrawerFieldFinishing  = "finishing"
)

// DoorOverrides is the sparse per-customer door configuration.
type DoorOverrides struct {
	WoodStock        Override[uint]   `json:"wood_stock,omitzero"`
	EdgeProfile      Override[uint]   `json:"edge_profile,omitzero"`
	PanelRise        Override[uint]   `json:"panel_rise,omitzero"`
	Style            Override[uint]   `json:"style,omitzero"`
	RailTop          Override[string] `json:"rail_top,omitzero"`
	RailBottom       Override[string] `json:"rail_bottom,omitzero"`
	RailLeft         Override[string] `json:"rail_left,omitzero"`
	RailRight        Override[string] `json:"rail_right,omitzero"`
	InteriorRailSize Override[string] `json:"interior_rail_size,omitzero"`
	SandEdge         Override[bool]   `json:"sand_edge,omitzero"`
	SandCrossGrain   Override[bool]   `json:"sand_cross_grain,omitzero"`
}

// Rail returns the override for a rail dimension field.
func (d *DoorOverrides) Rail(field string) (*Override[string], bool) {
	switch field {
	case DoorFieldRailTop:
		return &d.RailTop, true
	case DoorFieldRailBottom:
		return &d.RailBottom, true
	case DoorFieldRailLeft:
		return &d.RailLeft, true
	case DoorFieldRailRight:
		return &d.RailRight, true
	case DoorFieldInteriorRailSize:
		return &d.InteriorRailSize, true
	}
	return nil, false
}

// Reference returns the override for a catalog reference field.
func (d *DoorOverrides) Reference(field string) (*Override[uint], bool) {
	switch field {
	case DoorFieldWoodStock:
		return &d.WoodStock, true
	case DoorFieldEdgeProfile:
		return &d.EdgeProfile, true
	case DoorFieldPanelRise:
		return &d.PanelRise, true
	case DoorFieldStyle:
		return &d.Style, true
	}
	return nil, false
}

// Flag returns the override for a boolean field.
func (d *DoorOverrides) Flag(field string) (*Override[bool], bool) {
	switch field {
	case DoorFieldSandEdge:
		return &d.SandEdge, true
	case DoorFieldSandCrossGrain:
		return &d.SandCrossGrain, true
	}
	return nil, false
}

func (d DoorOverrides) Value() (driver.Value, error) {
	return jsonValue(d)
}

func (d *DoorOverrides) Scan(value any) error {
	*d = DoorOverrides{}
	return scanJSON(value, d)
}

// DrawerOverrides is the sparse per-customer drawer configuration.
type DrawerOverrides struct {
	WoodStock  Override[uint] `json:"wood_stock,omitzero"`
	EdgeType   Override[uint] `json:"edge_type,omitzero"`
	Bottom     Override[uint] `json:"bottom,omitzero"`
	Undermount Override[bool] `json:"undermount,omitzero"`
	Finishing  Override[bool] `json:"finishing,omitzero"`
}

// Reference returns the override for a catalog reference field.
func (d *DrawerOverrides) Reference(field string) (*Override[uint], bool) {
	switch field {
	case DrawerFieldWoodStock:
		return &d.WoodStock, true
	case DrawerFieldEdgeType:
		return &d.EdgeType, true
	case DrawerFieldBottom:
		return &d.Bottom, true
	}
	return nil, false
}

// Flag returns the override for a boolean field.
func (d *DrawerOverrides) Flag(field string) (*Override[bool], bool) {
	switch field {
	case DrawerFieldUndermount:
		return &d.Undermount, true
	case DrawerFieldFinishing:
		return &d.Finishing, true
	}
	return nil, false
}

func (d DrawerOverrides) Value() (driver.Value, error) {
	return jsonValue(d)
}

func (d *DrawerOverrides) Scan(value any) error {
	*d = DrawerOverrides{}
	return scanJSON(value, d)
}

func jsonValue(v any) (driver.Value, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func scanJSON(value any, dest any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
