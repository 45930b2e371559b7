package pricing

import (
	"testing"

	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
)

func TestValidateRejectsMismatchedPayload(t *testing.T) {
	spec := LineItemSpec{Type: enums.ItemTypeDrawer, Quantity: 1, Door: &DoorSpec{WoodStockID: 1, StyleID: 1, Width: "1", Height: "1"}}
	if err := spec.Validate(); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	spec.Type = enums.ItemTypeDoor
	spec.Other = &OtherSpec{Name: "extra"}
	if err := spec.Validate(); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for two payloads, got %v", err)
	}
}

func TestValidateFieldRules(t *testing.T) {
	spec := LineItemSpec{Type: enums.ItemTypeDoor, Quantity: 0, Door: &DoorSpec{WoodStockID: 1, StyleID: 1, Width: "12", Height: "x"}}
	err := spec.Validate()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if _, ok := details["quantity"]; !ok {
		t.Fatalf("expected quantity detail, got %v", details)
	}
	if _, ok := details["height"]; !ok {
		t.Fatalf("expected height detail, got %v", details)
	}
}

func TestDoorApplyDefaultsFillsBlanksOnly(t *testing.T) {
	sand := true
	eff := defaults.EffectiveDoor{
		WoodStock:        &models.WoodStock{ID: 4},
		Style:            &models.Style{ID: 9},
		RailTop:          dec("2.75"),
		RailBottom:       dec("2.5"),
		RailLeft:         dec("2.5"),
		RailRight:        dec("2.5"),
		InteriorRailSize: dec("1"),
		SandEdge:         &sand,
	}
	door := DoorSpec{StyleID: 2, Width: "12", Height: "30", RailBottom: "3"}
	door.ApplyDefaults(eff)

	if door.WoodStockID != 4 || door.StyleID != 2 {
		t.Fatalf("unexpected selections %d/%d", door.WoodStockID, door.StyleID)
	}
	if door.RailTop != "2.75" || door.RailBottom != "3" || door.InteriorRailSize != "1" {
		t.Fatalf("unexpected rails %+v", door)
	}
	if door.SandEdge == nil || !*door.SandEdge || door.SandCrossGrain != nil {
		t.Fatalf("unexpected flags %+v", door)
	}
	if door.EdgeProfileID != nil {
		t.Fatal("expected edge profile to stay unset")
	}
}

func TestDrawerApplyDefaults(t *testing.T) {
	no := false
	eff := defaults.EffectiveDrawer{
		WoodStock:  &models.DrawerWoodStock{ID: 3},
		Bottom:     &models.DrawerBottomSize{ID: 5},
		EdgeType:   &models.DrawerEdgeType{ID: 6},
		Undermount: &no,
	}
	yes := true
	drawer := DrawerSpec{Width: "20", Height: "6", Depth: "18", Undermount: &yes}
	drawer.ApplyDefaults(eff)
	if drawer.WoodStockID != 3 || drawer.BottomID != 5 || drawer.EdgeTypeID == nil || *drawer.EdgeTypeID != 6 {
		t.Fatalf("unexpected selections %+v", drawer)
	}
	if !*drawer.Undermount || drawer.Finishing != nil {
		t.Fatalf("unexpected flags %+v", drawer)
	}
}
