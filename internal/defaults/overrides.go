package defaults

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// applyDoorOverride mutates o in place. A nil value records an explicit
// reset. Flags are kept only when true, and rail sizes equal to the global
// size are not kept at all.
func applyDoorOverride(o *types.DoorOverrides, g Globals, field string, value any) error {
	if ref, ok := o.Reference(field); ok {
		return setReference(ref, field, value)
	}
	if rail, ok := o.Rail(field); ok {
		if value == nil {
			*rail = types.Reset[string]()
			return nil
		}
		d, err := normalizeDecimal(value)
		if err != nil || !d.IsPositive() {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a positive decimal", field).WithDetails(map[string]string{field: fmt.Sprint(value)})
		}
		if global, _ := g.Rail(field); d.Equal(global) {
			*rail = types.Override[string]{}
			return nil
		}
		*rail = types.Set(d.String())
		return nil
	}
	if flag, ok := o.Flag(field); ok {
		if value == nil {
			*flag = types.Reset[bool]()
			return nil
		}
		b, err := normalizeBool(value)
		if err != nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a boolean", field)
		}
		if b {
			*flag = types.Set(true)
		} else {
			*flag = types.Override[bool]{}
		}
		return nil
	}
	return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown door default %q", field)
}

// applyDrawerOverride mutates o in place. Flags are stored whatever their value.
func applyDrawerOverride(o *types.DrawerOverrides, field string, value any) error {
	if ref, ok := o.Reference(field); ok {
		return setReference(ref, field, value)
	}
	if flag, ok := o.Flag(field); ok {
		if value == nil {
			*flag = types.Reset[bool]()
			return nil
		}
		b, err := normalizeBool(value)
		if err != nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a boolean", field)
		}
		*flag = types.Set(b)
		return nil
	}
	return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown drawer default %q", field)
}

func setReference(ref *types.Override[uint], field string, value any) error {
	if value == nil {
		*ref = types.Reset[uint]()
		return nil
	}
	id, err := normalizeID(value)
	if err != nil || id == 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s must reference a catalog entry", field)
	}
	*ref = types.Set(id)
	return nil
}

func normalizeID(value any) (uint, error) {
	switch v := value.(type) {
	case uint:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint(v), nil
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		return uint(n), err
	case *models.WoodStock:
		return v.ID, nil
	case *models.EdgeProfile:
		return v.ID, nil
	case *models.PanelRise:
		return v.ID, nil
	case *models.Style:
		return v.ID, nil
	case *models.DrawerWoodStock:
		return v.ID, nil
	case *models.DrawerEdgeType:
		return v.ID, nil
	case *models.DrawerBottomSize:
		return v.ID, nil
	}
	return 0, fmt.Errorf("unsupported reference %T", value)
}

func normalizeDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	}
	return decimal.Zero, fmt.Errorf("unsupported dimension %T", value)
}

func normalizeBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	}
	return false, fmt.Errorf("unsupported flag %T", value)
}
