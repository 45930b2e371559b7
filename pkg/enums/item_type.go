package enums

import (
	"fmt"
	"strings"
)

// ItemType identifies the kind of priced line item.
type ItemType string

const (
	ItemTypeDoor   ItemType = "door"
	ItemTypeDrawer ItemType = "drawer"
	ItemTypeOther  ItemType = "other"
)

var validItemTypes = []ItemType{
	ItemTypeDoor,
	ItemTypeDrawer,
	ItemTypeOther,
}

// String implements fmt.Stringer.
func (i ItemType) String() string {
	return string(i)
}

// IsValid reports whether the value is known.
func (i ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}

// HasOverrides reports whether customers can store defaults for the item type.
func (i ItemType) HasOverrides() bool {
	return i == ItemTypeDoor || i == ItemTypeDrawer
}
