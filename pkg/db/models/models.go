package models

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&WoodStock{},
		&EdgeProfile{},
		&PanelRise{},
		&PanelType{},
		&Style{},
		&DrawerWoodStock{},
		&DrawerEdgeType{},
		&DrawerBottomSize{},
		&RailDefaults{},
		&DrawerSettings{},
		&Customer{},
		&CustomerAdjustments{},
		&Order{},
		&DoorLineItem{},
		&DrawerLineItem{},
		&GenericLineItem{},
	}
}
