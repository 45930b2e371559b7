// Package seed loads the shop's starting configuration and catalog.
package seed

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Report lists the rows created per table. Tables that already held data
// are skipped and absent from the report.
type Report map[string]int

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// Run seeds every empty table in one transaction.
func Run(ctx context.Context, tx txRunner, logg *logger.Logger) (Report, error) {
	report := Report{}
	err := tx.WithTx(ctx, func(tx *gorm.DB) error {
		steps := []struct {
			table string
			model any
			rows  func(tx *gorm.DB) (any, int, error)
		}{
			{"rail_defaults", &models.RailDefaults{}, constRows(railDefaults())},
			{"drawer_settings", &models.DrawerSettings{}, constRows(drawerSettings())},
			{"edge_profiles", &models.EdgeProfile{}, constRows(edgeProfiles())},
			{"panel_rises", &models.PanelRise{}, constRows(panelRises())},
			{"panel_types", &models.PanelType{}, constRows(panelTypes())},
			{"wood_stocks", &models.WoodStock{}, constRows(woodStocks())},
			{"styles", &models.Style{}, styles},
			{"drawer_wood_stocks", &models.DrawerWoodStock{}, constRows(drawerWoodStocks())},
			{"drawer_edge_types", &models.DrawerEdgeType{}, constRows(drawerEdgeTypes())},
			{"drawer_bottom_sizes", &models.DrawerBottomSize{}, constRows(drawerBottomSizes())},
		}
		for _, step := range steps {
			var count int64
			if err := tx.WithContext(ctx).Model(step.model).Count(&count).Error; err != nil {
				return fmt.Errorf("count %s: %w", step.table, err)
			}
			if count > 0 {
				logg.Debug(logg.WithField(ctx, "table", step.table), "seed skipped, table not empty")
				continue
			}
			rows, n, err := step.rows(tx)
			if err != nil {
				return fmt.Errorf("build %s: %w", step.table, err)
			}
			if err := tx.WithContext(ctx).Create(rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.table, err)
			}
			report[step.table] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for table, n := range report {
		logg.Info(logg.WithFields(ctx, map[string]any{"table": table, "rows": n}), "seeded")
	}
	return report, nil
}

func constRows[T any](rows []T) func(*gorm.DB) (any, int, error) {
	return func(*gorm.DB) (any, int, error) {
		return &rows, len(rows), nil
	}
}

func railDefaults() []models.RailDefaults {
	return []models.RailDefaults{{
		RailTop:          d("2.250"),
		RailBottom:       d("2.250"),
		RailLeft:         d("2.250"),
		RailRight:        d("2.250"),
		InteriorRailSize: d("2.250"),
	}}
}

func drawerSettings() []models.DrawerSettings {
	return []models.DrawerSettings{{
		SurchargeWidth:   d("24.00"),
		SurchargeDepth:   d("24.00"),
		SurchargePercent: d("15.00"),
		FinishCharge:     d("11.00"),
		UndermountCharge: d("2.50"),
	}}
}

func edgeProfiles() []models.EdgeProfile {
	out := []models.EdgeProfile{}
	for _, name := range []string{"E1", "E2", "E3", "E4", "E5", "E6"} {
		out = append(out, models.EdgeProfile{Name: name})
	}
	return out
}

func panelRises() []models.PanelRise {
	out := []models.PanelRise{}
	for _, name := range []string{"PanelRaise1", "PanelRaise2", "PanelRaise3"} {
		out = append(out, models.PanelRise{Name: name})
	}
	return out
}

func panelTypes() []models.PanelType {
	standard := func(name string, flat bool) models.PanelType {
		return models.PanelType{
			Name:              name,
			UseFlatPanelPrice: flat,
			SurchargeWidth:    d("22"),
			SurchargeHeight:   d("39"),
			SurchargePercent:  d("15"),
			MinimumSqFt:       d("2"),
		}
	}
	return []models.PanelType{
		{Name: "Drawer Front", SurchargeWidth: d("28"), SurchargeHeight: d("10"), SurchargePercent: d("15"), MinimumSqFt: d("0.8")},
		standard("Flat Panel", true),
		standard("Frame Only", true),
		standard("Raised Panel", false),
		standard("Slab", true),
	}
}

func woodStocks() []models.WoodStock {
	prices := []struct{ name, raised, flat string }{
		{"Alder", "7.50", "7.00"},
		{"Ash", "5.00", "4.50"},
		{"Basswood", "5.00", "4.50"},
		{"Birch", "6.50", "6.00"},
		{"Cherry", "8.50", "8.00"},
		{"Cypress", "8.50", "8.00"},
		{"Hickory", "6.50", "6.00"},
		{"Mahogany", "9.50", "9.00"},
		{"Red Oak", "5.00", "4.50"},
	}
	out := make([]models.WoodStock, 0, len(prices))
	for _, p := range prices {
		out = append(out, models.WoodStock{Name: p.name, RaisedPanelPrice: d(p.raised), FlatPanelPrice: d(p.flat)})
	}
	return out
}

// styles resolves panel types by name, so it runs after panel_types.
func styles(tx *gorm.DB) (any, int, error) {
	defs := []struct {
		name, panelType, price string
		across, down           int
	}{
		{"ATFO", "Frame Only", "10.00", 1, 1},
		{"CTFP", "Flat Panel", "10.00", 1, 1},
		{"CTFP-2X2", "Flat Panel", "10.00", 2, 2},
		{"CTRP-2X3", "Raised Panel", "14.00", 2, 3},
		{"CTRP-5P", "Raised Panel", "14.00", 5, 1},
		{"DFDF", "Drawer Front", "3.50", 1, 1},
		{"OTFP-DP", "Flat Panel", "10.00", 1, 2},
		{"SHAKER-FP-4P", "Flat Panel", "6.00", 4, 1},
	}
	var types []models.PanelType
	if err := tx.Find(&types).Error; err != nil {
		return nil, 0, err
	}
	byName := make(map[string]uint, len(types))
	for _, pt := range types {
		byName[pt.Name] = pt.ID
	}
	out := make([]models.Style, 0, len(defs))
	for _, def := range defs {
		id, ok := byName[def.panelType]
		if !ok {
			return nil, 0, fmt.Errorf("panel type %q missing for style %s", def.panelType, def.name)
		}
		out = append(out, models.Style{
			Name:         def.name,
			PanelTypeID:  id,
			Price:        d(def.price),
			PanelsAcross: def.across,
			PanelsDown:   def.down,
		})
	}
	return &out, len(out), nil
}

func drawerWoodStocks() []models.DrawerWoodStock {
	return []models.DrawerWoodStock{
		{Name: "Maple", Price: d("12.00")},
		{Name: "Oak", Price: d("10.50")},
		{Name: "Cherry", Price: d("15.00")},
		{Name: "Birch", Price: d("11.00")},
		{Name: "Pine", Price: d("8.50")},
		{Name: "Poplar", Price: d("9.00")},
	}
}

func drawerEdgeTypes() []models.DrawerEdgeType {
	return []models.DrawerEdgeType{
		{Name: "Square Edge"},
		{Name: "Rounded Edge"},
		{Name: "Beveled Edge"},
		{Name: "Bullnose Edge"},
	}
}

func drawerBottomSizes() []models.DrawerBottomSize {
	return []models.DrawerBottomSize{
		{Name: `1/4" Plywood`, Thickness: d("0.250"), Price: d("3.50")},
		{Name: `1/2" Plywood`, Thickness: d("0.500"), Price: d("5.00")},
		{Name: `3/8" Plywood`, Thickness: d("0.375"), Price: d("4.25")},
		{Name: `1/4" MDF`, Thickness: d("0.250"), Price: d("2.75")},
		{Name: `1/2" MDF`, Thickness: d("0.500"), Price: d("3.75")},
	}
}
