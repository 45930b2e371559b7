package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuoteSchemaMigrationContainsTablesAndConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_quote_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no quote schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS wood_stocks",
		"CREATE TABLE IF NOT EXISTS styles",
		"FOREIGN KEY (panel_type_id) REFERENCES panel_types(id)",
		"CREATE TABLE IF NOT EXISTS rail_defaults",
		"CREATE TABLE IF NOT EXISTS drawer_settings",
		"CREATE TABLE IF NOT EXISTS customer_adjustments",
		"CHECK (discount_type <> 'PERCENT' OR discount_value <= 100)",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_number",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"CHECK (price_per_unit > 0)",
		"DROP TABLE IF EXISTS generic_line_items",
		"DROP TABLE IF EXISTS wood_stocks",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	down := content[strings.Index(content, "-- +goose Down"):]
	if strings.Index(down, "DROP TABLE IF EXISTS orders") < strings.Index(down, "DROP TABLE IF EXISTS door_line_items") {
		t.Errorf("line item tables must be dropped before orders")
	}
}
