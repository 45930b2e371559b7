package migrate

import (
	"context"
	"io"
	"testing"

	"github.com/doorsanddrawers/quote-backend/pkg/config"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
)

func TestMaybeRunDevMigratesSQLite(t *testing.T) {
	ctx := context.Background()
	logg := logger.New(logger.Options{Output: io.Discard})
	cfg := &config.Config{
		App:          config.AppConfig{Env: config.AppEnvDev},
		DB:           config.DBConfig{Driver: config.DBDriverSQLite, DSN: "file:autorun?mode=memory&cache=shared", MaxOpenConns: 1},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := MaybeRunDev(ctx, cfg, logg, client); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	for _, table := range []string{"orders", "door_line_items", "customers", "rail_defaults"} {
		if !client.DB().Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{
		App:          config.AppConfig{Env: "prod"},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}
	if err := MaybeRunDev(context.Background(), cfg, logger.New(logger.Options{Output: io.Discard}), nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
