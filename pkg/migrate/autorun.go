package migrate

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/pkg/config"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
)

// MaybeRunDev migrates the schema when running in dev with auto-migrate
// enabled. SQLite databases are migrated from the models; Postgres runs the
// goose migrations.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	return Up(ctx, cfg.DB, logg, client)
}

// Up brings the schema to the latest version for the configured driver.
func Up(ctx context.Context, cfg config.DBConfig, logg *logger.Logger, client *db.Client) error {
	if cfg.IsSQLite() {
		logg.Info(ctx, "migrating sqlite schema from models")
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrate sqlite: %w", err)
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	runner, err := NewRunner(sqlDB, Migrations())
	if err != nil {
		return err
	}
	applied, err := runner.Up(ctx)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "applied", applied), "goose migrations completed")
	return nil
}
