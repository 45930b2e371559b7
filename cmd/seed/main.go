package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doorsanddrawers/quote-backend/internal/seed"
	"github.com/doorsanddrawers/quote-backend/pkg/config"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

const serviceName = "quote-seed"

func main() {
	_ = godotenv.Load()
	logg := logger.New(logger.Options{ServiceName: serviceName})

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)
	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()
	requireResource(ctx, logg, "schema", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	report, err := seed.Run(ctx, dbClient, logg)
	requireResource(ctx, logg, "seed", err)
	if len(report) == 0 {
		fmt.Println("nothing to seed")
		return
	}
	for table, n := range report {
		fmt.Printf("seeded %s: %d rows\n", table, n)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
