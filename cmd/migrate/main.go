package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/doorsanddrawers/quote-backend/pkg/config"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

const serviceName = "quote-migrate"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	// create and validate only touch the filesystem
	switch *cmd {
	case "create":
		path, err := migrate.CreateSQLMigration(*dir, *name, time.Now())
		exitOn(err, "failed to create migration")
		fmt.Println("created migration:", path)
		return
	case "validate":
		exitOn(migrate.ValidateDir(*dir), "migration validation failed")
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)
	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"dir":    *dir,
		"driver": cfg.DB.Driver,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if *cmd == "up" {
		exitOn(migrate.Up(ctx, cfg.DB, logg, dbClient), "migrate up failed")
		return
	}
	if cfg.DB.IsSQLite() {
		fmt.Fprintf(os.Stderr, "-cmd=%s requires the postgres driver\n", *cmd)
		os.Exit(1)
	}

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)
	runner, err := migrate.NewRunner(sqlDB, migrate.Migrations())
	requireResource(ctx, logg, "goose", err)
	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "down":
		v, err := runner.Down(ctx)
		exitOn(err, "goose down failed")
		fmt.Println("rolled back", v)
	case "status":
		states, err := runner.Status(ctx)
		exitOn(err, "goose status failed")
		for _, st := range states {
			state := "pending"
			if st.Applied {
				state = "applied"
			}
			fmt.Printf("%d\t%s\t%s\n", st.Version, state, st.Path)
		}
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		exitOn(runner.ToVersion(ctx, *version), "goose version migrate failed")
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func exitOn(err error, msg string) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
