// Command quote drives session carts, customer defaults and orders from the
// shell. Output is JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/doorsanddrawers/quote-backend/internal/app"
	"github.com/doorsanddrawers/quote-backend/pkg/config"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName = "quote-cli"

var (
	sessionID string
	timeout   time.Duration

	logg      *logger.Logger
	container *app.App
)

var rootCmd = &cobra.Command{
	Use:           "quote",
	Short:         "Price door and drawer carts and manage quotes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil {
			logg.Warn(context.Background(), "no .env file loaded")
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logg = logger.New(logger.Options{
			ServiceName: serviceName,
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
			Format:      cfg.App.LogFormat,
			Output:      os.Stderr,
		})
		ctx := logg.WithFields(cmd.Context(), map[string]any{"env": cfg.App.Env, "cmd": cmd.CommandPath()})
		container, err = app.New(ctx, cfg, logg)
		return err
	},
}

func init() {
	logg = logger.New(logger.Options{ServiceName: serviceName, Output: os.Stderr})
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "cart session id")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "operation timeout")

	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(adjustmentsCmd)
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if closeErr := container.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		logg.Error(context.Background(), "command failed", err)
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pkgerrors.Describe(err))
		os.Exit(1)
	}
}

func opContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if sessionID != "" {
		ctx = logg.WithSessionID(ctx, sessionID)
	}
	return context.WithTimeout(ctx, timeout)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseCustomerID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
	}
	return id, nil
}
