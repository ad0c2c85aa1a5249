package cli

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/postgres"
)

var errNoDatabaseURL = errors.New("database url not configured")

// NewMigrateCmd применяет миграции базы данных
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Decode(configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.DatabaseURL == "" {
		return errNoDatabaseURL
	}
	if err := postgres.Migrate(ctx, cfg.Storage.DatabaseURL); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}
