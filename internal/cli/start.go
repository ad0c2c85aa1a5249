package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IT-Nick/quizbot/internal/app"
	"github.com/IT-Nick/quizbot/internal/infra/config"
)

// NewStartCmd запускает бота и HTTP-сервер
func NewStartCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bot and the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runStart(ctx, *configPath)
		},
	}
}

func runStart(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
