package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute запускает CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "quizbot",
		Short:        "Telegram bot for timed quizzes",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
