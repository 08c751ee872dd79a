package cmd

import (
	"fmt"

	"github.com/harrison/exchange/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for exchange
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Inspect and clean up the assignment exchange",
		Long: `Exchange lists released and submitted assignments in a shared
assignment exchange directory and can remove them.

Released assignments live in <exchange>/<course>/outbound/<assignment>,
submissions in <exchange>/<course>/inbound/<student>+<assignment>+<timestamp>.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfig loads the --config file if given, otherwise config.yaml in the
// exchange home.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	home, err := config.GetExchangeHome()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfigFromDir(home)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
