package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command. An unreadable environment falls back to defaults.
func NewRootCmd() *cobra.Command {
	loaded, envErr := LoadConfig()
	if envErr != nil {
		loaded = &Config{ServerURL: "http://localhost:8080", Timeout: 30 * time.Second, Output: "text"}
	}
	cfg = loaded

	rootCmd := &cobra.Command{
		Use:   "rosterctl",
		Short: "CLI tool for the player roster API",
		Long: `rosterctl is a CLI tool for interacting with the player roster JSON API.

It supports creating, reading, updating, deleting, listing and counting
players, and seeding a server with randomly generated players.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return fmt.Errorf("read environment: %w", envErr)
			}
			switch cfg.Output {
			case "text", "json":
			default:
				return fmt.Errorf("invalid --output %q: must be text or json", cfg.Output)
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Timeout)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ROSTER_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout (env: ROSTER_TIMEOUT)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: ROSTER_OUTPUT)")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
