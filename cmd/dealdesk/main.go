// Package main provides the dealdesk CLI entry point: a terminal client for
// the creator/brand sponsorship contract platform.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealdesk/internal/api"
	"dealdesk/internal/config"
	"dealdesk/internal/logging"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Shared state built in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "dealdesk",
	Short: "dealdesk - terminal client for the sponsorship contract platform",
	Long: `dealdesk is a terminal client for the creator/brand contract platform.

It lists and filters contracts, drives the create/edit/update flows, runs the
AI contract generator wizard, chats with the contract assistant, and imports
or exports contract lists as JSON/CSV. All state lives on the backend; the
client keeps only a per-session copy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		client = api.New(cfg.API.BaseURL, cfg.RequestTimeout(), logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(contractsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(deliverablesCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(pricingCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
