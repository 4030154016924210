// Command authform serves the sign-in and sign-up pages, drives them from a
// terminal and inspects their validation schemas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-authform/internal/config"
	"github.com/goliatone/go-authform/internal/logging"
	"github.com/goliatone/go-authform/pkg/renderers/tui"
)

const appName = "authform"

// Version is overridden at build time.
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by subcommands once the root pre-run has loaded
// configuration and built the logger.
type app struct {
	configPath string
	logLevel   string
	dev        bool

	cfg    *config.Config
	logger *logging.Logger

	// driver replaces the survey prompt driver when set.
	driver tui.PromptDriver
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger.Logger
}

func rootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Authentication pages with schema validation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = a.logLevel
			}
			if cmd.Flags().Changed("dev") {
				cfg.Logging.Development = a.dev
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.dev, "dev", false, "use the development logger")

	cmd.AddCommand(
		serveCmd(a),
		promptCmd(a),
		openapiCmd(a),
		validateCmd(a),
		renderCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}
