// Package cmd implements the CLI commands for dailyword using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dailyword/config"
)

// Persistent flags.
var (
	flagConfig   string
	flagLogLevel string
)

// Loaded by PersistentPreRunE before any subcommand runs.
var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dailyword",
	Short: "dailyword — fetch the daily Gospel or verse of the day into a widget",
	Long: `dailyword fetches a daily text through a list of CORS proxy endpoints,
reduces the page to plain text, extracts the passage and renders it as a
small widget (text, HTML, Markdown, JSON or PDF).

Usage:
  dailyword today [flags]
  dailyword serve [flags]
  dailyword config`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}

	l, err := newLogger(loaded.Log, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
