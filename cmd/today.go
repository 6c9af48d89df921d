// Package cmd — today command.
// This is the main command that orchestrates one run:
// build endpoints → fetch → normalize → extract → compose → render → write.
//
// It handles flag validation, renderer selection and output to stdout or a file.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dailyword/config"
	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/daily"
	"github.com/gaurav-prasanna/dailyword/core/output"
	"github.com/gaurav-prasanna/dailyword/core/render"
)

// Flag variables.
var (
	flagVariant   string
	flagText      bool
	flagHTML      bool
	flagMarkdown  bool
	flagJSON      bool
	flagPDF       bool
	flagOutputDir string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Fetch today's passage and render the widget",
	Long: `Today tries each configured proxy endpoint in order, extracts the passage
from the first one that works and renders the widget. When every endpoint
fails the widget shows the fallback message instead; this is not an error.

Examples:
  dailyword today
  dailyword today --variant verse --json
  dailyword today --html --output_dir ./out
  dailyword today --pdf --output_dir ./out`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().StringVar(&flagVariant, "variant", "", "Variant to fetch: gospel or verse (default from config)")

	// Output format flags (mutually exclusive).
	todayCmd.Flags().BoolVar(&flagText, "text", false, "Output plain text (default)")
	todayCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an embeddable HTML page")
	todayCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	todayCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	todayCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF (requires --output_dir)")

	todayCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write <variant>-<date>.<ext> here instead of stdout")
}

func runToday(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	variant, err := selectVariant()
	if err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	run, err := daily.New(cfg, nil).Today(cmd.Context(), variant)
	if err != nil {
		return err
	}

	data, err := renderer.Render(run.Widget)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flagOutputDir == "" {
		return writeStdout(cmd.OutOrStdout(), data)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(variant, run.Day, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

func writeStdout(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// validateFlags checks mutual exclusivity of format flags.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagText, flagHTML, flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	// PDF is binary; never dump it on a terminal.
	if flagPDF && flagOutputDir == "" {
		return fmt.Errorf("--output_dir is required when using --pdf")
	}
	return nil
}

// selectVariant resolves --variant against the configured default.
func selectVariant() (core.Variant, error) {
	if flagVariant == "" {
		return config.ParseVariant(cfg.Variant)
	}
	return config.ParseVariant(flagVariant)
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagHTML:
		return render.New("html")
	case flagMarkdown:
		return render.New("markdown")
	case flagJSON:
		return render.New("json")
	case flagPDF:
		return render.New("pdf")
	default:
		return render.New("text")
	}
}
