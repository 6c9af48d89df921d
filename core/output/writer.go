// Package output handles file naming and writing for rendered widgets.
// Filenames are derived from the variant and the local date
// (e.g. gospel-2026-10-18.html).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/dailyword/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <variant>-<date><ext> and returns the full path.
// An existing file for the same day is overwritten.
func (w *Writer) Write(variant core.Variant, day time.Time, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(variant, day, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename builds the output name for a variant and day.
// Example: gospel, 2026-10-18, ".md" → gospel-2026-10-18.md
func Filename(variant core.Variant, day time.Time, ext string) string {
	name := sanitize(string(variant))
	if name == "" {
		name = "widget"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + "-" + day.Format(time.DateOnly) + ext
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
