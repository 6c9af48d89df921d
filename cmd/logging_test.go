package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dailyword/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("endpoint", "jina").Msg("Endpoint failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"endpoint":"jina"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailyword.log")
	var buf bytes.Buffer
	log, err := newLogger(config.LogConfig{Format: "console", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	log.Info().Msg("Passage extracted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Passage extracted")
	assert.Contains(t, buf.String(), "Passage extracted")
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := newLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = newLogger(config.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
