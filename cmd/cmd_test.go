package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagConfig, flagLogLevel = "", ""
	flagVariant, flagOutputDir, flagAddr = "", "", ""
	flagText, flagHTML, flagMarkdown, flagJSON, flagPDF = false, false, false, false, false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, target string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dailyword.yaml")
	body := fmt.Sprintf(`
variant: verse
log:
  level: error
render:
  locale: en
  timezone: UTC
verse:
  target_url: %s
  proxies:
    - name: direct
      template: "{url}"
      format: json
`, target)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestValidateFlags(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	require.NoError(t, validateFlags())

	flagJSON, flagHTML = true, true
	assert.ErrorContains(t, validateFlags(), "only one output format")

	flagHTML = false
	flagJSON, flagPDF = false, true
	assert.ErrorContains(t, validateFlags(), "--output_dir is required")

	flagOutputDir = t.TempDir()
	assert.NoError(t, validateFlags())
}

func TestSelectRenderer(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	r, err := selectRenderer()
	require.NoError(t, err)
	assert.Equal(t, ".txt", r.Extension())

	flagMarkdown = true
	r, err = selectRenderer()
	require.NoError(t, err)
	assert.Equal(t, ".md", r.Extension())
}

func TestTodayCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verse":{"details":{"text":"Be still, and know that I am God.","reference":"Psalm 46:10"}}}`))
	}))
	defer srv.Close()
	path := writeConfig(t, srv.URL+"/verse")

	out, err := execute(t, "--config", path, "today", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"reference": "Psalm 46:10"`)
	assert.Contains(t, out, `"ok": true`)

	dir := t.TempDir()
	out, err = execute(t, "--config", path, "today", "--markdown", "--output_dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Written:")
	matches, err := filepath.Glob(filepath.Join(dir, "verse-*.md"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestTodayCommandRejectsUnknownVariant(t *testing.T) {
	_, err := execute(t, "today", "--variant", "psalm")
	assert.ErrorContains(t, err, "unknown variant")
}

func TestConfigCommand(t *testing.T) {
	path := writeConfig(t, "https://example.org/votd")
	out, err := execute(t, "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "variant: verse")
	assert.Contains(t, out, "target_url: https://example.org/votd")
	assert.Contains(t, out, "timeout: 9s")
}
