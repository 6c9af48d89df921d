package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/extract"
	"github.com/gaurav-prasanna/dailyword/core/fetch"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gospel", cfg.Variant)
	assert.Equal(t, 9*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "http", cfg.Fetch.Transport)
	assert.Equal(t, "pt-BR", cfg.Render.Locale)
	assert.Equal(t, "America/Sao_Paulo", cfg.Render.Timezone)
	assert.Equal(t, 40, cfg.Gospel.MinLength)
	assert.Equal(t, 1, cfg.Verse.MinLength)
	assert.True(t, cfg.Gospel.RequireTerminal)

	require.Len(t, cfg.Gospel.Proxies, 2)
	assert.Equal(t, "jina", cfg.Gospel.Proxies[0].Name)
	assert.Equal(t, "markdown", cfg.Gospel.Proxies[0].Format)
	require.Len(t, cfg.Verse.Proxies, 3)
	assert.Equal(t, "json", cfg.Verse.Proxies[2].Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailyword.yaml")
	yaml := `
variant: verse
fetch:
  timeout: 3s
  transport: colly
verse:
  title: Verse of the day
  proxies:
    - name: direct
      template: "{url}"
      format: json
render:
  locale: en
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("DAILYWORD_RENDER_TIMEZONE", "UTC")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "verse", cfg.Variant)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "Verse of the day", cfg.Verse.Title)
	assert.Equal(t, "en", cfg.Render.Locale)
	assert.Equal(t, "UTC", cfg.Render.Timezone)
	require.Len(t, cfg.Verse.Proxies, 1)
	// Untouched sections keep their defaults.
	assert.Len(t, cfg.Gospel.Proxies, 2)

	_, ok := cfg.Fetcher().(*fetch.CollyFetcher)
	assert.True(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Variant = "psalm"
	cfg.Fetch.Timeout = 0
	cfg.Fetch.Transport = "ftp"
	cfg.Verse.Proxies = nil
	cfg.Gospel.Proxies[0].Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"psalm", "fetch.timeout", "fetch.transport", "verse.proxies", "xml"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("verse")
	require.NoError(t, err)
	assert.Equal(t, core.VariantVerse, v)

	_, err = ParseVariant("")
	assert.Error(t, err)
}

func TestBuilders(t *testing.T) {
	cfg := Default()

	ex, err := cfg.Extractor(core.VariantGospel)
	require.NoError(t, err)
	assert.IsType(t, &extract.GospelExtractor{}, ex)

	ex, err = cfg.Extractor(core.VariantVerse)
	require.NoError(t, err)
	assert.IsType(t, &extract.VerseExtractor{}, ex)

	proxies := cfg.Proxies(core.VariantGospel)
	require.Len(t, proxies, 2)
	assert.Equal(t, core.FormatMarkdown, proxies[0].Format)

	s := cfg.RenderSettings(core.VariantVerse)
	assert.Equal(t, core.VariantVerse, s.Variant)
	assert.Equal(t, "Versículo do dia", s.Title)
	assert.Equal(t, "Fonte", s.LinkLabel)

	_, ok := cfg.Fetcher().(*fetch.HTTPFetcher)
	assert.True(t, ok)
}
