// Package config loads dailyword settings from an optional YAML file and
// DAILYWORD_* environment variables, on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/extract"
	"github.com/gaurav-prasanna/dailyword/core/fetch"
	"github.com/gaurav-prasanna/dailyword/core/render"
	"github.com/gaurav-prasanna/dailyword/core/source"
)

// EnvPrefix is the prefix of environment overrides (DAILYWORD_FETCH_TIMEOUT, ...).
const EnvPrefix = "DAILYWORD"

// Config is the full application configuration.
type Config struct {
	Variant string       `mapstructure:"variant" yaml:"variant"`
	Gospel  GospelConfig `mapstructure:"gospel" yaml:"gospel"`
	Verse   VerseConfig  `mapstructure:"verse" yaml:"verse"`
	Fetch   FetchConfig  `mapstructure:"fetch" yaml:"fetch"`
	Render  RenderConfig `mapstructure:"render" yaml:"render"`
	Server  ServerConfig `mapstructure:"server" yaml:"server"`
	Log     LogConfig    `mapstructure:"log" yaml:"log"`
}

// SourceConfig is shared by both variants.
type SourceConfig struct {
	Title        string        `mapstructure:"title" yaml:"title"`
	TargetURL    string        `mapstructure:"target_url" yaml:"target_url"`
	Proxies      []ProxyConfig `mapstructure:"proxies" yaml:"proxies"`
	FallbackText string        `mapstructure:"fallback_text" yaml:"fallback_text"`
	FallbackLink string        `mapstructure:"fallback_link" yaml:"fallback_link"`
}

// ProxyConfig is one endpoint template. {url} and {query} are replaced with
// the raw and the query-escaped target URL.
type ProxyConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Template string `mapstructure:"template" yaml:"template"`
	Format   string `mapstructure:"format" yaml:"format"`
}

// GospelConfig configures the liturgy page variant.
type GospelConfig struct {
	SourceConfig `mapstructure:",squash" yaml:",inline"`

	Anchor             string   `mapstructure:"anchor" yaml:"anchor"`
	Terminal           string   `mapstructure:"terminal" yaml:"terminal"`
	Response           string   `mapstructure:"response" yaml:"response"`
	Proclamation       string   `mapstructure:"proclamation" yaml:"proclamation"`
	Boilerplate        []string `mapstructure:"boilerplate" yaml:"boilerplate"`
	RequireTerminal    bool     `mapstructure:"require_terminal" yaml:"require_terminal"`
	RemoveMarkdown     bool     `mapstructure:"remove_markdown" yaml:"remove_markdown"`
	RemoveVerseNumbers bool     `mapstructure:"remove_verse_numbers" yaml:"remove_verse_numbers"`
	MinLength          int      `mapstructure:"min_length" yaml:"min_length"`
}

// VerseConfig configures the verse-of-the-day API variant.
type VerseConfig struct {
	SourceConfig `mapstructure:",squash" yaml:",inline"`

	LinkTemplate string `mapstructure:"link_template" yaml:"link_template"`
	MinLength    int    `mapstructure:"min_length" yaml:"min_length"`
}

// FetchConfig configures the HTTP transport.
type FetchConfig struct {
	Transport     string        `mapstructure:"transport" yaml:"transport"` // http or colly
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`     // per endpoint attempt
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	RatePerSecond float64       `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	Burst         int           `mapstructure:"burst" yaml:"burst"`
}

// RenderConfig holds the slot strings shared by both variants.
type RenderConfig struct {
	Locale            string `mapstructure:"locale" yaml:"locale"`
	Timezone          string `mapstructure:"timezone" yaml:"timezone"`
	OKStatus          string `mapstructure:"ok_status" yaml:"ok_status"`
	FailureStatus     string `mapstructure:"failure_status" yaml:"failure_status"`
	FallbackReference string `mapstructure:"fallback_reference" yaml:"fallback_reference"`
	LinkLabel         string `mapstructure:"link_label" yaml:"link_label"`
}

// ServerConfig configures `dailyword serve`.
type ServerConfig struct {
	Addr        string        `mapstructure:"addr" yaml:"addr"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	FailureTTL  time.Duration `mapstructure:"failure_ttl" yaml:"failure_ttl"`
	RefreshCron string        `mapstructure:"refresh_cron" yaml:"refresh_cron"`
	AllowOrigin []string      `mapstructure:"allow_origin" yaml:"allow_origin"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // console or json
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// Load reads configuration from configPath (optional) and the environment.
// An empty configPath means defaults plus environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("variant", string(core.VariantGospel))

	gospel := extract.DefaultOptions()
	v.SetDefault("gospel.title", "Evangelho do dia")
	v.SetDefault("gospel.target_url", "https://liturgia.cancaonova.com/pb/")
	v.SetDefault("gospel.proxies", []map[string]any{
		{"name": "jina", "template": "https://r.jina.ai/{url}", "format": "markdown"},
		{"name": "allorigins", "template": "https://api.allorigins.win/raw?url={query}", "format": "html"},
	})
	v.SetDefault("gospel.fallback_text", "Não foi possível carregar o Evangelho do dia. Tente recarregar mais tarde.")
	v.SetDefault("gospel.fallback_link", "https://liturgia.cancaonova.com/pb/")
	v.SetDefault("gospel.anchor", gospel.Anchor)
	v.SetDefault("gospel.terminal", gospel.Terminal)
	v.SetDefault("gospel.response", gospel.Response)
	v.SetDefault("gospel.proclamation", gospel.Proclamation)
	v.SetDefault("gospel.boilerplate", gospel.Boilerplate)
	v.SetDefault("gospel.require_terminal", gospel.RequireTerminal)
	v.SetDefault("gospel.remove_markdown", gospel.RemoveMarkdown)
	v.SetDefault("gospel.remove_verse_numbers", gospel.RemoveVerseNumbers)
	v.SetDefault("gospel.min_length", gospel.MinLength)

	v.SetDefault("verse.title", "Versículo do dia")
	v.SetDefault("verse.target_url", "https://beta.ourmanna.com/api/v1/get?format=json&order=daily")
	v.SetDefault("verse.proxies", []map[string]any{
		{"name": "allorigins", "template": "https://api.allorigins.win/raw?url={query}", "format": "json"},
		{"name": "corsproxy", "template": "https://corsproxy.io/?url={query}", "format": "json"},
		{"name": "direct", "template": "{url}", "format": "json"},
	})
	v.SetDefault("verse.fallback_text", "Não foi possível carregar o versículo do dia. Tente recarregar mais tarde.")
	v.SetDefault("verse.fallback_link", "https://www.bible.com/verse-of-the-day")
	v.SetDefault("verse.link_template", "https://www.bible.com/search/bible?q={reference}")
	v.SetDefault("verse.min_length", 1)

	v.SetDefault("fetch.transport", "http")
	v.SetDefault("fetch.timeout", 9*time.Second)
	v.SetDefault("fetch.user_agent", "dailyword/1.0 (https://github.com/gaurav-prasanna/dailyword)")
	v.SetDefault("fetch.rate_per_second", 2.0)
	v.SetDefault("fetch.burst", 2)

	v.SetDefault("render.locale", "pt-BR")
	v.SetDefault("render.timezone", "America/Sao_Paulo")
	v.SetDefault("render.ok_status", "Atualiza diariamente.")
	v.SetDefault("render.failure_status", "Falha de rede/CORS.")
	v.SetDefault("render.fallback_reference", "Indisponível no momento")
	v.SetDefault("render.link_label", "Fonte")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cache_ttl", time.Hour)
	v.SetDefault("server.failure_ttl", time.Minute)
	v.SetDefault("server.refresh_cron", "5 0 * * *")
	v.SetDefault("server.allow_origin", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Validate checks values that would otherwise fail late, inside a run.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseVariant(c.Variant); err != nil {
		errs = append(errs, err)
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout must be positive"))
	}
	switch c.Fetch.Transport {
	case "http", "colly":
	default:
		errs = append(errs, fmt.Errorf("fetch.transport must be http or colly, got %q", c.Fetch.Transport))
	}
	if c.Gospel.MinLength < 0 || c.Verse.MinLength < 0 {
		errs = append(errs, fmt.Errorf("min_length must not be negative"))
	}
	for name, s := range map[string]SourceConfig{"gospel": c.Gospel.SourceConfig, "verse": c.Verse.SourceConfig} {
		if len(s.Proxies) == 0 {
			errs = append(errs, fmt.Errorf("%s.proxies must not be empty", name))
		}
		for i, p := range s.Proxies {
			switch core.Format(p.Format) {
			case core.FormatHTML, core.FormatMarkdown, core.FormatJSON, "":
			default:
				errs = append(errs, fmt.Errorf("%s.proxies[%d].format %q is not html, markdown or json", name, i, p.Format))
			}
		}
	}
	return errors.Join(errs...)
}

// ParseVariant converts a variant name.
func ParseVariant(s string) (core.Variant, error) {
	switch core.Variant(s) {
	case core.VariantGospel, core.VariantVerse:
		return core.Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q (want gospel or verse)", s)
	}
}

// Source returns the source settings of a variant.
func (c *Config) Source(v core.Variant) SourceConfig {
	if v == core.VariantVerse {
		return c.Verse.SourceConfig
	}
	return c.Gospel.SourceConfig
}

// Proxies converts the proxy list of a variant.
func (c *Config) Proxies(v core.Variant) []source.Proxy {
	src := c.Source(v)
	out := make([]source.Proxy, 0, len(src.Proxies))
	for _, p := range src.Proxies {
		out = append(out, source.Proxy{Name: p.Name, Template: p.Template, Format: core.Format(p.Format)})
	}
	return out
}

// Extractor builds the extractor of a variant.
func (c *Config) Extractor(v core.Variant) (core.Extractor, error) {
	if v == core.VariantVerse {
		return extract.NewVerse(extract.VerseOptions{
			LinkTemplate: c.Verse.LinkTemplate,
			MinLength:    c.Verse.MinLength,
		}), nil
	}
	return extract.New(extract.Options{
		Anchor:             c.Gospel.Anchor,
		Terminal:           c.Gospel.Terminal,
		Response:           c.Gospel.Response,
		Proclamation:       c.Gospel.Proclamation,
		Boilerplate:        c.Gospel.Boilerplate,
		RequireTerminal:    c.Gospel.RequireTerminal,
		RemoveMarkdown:     c.Gospel.RemoveMarkdown,
		RemoveVerseNumbers: c.Gospel.RemoveVerseNumbers,
		MinLength:          c.Gospel.MinLength,
		Link:               c.Gospel.TargetURL,
	})
}

// Fetcher builds the configured transport.
func (c *Config) Fetcher() core.Fetcher {
	opts := fetch.Options{
		UserAgent:     c.Fetch.UserAgent,
		Timeout:       c.Fetch.Timeout,
		RatePerSecond: c.Fetch.RatePerSecond,
		Burst:         c.Fetch.Burst,
	}
	if c.Fetch.Transport == "colly" {
		return fetch.NewColly(opts)
	}
	return fetch.New(opts)
}

// RenderSettings returns the slot strings of a variant.
func (c *Config) RenderSettings(v core.Variant) render.Settings {
	src := c.Source(v)
	return render.Settings{
		Variant:           v,
		Title:             src.Title,
		Locale:            c.Render.Locale,
		Timezone:          c.Render.Timezone,
		OKStatus:          c.Render.OKStatus,
		FailureStatus:     c.Render.FailureStatus,
		FallbackReference: c.Render.FallbackReference,
		FallbackText:      src.FallbackText,
		FallbackLink:      src.FallbackLink,
		LinkLabel:         c.Render.LinkLabel,
	}
}
