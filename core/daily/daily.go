// Package daily runs one complete widget refresh: it builds the endpoint
// list for a variant, runs the pipeline and composes the widget slots.
package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dailyword/config"
	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/locale"
	"github.com/gaurav-prasanna/dailyword/core/pipeline"
	"github.com/gaurav-prasanna/dailyword/core/render"
	"github.com/gaurav-prasanna/dailyword/core/source"
)

// Service produces widgets from configuration.
type Service struct {
	cfg     *config.Config
	fetcher core.Fetcher
	now     func() time.Time
}

// New creates a Service. A nil fetcher uses the configured transport.
func New(cfg *config.Config, fetcher core.Fetcher) *Service {
	if fetcher == nil {
		fetcher = cfg.Fetcher()
	}
	return &Service{cfg: cfg, fetcher: fetcher, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Day returns the current time in the configured time zone.
func (s *Service) Day() time.Time {
	return locale.In(s.now(), s.cfg.Render.Timezone)
}

// Run is the outcome of one refresh.
type Run struct {
	Widget core.Widget
	Result *pipeline.Result
	// Day is the run time in the configured time zone.
	Day time.Time
}

// Today refreshes the widget of a variant. The returned error only reports
// configuration problems; an unreachable source yields a fallback widget.
func (s *Service) Today(ctx context.Context, variant core.Variant) (*Run, error) {
	src := s.cfg.Source(variant)
	endpoints, skipped, err := source.Build(src.TargetURL, s.cfg.Proxies(variant))
	if err != nil {
		return nil, fmt.Errorf("building endpoints for %s: %w", variant, err)
	}
	log := zerolog.Ctx(ctx)
	for _, e := range skipped {
		log.Warn().Err(e).Str("variant", string(variant)).Msg("Skipping proxy")
	}

	extractor, err := s.cfg.Extractor(variant)
	if err != nil {
		return nil, fmt.Errorf("building extractor for %s: %w", variant, err)
	}

	res := pipeline.New(s.fetcher, extractor, s.cfg.Fetch.Timeout).Run(ctx, endpoints)

	now := s.now()
	var name string
	if res.Endpoint != nil {
		name = res.Endpoint.Name
	}
	return &Run{
		Widget: render.Compose(res.Passage, name, now, s.cfg.RenderSettings(variant)),
		Result: res,
		Day:    locale.In(now, s.cfg.Render.Timezone),
	}, nil
}

// Variants lists every variant the service can refresh.
func Variants() []core.Variant {
	return []core.Variant{core.VariantGospel, core.VariantVerse}
}
