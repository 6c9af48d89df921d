// Package pipeline runs fetch → normalize → extract over an ordered endpoint
// list. Attempts are folded left to right and the first success wins; every
// failure kind is handled the same way, by moving on to the next endpoint.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/normalize"
)

const defaultTimeout = 9 * time.Second

// Attempt records the outcome of one endpoint.
type Attempt struct {
	Endpoint core.Endpoint
	Kind     core.ErrorKind
	Err      error
	Duration time.Duration
}

// Result is the outcome of a run. Passage is nil when every endpoint failed,
// in which case Err wraps core.ErrNoSource.
type Result struct {
	RunID    string
	Passage  *core.Passage
	Endpoint *core.Endpoint
	Attempts []Attempt
	Err      error
}

// OK reports whether an endpoint produced a passage.
func (r *Result) OK() bool {
	return r.Passage != nil
}

// Pipeline wires a fetcher and an extractor. The normalizer is chosen per
// endpoint from its format.
type Pipeline struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	timeout   time.Duration
}

// New creates a Pipeline. A non-positive timeout uses the default of 9s.
func New(fetcher core.Fetcher, extractor core.Extractor, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		timeout:   timeout,
	}
}

// Run tries each endpoint once, in order. It never returns an error: total
// failure is reported through Result.Err.
func (p *Pipeline) Run(ctx context.Context, endpoints []core.Endpoint) *Result {
	res := &Result{RunID: uuid.NewString()}
	log := zerolog.Ctx(ctx).With().Str("run_id", res.RunID).Logger()

	for _, ep := range endpoints {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		passage, err := p.attempt(ctx, ep)
		elapsed := time.Since(start)

		if err == nil {
			res.Attempts = append(res.Attempts, Attempt{Endpoint: ep, Duration: elapsed})
			res.Passage = passage
			res.Endpoint = &ep
			log.Info().
				Str("endpoint", ep.Name).
				Str("reference", passage.Reference).
				Dur("took", elapsed).
				Msg("Passage extracted")
			return res
		}

		kind := core.KindOf(err)
		res.Attempts = append(res.Attempts, Attempt{Endpoint: ep, Kind: kind, Err: err, Duration: elapsed})
		log.Warn().
			Err(err).
			Str("endpoint", ep.Name).
			Str("kind", string(kind)).
			Dur("took", elapsed).
			Msg("Endpoint failed, trying next")
	}

	res.Err = fmt.Errorf("%w: %d endpoint(s) tried", core.ErrNoSource, len(res.Attempts))
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Err = fmt.Errorf("%w: %w", core.ErrNoSource, ctxErr)
	}
	log.Error().Err(res.Err).Msg("No endpoint produced a passage")
	return res
}

// attempt runs one endpoint under its own deadline.
func (p *Pipeline) attempt(ctx context.Context, ep core.Endpoint) (*core.Passage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	normalizer, err := normalize.New(ep.Format)
	if err != nil {
		return nil, core.Errorf(core.KindParse, "%w", err)
	}

	// 1. Fetch
	result, err := p.fetcher.Fetch(ctx, ep.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Normalize
	text, err := normalizer.Normalize(result.Body)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	// 3. Extract
	passage, err := p.extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return passage, nil
}
