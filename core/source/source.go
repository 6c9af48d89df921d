// Package source builds the ordered endpoint list for a pipeline run.
// Each proxy template wraps the same target page; the list is tried in order.
package source

import (
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/dailyword/core"
)

// Proxy describes one CORS-bypass relay.
type Proxy struct {
	Name     string
	Template string
	Format   core.Format
}

// ErrNoEndpoints is returned when no proxy yields a usable URL.
var ErrNoEndpoints = errors.New("no usable endpoints")

// Build expands every proxy around target and returns the deduplicated,
// ordered endpoint list. Invalid expansions are reported in skipped.
func Build(target string, proxies []Proxy) (endpoints []core.Endpoint, skipped []error, err error) {
	if err := Validate(target); err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}

	queue := NewQueue()
	for i, p := range proxies {
		u := Expand(p.Template, target)
		if err := Validate(u); err != nil {
			skipped = append(skipped, fmt.Errorf("proxy %d (%s): %w", i, p.Name, err))
			continue
		}
		format := p.Format
		if format == "" {
			format = core.FormatHTML
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("proxy-%d", i+1)
		}
		queue.Add(core.Endpoint{Name: name, URL: u, Format: format})
	}

	if queue.Len() == 0 {
		return nil, skipped, ErrNoEndpoints
	}
	return queue.All(), skipped, nil
}
