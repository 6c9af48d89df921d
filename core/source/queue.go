// Package source — ordered endpoint list with deduplication.
package source

import "github.com/gaurav-prasanna/dailyword/core"

// Queue keeps endpoints in insertion order, dropping repeated URLs.
type Queue struct {
	items   []core.Endpoint
	visited map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues an endpoint unless its URL has been seen before.
// It reports whether the endpoint was added.
func (q *Queue) Add(ep core.Endpoint) bool {
	key := NormalizeURL(ep.URL)
	if q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.items = append(q.items, ep)
	return true
}

// Len returns the number of queued endpoints.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns the endpoints in priority order.
func (q *Queue) All() []core.Endpoint {
	return q.items
}
