// Package mock provides function-field mock implementations of the
// nexus domain interfaces for tests.
package mock

import (
	"context"

	"github.com/fwojciec/nexus"
)

var _ nexus.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of nexus.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error)
}

func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
	return s.SearchFn(ctx, query, maxResults)
}
