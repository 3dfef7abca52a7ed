package mock

import (
	"context"

	"github.com/fwojciec/citycopy"
)

var _ citycopy.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of citycopy.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) ([]citycopy.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string) ([]citycopy.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
