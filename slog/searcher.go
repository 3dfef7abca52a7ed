// Package slog provides logging decorators for citycopy services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citycopy"
)

// Ensure LoggingSearcher implements citycopy.Searcher.
var _ citycopy.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   citycopy.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next citycopy.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (results []citycopy.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
