// Package slog provides logging decorators for the nexus service
// interfaces. Each decorator wraps an implementation and logs the
// operation, its duration, and its outcome.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nexus"
)

// Ensure LoggingSearcher implements nexus.Searcher.
var _ nexus.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with operational logging.
type LoggingSearcher struct {
	next   nexus.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next nexus.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, maxResults int) (results []nexus.Result, err error) {
	defer func(begin time.Time) {
		s.logger.Info("web search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, maxResults)
}
