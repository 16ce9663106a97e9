package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nexus"
)

// Ensure LoggingFetcher implements nexus.Fetcher.
var _ nexus.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with operational logging.
type LoggingFetcher struct {
	next   nexus.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next nexus.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (doc *nexus.Document, err error) {
	defer func(begin time.Time) {
		size := 0
		if doc != nil {
			size = len(doc.HTML)
		}
		f.logger.Info("page fetch",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
