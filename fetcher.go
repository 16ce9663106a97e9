package nexus

import "context"

// Document represents one fetched page. It is held only for the duration
// of a single read call and never persisted.
type Document struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
}

// Fetcher retrieves documents over the network.
type Fetcher interface {
	// Fetch retrieves the document at url. The context controls timeout
	// and cancellation. HTTP error statuses, timeouts, and redirect-limit
	// violations are returned as coded errors, not panics.
	Fetch(ctx context.Context, url string) (*Document, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
