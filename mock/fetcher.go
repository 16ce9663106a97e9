package mock

import (
	"context"

	"github.com/fwojciec/nexus"
)

var _ nexus.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of nexus.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*nexus.Document, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*nexus.Document, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
