// Package http provides an HTTP-based implementation of nexus.Fetcher
// with a bounded timeout, a redirect hop cap, and a raw document size
// ceiling.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/nexus"
)

// Defaults match the tool's operating envelope: a few-seconds timeout,
// a small redirect budget, and a hard cap on raw bytes accepted before
// parsing to avoid unbounded memory use on pathological pages.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxRedirects = 5
	DefaultMaxBodyBytes = 2 << 20 // 2 MiB
	DefaultUserAgent    = "nexus/1.0"
)

// errTooManyRedirects marks a redirect chain that exceeded the hop cap.
var errTooManyRedirects = errors.New("too many redirects")

// Ensure Fetcher implements nexus.Fetcher at compile time.
var _ nexus.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static pages only.
type Fetcher struct {
	client       *http.Client
	limiter      *HostLimiter
	timeout      time.Duration
	maxRedirects int
	maxBodyBytes int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects caps redirect following.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithMaxBodyBytes sets the raw document size ceiling.
// Defaults to DefaultMaxBodyBytes if not specified.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit throttles requests to rps per host. Non-positive rps
// disables throttling, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewHostLimiter(rps)
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxBodyBytes: DefaultMaxBodyBytes,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return errTooManyRedirects
			}
			if req.URL == nil || !isHTTPScheme(req.URL.Scheme) {
				return errors.New("redirect to unsupported scheme")
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the document at rawURL. Failures come back as coded
// errors naming the URL: EINVALID for malformed input and oversized or
// non-HTML documents, EUNAVAILABLE for timeouts, connection errors,
// redirect-limit violations, and HTTP error statuses.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*nexus.Document, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !isHTTPScheme(u.Scheme) || u.Host == "" {
		return nil, nexus.Errorf(nexus.EINVALID, "URL must start with http:// or https://: %q", rawURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, fetchError(rawURL, err, f.timeout)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nexus.Errorf(nexus.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchError(rawURL, err, f.timeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nexus.Errorf(nexus.EUNAVAILABLE, "HTTP error %d fetching %s", resp.StatusCode, rawURL)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, nexus.Errorf(nexus.EINVALID, "unsupported content type %q for %s", contentType, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, fetchError(rawURL, err, f.timeout)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, nexus.Errorf(nexus.EINVALID, "document at %s exceeds %d byte limit", rawURL, f.maxBodyBytes)
	}

	return &nexus.Document{
		URL:         rawURL,
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// fetchError converts transport failures into coded errors with
// user-presentable messages naming the URL.
func fetchError(rawURL string, err error, timeout time.Duration) error {
	if errors.Is(err, errTooManyRedirects) {
		return nexus.Errorf(nexus.EUNAVAILABLE, "too many redirects fetching %s", rawURL)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return nexus.Errorf(nexus.EUNAVAILABLE, "timeout fetching %s after %s", rawURL, timeout)
	}
	if errors.Is(err, context.Canceled) {
		return nexus.Errorf(nexus.EUNAVAILABLE, "fetch of %s canceled", rawURL)
	}

	return nexus.Errorf(nexus.EUNAVAILABLE, "connection error fetching %s: %v", rawURL, errCause(err))
}

// errCause strips the *url.Error wrapper so messages don't repeat the URL.
func errCause(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}

func isHTTPScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	return scheme == "http" || scheme == "https"
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == "" ||
		strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml") ||
		strings.HasPrefix(ct, "text/plain")
}
