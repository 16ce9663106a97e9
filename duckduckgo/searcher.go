// Package duckduckgo provides a nexus.Searcher backed by the DuckDuckGo
// HTML endpoint, which serves results without requiring an API key.
package duckduckgo

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nexus"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the no-JavaScript DuckDuckGo results endpoint.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// DefaultSearchTimeout bounds a single provider round trip.
const DefaultSearchTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to the provider.
const DefaultUserAgent = "nexus/1.0"

// defaultRPS throttles provider requests. One request per second with a
// small burst keeps the client polite under pipelined tool calls.
const defaultRPS = 1.0

// Ensure Searcher implements nexus.Searcher at compile time.
var _ nexus.Searcher = (*Searcher)(nil)

// Searcher retrieves search results by scraping the DuckDuckGo HTML
// endpoint and parsing title/url/snippet tuples out of the result list.
type Searcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.client = c
	}
}

// WithBaseURL overrides the results endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(s *Searcher) {
		s.userAgent = ua
	}
}

// WithRateLimit sets the provider request rate in requests per second.
// Non-positive rps keeps the default rate.
func WithRateLimit(rps float64) Option {
	return func(s *Searcher) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 3)
		}
	}
}

// NewSearcher creates a new DuckDuckGo Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Limit(defaultRPS), 3),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: DefaultSearchTimeout}
	}
	return s
}

// Search performs a query and returns up to maxResults raw hits.
// Provider failures come back as EUNAVAILABLE coded errors.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nexus.Errorf(nexus.EUNAVAILABLE, "search canceled while rate limited: %v", err)
	}

	endpoint, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, nexus.Errorf(nexus.EINTERNAL, "invalid search base URL %q: %v", s.baseURL, err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, nexus.Errorf(nexus.EINTERNAL, "failed to build search request: %v", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, nexus.Errorf(nexus.EUNAVAILABLE, "search timed out")
		}
		return nil, nexus.Errorf(nexus.EUNAVAILABLE, "search failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nexus.Errorf(nexus.EUNAVAILABLE, "search provider returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nexus.Errorf(nexus.EUNAVAILABLE, "failed to parse search results: %v", err)
	}

	return parseResults(doc, maxResults), nil
}

// parseResults walks the DuckDuckGo result list. Sponsored entries are
// skipped; redirect-wrapped links are unwrapped to their target URL.
func parseResults(doc *goquery.Document, maxResults int) []nexus.Result {
	var results []nexus.Result
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.HasClass("result--ad") {
			return true
		}

		anchor := sel.Find("a.result__a").First()
		href, exists := anchor.Attr("href")
		if !exists {
			return true
		}

		target := unwrapRedirect(href)
		title := collapse(anchor.Text())
		if target == "" || title == "" {
			return true
		}

		results = append(results, nexus.Result{
			Title:   title,
			URL:     target,
			Snippet: collapse(sel.Find(".result__snippet").Text()),
		})
		return len(results) < maxResults
	})
	return results
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect wrapper to the
// underlying target URL. Non-wrapped links pass through unchanged.
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.Contains(u.Host, "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
		return ""
	}
	return href
}

// collapse normalizes consecutive whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
