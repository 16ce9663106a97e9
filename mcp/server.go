// Package mcp exposes the search and read pipelines as tools over the
// Model Context Protocol. All failures are converted to diagnostic text
// at this boundary: a tool call always receives a well-formed response,
// never a transport-level error.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/nexus"
)

// Defaults mirror the tool's operating envelope.
const (
	DefaultMaxContentChars = 8000
	DefaultResultCount     = 10
	DefaultServerName      = "nexus"
	DefaultServerVersion   = "1.0.0"
)

// docsQuerySuffix biases the provider toward technical sources before
// the filter/ranker runs.
const docsQuerySuffix = " site:readthedocs.io OR site:github.com OR site:stackoverflow.com OR documentation API"

// noResultsMessage is returned for an empty provider result set.
const noResultsMessage = "No results found. Try a different query or mode."

// Config holds the collaborators and tuning for a Server. All state is
// provided here; the server itself holds no mutable state across calls.
type Config struct {
	Searcher  nexus.Searcher
	Fetcher   nexus.Fetcher
	Segmenter nexus.Segmenter

	// Markers drives URL classification. Zero value means DefaultMarkers.
	Markers nexus.MarkerSet

	// MaxContentChars caps serialized read output. Zero means
	// DefaultMaxContentChars.
	MaxContentChars int

	// DefaultMaxResults applies when a search call omits max_results.
	// Zero means DefaultResultCount.
	DefaultMaxResults int

	// Logger receives operational events. Nil means discard.
	Logger *slog.Logger
}

// Server is the tool façade: it validates inputs, orchestrates the
// external collaborators, runs the pure pipeline, and shapes results.
type Server struct {
	searcher          nexus.Searcher
	fetcher           nexus.Fetcher
	segmenter         nexus.Segmenter
	markers           nexus.MarkerSet
	maxContentChars   int
	defaultMaxResults int
	logger            *slog.Logger
}

// NewServer creates a new Server from cfg, applying defaults for any
// zero-valued tuning field.
func NewServer(cfg Config) *Server {
	s := &Server{
		searcher:          cfg.Searcher,
		fetcher:           cfg.Fetcher,
		segmenter:         cfg.Segmenter,
		markers:           cfg.Markers,
		maxContentChars:   cfg.MaxContentChars,
		defaultMaxResults: cfg.DefaultMaxResults,
		logger:            cfg.Logger,
	}
	if s.markers.IsZero() {
		s.markers = nexus.DefaultMarkers()
	}
	if s.maxContentChars == 0 {
		s.maxContentChars = DefaultMaxContentChars
	}
	if s.defaultMaxResults == 0 {
		s.defaultMaxResults = DefaultResultCount
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Search executes the nexus_search operation and returns the response
// text. Invalid input and upstream failures are reported in the text,
// never raised; an empty query short-circuits before any provider call.
func (s *Server) Search(ctx context.Context, query, mode string, maxResults int) string {
	query = strings.TrimSpace(query)
	if query == "" {
		s.logger.Error("search rejected", "reason", "empty query")
		return "Error: query cannot be empty"
	}

	if mode == "" {
		mode = string(nexus.SearchGeneral)
	}
	if !nexus.ValidSearchMode(mode) {
		s.logger.Error("search rejected", "reason", "invalid mode", "mode", mode)
		return fmt.Sprintf("Error: invalid mode %q. Must be 'general' or 'docs'", mode)
	}
	searchMode := nexus.SearchMode(mode)

	if maxResults == 0 {
		maxResults = s.defaultMaxResults
	}
	if clamped := nexus.ClampMaxResults(maxResults); clamped != maxResults {
		s.logger.Warn("max_results out of range, clamped", "requested", maxResults, "effective", clamped)
		maxResults = clamped
	}

	searchQuery := query
	if searchMode == nexus.SearchDocs {
		searchQuery += docsQuerySuffix
	}

	s.logger.Info("search requested", "query", query, "mode", mode, "max_results", maxResults)

	results, err := s.searcher.Search(ctx, searchQuery, maxResults)
	if err != nil {
		s.logger.Error("search failed", "query", query, "err", err)
		return "Error: " + nexus.ErrorMessage(err)
	}
	if len(results) == 0 {
		return noResultsMessage
	}

	ranked := nexus.FilterAndRank(results, searchMode, maxResults, s.markers)
	return formatResults(ranked)
}

// Read executes the nexus_read operation and returns the response text.
// Auto focus is resolved from the URL before fetching; fetch failures
// become diagnostic text naming the URL.
func (s *Server) Read(ctx context.Context, rawURL, focus string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		s.logger.Error("read rejected", "reason", "empty URL")
		return "Error: URL cannot be empty"
	}

	if focus == "" {
		focus = string(nexus.FocusAuto)
	}
	if !nexus.ValidFocus(focus) {
		s.logger.Error("read rejected", "reason", "invalid focus", "focus", focus)
		return fmt.Sprintf("Error: invalid focus %q. Must be 'auto', 'general', or 'code'", focus)
	}

	scheme := ""
	if u, err := url.Parse(rawURL); err == nil {
		scheme = strings.ToLower(u.Scheme)
	}
	if scheme != "http" && scheme != "https" {
		s.logger.Error("read rejected", "reason", "bad scheme", "url", rawURL)
		return "Error: URL must start with http:// or https://"
	}

	resolved := nexus.FocusMode(focus)
	if resolved == nexus.FocusAuto {
		resolved = s.markers.Classify(rawURL).SuggestedFocus
		s.logger.Debug("auto-detected focus", "url", rawURL, "focus", resolved)
	}

	s.logger.Info("read requested", "url", rawURL, "focus", resolved)

	doc, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logger.Error("read failed", "url", rawURL, "err", err)
		return "Error: " + nexus.ErrorMessage(err)
	}

	blocks, err := s.segmenter.Segment(doc.HTML)
	if err != nil {
		s.logger.Error("segmentation failed", "url", rawURL, "err", err)
		return "Error: " + nexus.ErrorMessage(err)
	}

	content := nexus.Extract(blocks, resolved, s.maxContentChars, rawURL)

	var b strings.Builder
	fmt.Fprintf(&b, "=== SOURCE: %s ===\n", rawURL)
	fmt.Fprintf(&b, "=== MODE: %s ===\n\n", strings.ToUpper(string(resolved)))
	b.WriteString(nexus.FormatContent(content))
	if len(content.Blocks) == 0 && !content.Truncated && resolved == nexus.FocusCode {
		b.WriteString("\nThe page may not contain structured documentation. Try focus='general' for better results.")
	}

	s.logger.Info("read successful", "url", rawURL, "blocks", len(content.Blocks), "truncated", content.Truncated)
	return b.String()
}

// formatResults renders ranked results as a compact, LLM-friendly list.
func formatResults(ranked []nexus.RankedResult) string {
	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, fmt.Sprintf("- [Title]: %s\n  [URL]: %s\n  [Snippet]: %s", r.Title, r.URL, r.Snippet))
	}
	return strings.Join(parts, "\n\n")
}
