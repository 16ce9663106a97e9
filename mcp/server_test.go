package mcp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/nexus"
	"github.com/fwojciec/nexus/goquery"
	"github.com/fwojciec/nexus/mcp"
	"github.com/fwojciec/nexus/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("formats provider results", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				return []nexus.Result{
					{Title: "Test Result 1", URL: "https://example.com/1", Snippet: "This is a test snippet 1"},
					{Title: "Test Result 2", URL: "https://example.com/2", Snippet: "This is a test snippet 2"},
				}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "test query", "general", 2)

		assert.Contains(t, out, "Test Result 1")
		assert.Contains(t, out, "https://example.com/1")
		assert.Contains(t, out, "This is a test snippet 1")
		assert.Contains(t, out, "Test Result 2")
	})

	t.Run("empty query short-circuits before the provider call", func(t *testing.T) {
		t.Parallel()

		called := false
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				called = true
				return nil, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "   ", "general", 5)

		assert.Contains(t, out, "Error")
		assert.Contains(t, strings.ToLower(out), "empty")
		assert.False(t, called)
	})

	t.Run("invalid mode is reported", func(t *testing.T) {
		t.Parallel()

		server := mcp.NewServer(mcp.Config{Searcher: &mock.Searcher{}})

		out := server.Search(context.Background(), "test", "invalid_mode", 5)

		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "invalid mode")
	})

	t.Run("docs mode enhances the provider query", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				gotQuery = query
				return []nexus.Result{{Title: "Python Docs", URL: "https://docs.python.org", Snippet: "docs"}}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "python asyncio", "docs", 1)

		assert.Contains(t, out, "Python Docs")
		assert.Contains(t, gotQuery, "python asyncio")
		assert.Contains(t, gotQuery, "site:readthedocs.io")
	})

	t.Run("general mode passes the query through unchanged", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				gotQuery = query
				return []nexus.Result{{Title: "T", URL: "https://example.com", Snippet: "s"}}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		server.Search(context.Background(), "plain query", "general", 1)

		assert.Equal(t, "plain query", gotQuery)
	})

	t.Run("docs mode orders technical results first", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				return []nexus.Result{
					{Title: "Blog", URL: "https://example.com/blog", Snippet: "b"},
					{Title: "Repo", URL: "https://github.com/x/y", Snippet: "r"},
				}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "query", "docs", 10)

		repoPos := strings.Index(out, "https://github.com/x/y")
		blogPos := strings.Index(out, "https://example.com/blog")
		require.GreaterOrEqual(t, repoPos, 0)
		require.GreaterOrEqual(t, blogPos, 0)
		assert.Less(t, repoPos, blogPos)
	})

	t.Run("max_results is clamped into range", func(t *testing.T) {
		t.Parallel()

		var gotMax int
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				gotMax = maxResults
				return []nexus.Result{{Title: "T", URL: "https://example.com", Snippet: "s"}}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		server.Search(context.Background(), "test", "general", 100)
		assert.Equal(t, 20, gotMax)

		server.Search(context.Background(), "test", "general", -5)
		assert.Equal(t, 1, gotMax)
	})

	t.Run("zero max_results uses the configured default", func(t *testing.T) {
		t.Parallel()

		var gotMax int
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				gotMax = maxResults
				return []nexus.Result{{Title: "T", URL: "https://example.com", Snippet: "s"}}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher, DefaultMaxResults: 7})

		server.Search(context.Background(), "test", "general", 0)
		assert.Equal(t, 7, gotMax)
	})

	t.Run("empty provider result set yields informational message", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				return nil, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "obscure", "general", 5)
		assert.Contains(t, out, "No results found")
	})

	t.Run("provider failure surfaces as diagnostic text", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, maxResults int) ([]nexus.Result, error) {
				return nil, nexus.Errorf(nexus.EUNAVAILABLE, "search timed out")
			},
		}
		server := mcp.NewServer(mcp.Config{Searcher: searcher})

		out := server.Search(context.Background(), "test", "general", 5)
		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "timed out")
	})
}

func TestServer_Read(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
<h1>Title</h1>
<p>intro</p>
<pre class="lang-py">x=1</pre>
<nav>skip</nav>
</body></html>`

	newServer := func() *mcp.Server {
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nexus.Document, error) {
				return &nexus.Document{URL: url, HTML: page, StatusCode: 200, ContentType: "text/html"}, nil
			},
		}
		return mcp.NewServer(mcp.Config{
			Fetcher:   fetcher,
			Segmenter: goquery.NewSegmenter(),
		})
	}

	t.Run("code focus keeps header and code, drops prose and nav", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://example.com/page", "code")

		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "x=1")
		assert.NotContains(t, out, "intro")
		assert.NotContains(t, out, "skip")
	})

	t.Run("general focus keeps prose but still drops nav", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://example.com/page", "general")

		assert.Contains(t, out, "intro")
		assert.NotContains(t, out, "skip")
	})

	t.Run("auto focus resolves to code for technical URLs", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://github.com/x/y", "auto")

		assert.Contains(t, out, "=== MODE: CODE ===")
		assert.NotContains(t, out, "intro")
	})

	t.Run("auto focus resolves to general for other URLs", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://example.com/story", "auto")

		assert.Contains(t, out, "=== MODE: GENERAL ===")
		assert.Contains(t, out, "intro")
	})

	t.Run("response names the source URL", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://example.com/page", "general")
		assert.Contains(t, out, "=== SOURCE: https://example.com/page ===")
	})

	t.Run("empty URL is rejected", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "  ", "auto")
		assert.Contains(t, out, "Error")
		assert.Contains(t, strings.ToLower(out), "empty")
	})

	t.Run("invalid focus is rejected", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "https://example.com", "strict")
		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "invalid focus")
	})

	t.Run("scheme check is case-insensitive", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "HTTPS://example.com/page", "general")

		assert.NotContains(t, out, "Error")
		assert.Contains(t, out, "intro")
	})

	t.Run("URL without scheme is rejected", func(t *testing.T) {
		t.Parallel()

		out := newServer().Read(context.Background(), "example.com/page", "auto")
		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "http://")
	})

	t.Run("fetch timeout surfaces as diagnostic text naming the URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nexus.Document, error) {
				return nil, nexus.Errorf(nexus.EUNAVAILABLE, "timeout fetching %s after 15s", url)
			},
		}
		server := mcp.NewServer(mcp.Config{Fetcher: fetcher, Segmenter: goquery.NewSegmenter()})

		out := server.Read(context.Background(), "https://slow.example.com", "general")

		assert.Contains(t, out, "Error")
		assert.Contains(t, out, "timeout")
		assert.Contains(t, out, "https://slow.example.com")
	})

	t.Run("code focus on a prose-only page explains itself", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nexus.Document, error) {
				return &nexus.Document{URL: url, HTML: "<html><body><p>just prose</p></body></html>"}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{Fetcher: fetcher, Segmenter: goquery.NewSegmenter()})

		out := server.Read(context.Background(), "https://example.com", "code")

		assert.Contains(t, out, nexus.NoContentMarker)
		assert.Contains(t, out, "focus='general'")
	})

	t.Run("budget cut to zero blocks reports truncation without the focus hint", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nexus.Document, error) {
				return &nexus.Document{
					URL:  url,
					HTML: "<html><body><pre>" + strings.Repeat("x", 200) + "</pre></body></html>",
				}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{
			Fetcher:         fetcher,
			Segmenter:       goquery.NewSegmenter(),
			MaxContentChars: 50,
		})

		out := server.Read(context.Background(), "https://example.com", "code")

		assert.Contains(t, out, nexus.TruncationMarker)
		assert.NotContains(t, out, nexus.NoContentMarker)
		assert.NotContains(t, out, "focus='general'")
	})

	t.Run("long documents are truncated with a marker", func(t *testing.T) {
		t.Parallel()

		var html strings.Builder
		html.WriteString("<html><body>")
		for range 100 {
			html.WriteString("<p>" + strings.Repeat("words ", 20) + "</p>")
		}
		html.WriteString("</body></html>")

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*nexus.Document, error) {
				return &nexus.Document{URL: url, HTML: html.String()}, nil
			},
		}
		server := mcp.NewServer(mcp.Config{
			Fetcher:         fetcher,
			Segmenter:       goquery.NewSegmenter(),
			MaxContentChars: 500,
		})

		out := server.Read(context.Background(), "https://example.com", "general")

		assert.Contains(t, out, nexus.TruncationMarker)
	})
}
