package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/nexus"
	"github.com/fwojciec/nexus/duckduckgo"
	"github.com/fwojciec/nexus/goquery"
	nexhttp "github.com/fwojciec/nexus/http"
	nexmcp "github.com/fwojciec/nexus/mcp"
	nexslog "github.com/fwojciec/nexus/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields are replaced with
	// production implementations in Run().
	Searcher  nexus.Searcher
	Fetcher   nexus.Fetcher
	Segmenter nexus.Segmenter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nexus"),
		kong.Description("Mode-aware web search and focused page reading for LLM agents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nexus --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logs go to stderr so the serve command keeps stdout clean for the
	// protocol stream.
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Searcher == nil {
		m.Searcher = duckduckgo.NewSearcher(
			duckduckgo.WithUserAgent(cli.UserAgent),
			duckduckgo.WithRateLimit(cli.SearchRPS),
		)
	}
	if m.Fetcher == nil {
		m.Fetcher = nexhttp.NewFetcher(
			nexhttp.WithUserAgent(cli.UserAgent),
			nexhttp.WithTimeout(cli.FetchTimeout),
			nexhttp.WithRateLimit(cli.FetchRPS),
		)
	}
	if m.Segmenter == nil {
		m.Segmenter = goquery.NewSegmenter()
	}
	defer m.Close()

	deps.Server = nexmcp.NewServer(nexmcp.Config{
		Searcher:          nexslog.NewLoggingSearcher(m.Searcher, logger),
		Fetcher:           nexslog.NewLoggingFetcher(m.Fetcher, logger),
		Segmenter:         m.Segmenter,
		MaxContentChars:   cli.MaxChars,
		DefaultMaxResults: cli.DefaultResults,
		Logger:            logger,
	})

	return kongCtx.Run(deps)
}
