package main

import (
	"context"
	"io"
	"time"

	nexmcp "github.com/fwojciec/nexus/mcp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Server *nexmcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose        bool          `short:"v" help:"Enable debug logging"`
	UserAgent      string        `default:"nexus/1.0" help:"User-Agent header for outbound requests"`
	SearchRPS      float64       `default:"1" help:"Search provider requests per second"`
	FetchRPS       float64       `default:"0" help:"Per-host page fetch requests per second (0 disables throttling)"`
	FetchTimeout   time.Duration `default:"15s" help:"Per-page fetch timeout"`
	MaxChars       int           `default:"8000" help:"Character cap for read output"`
	DefaultResults int           `default:"10" help:"Result count when a search omits max-results"`

	Serve  ServeCmd  `cmd:"" help:"Serve the nexus_search and nexus_read tools over stdio"`
	Search SearchCmd `cmd:"" help:"Run a single search and print the results"`
	Read   ReadCmd   `cmd:"" help:"Fetch a URL and print its extracted content"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string `arg:"" help:"Search query"`
	Mode       string `short:"m" default:"general" enum:"general,docs" help:"Search mode"`
	MaxResults int    `short:"n" help:"Maximum results to return (1-20)"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	URL   string `arg:"" help:"Page URL to read"`
	Focus string `short:"f" default:"auto" enum:"auto,general,code" help:"Extraction focus"`
}
