package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs are the arguments to the nexus_search tool.
type SearchArgs struct {
	Query      string `json:"query"`
	Mode       string `json:"mode,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// ReadArgs are the arguments to the nexus_read tool.
type ReadArgs struct {
	URL   string `json:"url"`
	Focus string `json:"focus,omitempty"`
}

// SearchTool describes the nexus_search tool.
func SearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "nexus_search",
		Description: "A hybrid search tool combining broad web search with documentation-first filtering. Returns titles, URLs, and snippets.",
		Annotations: &mcp.ToolAnnotations{Title: "Nexus Search"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search term.",
				},
				"mode": map[string]any{
					"type":        "string",
					"enum":        []string{"general", "docs"},
					"description": "'general' for broad web search, 'docs' to prioritize technical documentation.",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"minimum":     1,
					"maximum":     20,
					"description": "Number of results to return (1-20).",
				},
			},
			"required": []string{"query"},
		},
	}
}

// ReadTool describes the nexus_read tool.
func ReadTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "nexus_read",
		Description: "Reads a URL and extracts token-efficient content. Code focus keeps only headers, code blocks, and tables; general focus keeps readable article text; auto detects documentation sites and switches to code focus.",
		Annotations: &mcp.ToolAnnotations{Title: "Nexus Read"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The URL to visit.",
				},
				"focus": map[string]any{
					"type":        "string",
					"enum":        []string{"auto", "general", "code"},
					"description": "'general' returns clean article text, 'code' returns only headers, code blocks, and tables, 'auto' detects documentation sites.",
				},
			},
			"required": []string{"url"},
		},
	}
}

// Run registers both tools on an MCP server and serves the given
// transport until the context is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    DefaultServerName,
		Version: DefaultServerVersion,
	}, nil)

	mcp.AddTool(srv, SearchTool(), s.handleSearch)
	mcp.AddTool(srv, ReadTool(), s.handleRead)

	return srv.Run(ctx, transport)
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	return textResult(s.Search(ctx, args.Query, args.Mode, args.MaxResults)), nil, nil
}

func (s *Server) handleRead(ctx context.Context, _ *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	return textResult(s.Read(ctx, args.URL, args.Focus)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
