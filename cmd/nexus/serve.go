package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	return deps.Server.Run(deps.Ctx, &mcp.StdioTransport{})
}
