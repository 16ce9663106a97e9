package main

import (
	"fmt"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	out := deps.Server.Search(deps.Ctx, c.Query, c.Mode, c.MaxResults)
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
