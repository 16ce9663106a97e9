package main

import (
	"fmt"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	out := deps.Server.Read(deps.Ctx, c.URL, c.Focus)
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
