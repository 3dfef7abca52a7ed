package main

import (
	"fmt"

	"github.com/fwojciec/citycopy"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	bundle, err := deps.Store.FindContentBySlug(deps.Ctx, c.Slug)
	if citycopy.ErrorCode(err) == citycopy.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: no content for %q. Use 'citycopy generate' to create it.\n", c.Slug)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		return err
	}

	return writeJSON(deps, bundle)
}
