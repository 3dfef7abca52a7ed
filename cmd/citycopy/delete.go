package main

import (
	"fmt"

	"github.com/fwojciec/citycopy"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return citycopy.Errorf(citycopy.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Store.DeleteContent(deps.Ctx, c.Slug); err != nil {
		if citycopy.ErrorCode(err) == citycopy.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no content for %q. Use 'citycopy list' to see cached localities.\n", c.Slug)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted content for %q\n", c.Slug)
	return nil
}
