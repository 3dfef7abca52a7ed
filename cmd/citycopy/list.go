package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/citycopy"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := citycopy.ContentFilter{Limit: c.Limit}
	if c.Province != "" {
		filter.Province = &c.Province
	}

	bundles, err := deps.Store.FindContents(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		return err
	}

	if len(bundles) == 0 {
		fmt.Fprintln(deps.Stdout, "No content found. Use 'citycopy generate' to create some.")
		return nil
	}

	for _, b := range bundles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			b.LocalitySlug, b.LocalityName, b.Province, b.GeneratedAt.Format(time.RFC3339))
	}

	return nil
}
