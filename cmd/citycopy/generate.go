package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/citycopy"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	result, err := deps.Contents.GetOrGenerate(deps.Ctx, &citycopy.GenerateRequest{
		LocalitySlug:    c.Slug,
		LocalityName:    c.Name,
		Province:        c.Province,
		Region:          c.Region,
		Population:      c.Population,
		Distance:        c.Distance,
		ForceRegenerate: c.Force,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		return err
	}

	switch {
	case result.Cached:
		fmt.Fprintf(deps.Stderr, "Using cached content for %q\n", c.Slug)
	case result.Persist == citycopy.PersistFailed:
		fmt.Fprintf(deps.Stderr, "warning: generated content for %q was not saved: %v\n", c.Slug, result.PersistErr)
	default:
		fmt.Fprintf(deps.Stderr, "Generated content for %q\n", c.Slug)
	}

	return writeJSON(deps, result.Content)
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
