package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/citycopy"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// warmFile is the YAML document read by the warm command.
type warmFile struct {
	Localities []citycopy.GenerateRequest `yaml:"localities"`
}

// warmOutcome records what happened to one locality.
type warmOutcome struct {
	result *citycopy.ContentResult
	err    error
}

// Run executes the warm command.
func (c *WarmCmd) Run(deps *Dependencies) error {
	localities, err := readLocalities(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		return err
	}
	if len(localities) == 0 {
		fmt.Fprintln(deps.Stdout, "No localities found.")
		return nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	// One failing locality does not stop the others.
	outcomes := make([]warmOutcome, len(localities))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i := range localities {
		req := localities[i]
		req.ForceRegenerate = c.Force
		g.Go(func() error {
			result, err := deps.Contents.GetOrGenerate(ctx, &req)
			outcomes[i] = warmOutcome{result: result, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, o := range outcomes {
		slug := localities[i].LocalitySlug
		switch {
		case o.err != nil:
			failed++
			fmt.Fprintf(deps.Stdout, "%s  failed: %s\n", slug, citycopy.ErrorMessage(o.err))
		case o.result.Cached:
			fmt.Fprintf(deps.Stdout, "%s  cached\n", slug)
		case o.result.Persist == citycopy.PersistFailed:
			fmt.Fprintf(deps.Stdout, "%s  generated (not saved)\n", slug)
		default:
			fmt.Fprintf(deps.Stdout, "%s  generated\n", slug)
		}
	}

	if failed > 0 {
		return citycopy.Errorf(citycopy.EGENERATE, "%d of %d localities failed", failed, len(localities))
	}
	return nil
}

func readLocalities(path string) ([]citycopy.GenerateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f warmFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, citycopy.Errorf(citycopy.EINVALID, "invalid localities file %s: %v", path, err)
	}
	return f.Localities, nil
}
