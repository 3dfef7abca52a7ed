package mock

import (
	"context"

	"github.com/fwojciec/citycopy"
)

var _ citycopy.Generator = (*Generator)(nil)

// Generator is a mock implementation of citycopy.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return g.GenerateFn(ctx, systemPrompt, userPrompt)
}
