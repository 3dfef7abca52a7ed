package citycopy

import "context"

// Generator produces text completions from a generative model.
type Generator interface {
	// Generate returns the model's completion for the prompts.
	// Implementations request JSON output; callers still validate it.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
