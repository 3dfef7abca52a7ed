package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/citycopy"
)

// Ensure LoggingGenerator implements citycopy.Generator.
var _ citycopy.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. Prompts are logged by
// size and hash rather than content.
type LoggingGenerator struct {
	next   citycopy.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next citycopy.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_bytes", len(systemPrompt)+len(userPrompt),
			"prompt_hash", xxhash.Sum64String(userPrompt),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, systemPrompt, userPrompt)
}
