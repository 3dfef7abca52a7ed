// Package pipeline provides the locality content cache-or-generate flow.
// It coordinates cache lookup, web research, generation, parsing and
// storage of content bundles.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/citycopy"
	"golang.org/x/sync/singleflight"
)

var _ citycopy.ContentService = (*Pipeline)(nil)

// Pipeline implements citycopy.ContentService.
//
// Concurrent misses for the same slug each generate and upsert; the last
// write wins. Set Dedupe to share one generation between concurrent
// callers instead.
type Pipeline struct {
	Store     citycopy.ContentStore
	Searcher  citycopy.Searcher
	Generator citycopy.Generator
	Logger    *slog.Logger
	Now       func() time.Time
	Dedupe    bool

	group singleflight.Group
}

// GetOrGenerate returns cached content for the request's locality or
// generates it.
func (p *Pipeline) GetOrGenerate(ctx context.Context, req *citycopy.GenerateRequest) (*citycopy.ContentResult, error) {
	if err := p.checkConfig(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !req.ForceRegenerate {
		bundle, err := p.Store.FindContentBySlug(ctx, req.LocalitySlug)
		if err == nil {
			return &citycopy.ContentResult{
				Content: bundle,
				Cached:  true,
				Persist: citycopy.PersistSkipped,
			}, nil
		}
		if citycopy.ErrorCode(err) != citycopy.ENOTFOUND {
			p.logger().Warn("cache lookup failed",
				"slug", req.LocalitySlug,
				"err", err,
			)
		}
	}

	if !p.Dedupe {
		return p.generate(ctx, req)
	}

	key := req.LocalitySlug
	if req.ForceRegenerate {
		key += "\x00force"
	}
	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*citycopy.ContentResult), nil
}

func (p *Pipeline) checkConfig() error {
	switch {
	case p.Searcher == nil:
		return citycopy.Errorf(citycopy.ECONFIG, "search provider not configured")
	case p.Generator == nil:
		return citycopy.Errorf(citycopy.ECONFIG, "generation provider not configured")
	case p.Store == nil:
		return citycopy.Errorf(citycopy.ECONFIG, "content store not configured")
	}
	return nil
}

// generate runs research, generation and parsing, then stores the bundle.
// Nothing is stored unless parsing succeeds.
func (p *Pipeline) generate(ctx context.Context, req *citycopy.GenerateRequest) (*citycopy.ContentResult, error) {
	begin := p.now()

	research := p.research(ctx, req.LocalityName)

	text, err := p.Generator.Generate(ctx, BuildSystemPrompt(), BuildUserPrompt(req, research))
	if err != nil {
		return nil, generationError(err)
	}
	if text == "" {
		return nil, citycopy.Errorf(citycopy.EGENERATE, "generator returned no content")
	}

	bundle, err := ParseBundle(text)
	if err != nil {
		return nil, err
	}
	bundle.LocalitySlug = req.LocalitySlug
	bundle.LocalityName = req.LocalityName
	bundle.Province = req.Province
	bundle.GeneratedAt = p.now().UTC()
	bundle.Normalize()

	result := &citycopy.ContentResult{
		Content: bundle,
		Persist: citycopy.Persisted,
	}
	if err := p.Store.UpsertContent(ctx, bundle); err != nil {
		result.Persist = citycopy.PersistFailed
		result.PersistErr = err
		p.logger().Error("content not persisted",
			"slug", req.LocalitySlug,
			"err", err,
		)
	}

	p.logger().Info("content generated",
		"slug", req.LocalitySlug,
		"force", req.ForceRegenerate,
		"persist", result.Persist.String(),
		"duration", p.now().Sub(begin),
	)

	return result, nil
}

// generationError reports a generator failure as EGENERATE. Configuration
// errors keep their code.
func generationError(err error) error {
	var e *citycopy.Error
	if !errors.As(err, &e) {
		return citycopy.Errorf(citycopy.EGENERATE, "content generation failed: %v", err)
	}
	switch e.Code {
	case citycopy.ECONFIG, citycopy.EGENERATE:
		return err
	}
	return citycopy.Errorf(citycopy.EGENERATE, "content generation failed: %s", e.Message)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
