package citycopy

import (
	"context"
	"strings"
)

// GenerateRequest describes the locality whose content is requested.
// Population and distance only feed the generation prompt.
type GenerateRequest struct {
	LocalitySlug    string  `json:"localitySlug" yaml:"slug"`
	LocalityName    string  `json:"localityName" yaml:"name"`
	Province        string  `json:"province" yaml:"province"`
	Population      float64 `json:"population" yaml:"population"`
	Distance        float64 `json:"distanceFromReferencePoint" yaml:"distance"`
	Region          string  `json:"region" yaml:"region"`
	ForceRegenerate bool    `json:"forceRegenerate,omitempty" yaml:"-"`
}

// Validate returns an error if the request contains invalid fields.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.LocalitySlug) == "" {
		return Errorf(EINVALID, "locality slug required")
	}
	if strings.TrimSpace(r.LocalityName) == "" {
		return Errorf(EINVALID, "locality name required")
	}
	if r.Population < 0 {
		return Errorf(EINVALID, "population must not be negative")
	}
	if r.Distance < 0 {
		return Errorf(EINVALID, "distance must not be negative")
	}
	return nil
}

// PersistStatus reports what happened to the cache entry after a request.
type PersistStatus int

const (
	// PersistSkipped means nothing was written (the bundle came from the cache).
	PersistSkipped PersistStatus = iota
	// Persisted means the generated bundle was written to the store.
	Persisted
	// PersistFailed means generation succeeded but the store write failed.
	PersistFailed
)

// String returns the string representation of the status.
func (s PersistStatus) String() string {
	switch s {
	case PersistSkipped:
		return "skipped"
	case Persisted:
		return "persisted"
	case PersistFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ContentResult is the outcome of a successful GetOrGenerate call.
type ContentResult struct {
	Content *ContentBundle
	Cached  bool
	Persist PersistStatus
	// PersistErr holds the store error when Persist is PersistFailed.
	PersistErr error
}

// ContentService returns locality content, generating it when necessary.
type ContentService interface {
	// GetOrGenerate returns the cached bundle for the request's slug, or
	// generates, stores and returns a new one. ForceRegenerate skips the
	// cache lookup.
	//
	// Returns ECONFIG when providers are not configured, EINVALID for bad
	// requests, EGENERATE when the model call fails and EPARSE when its
	// output is not a valid bundle. A failed store write is not an error;
	// it is reported through ContentResult.Persist.
	GetOrGenerate(ctx context.Context, req *GenerateRequest) (*ContentResult, error)
}
