package citycopy

import (
	"context"
	"time"
)

// ContentBundle is the marketing copy generated for one locality.
// It is cached and returned as a unit; a regeneration replaces it entirely.
type ContentBundle struct {
	LocalitySlug  string      `json:"localitySlug"`
	LocalityName  string      `json:"localityName"`
	Province      string      `json:"province"`
	IntroText     string      `json:"introText"`
	LocalBenefits []string    `json:"localBenefits"`
	LocalInfo     LocalInfo   `json:"localInfo"`
	Challenges    []string    `json:"challenges"`
	Testimonial   Testimonial `json:"testimonial"`
	FAQs          []FAQ       `json:"faqs"`
	GeneratedAt   time.Time   `json:"generatedAt"`
}

// LocalInfo holds one summary per researched topic.
type LocalInfo struct {
	DogParks    string `json:"dogParks"`
	Regulations string `json:"regulations"`
	Climate     string `json:"climate"`
	Nature      string `json:"nature"`
}

// Testimonial is a short customer quote attributed to a neighborhood.
type Testimonial struct {
	Text         string `json:"text"`
	Author       string `json:"author"`
	Neighborhood string `json:"neighborhood"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate returns an error if the bundle contains invalid fields.
func (b *ContentBundle) Validate() error {
	if b.LocalitySlug == "" {
		return Errorf(EINVALID, "locality slug required")
	}
	return nil
}

// Normalize replaces nil sequences with empty ones so a bundle always
// serializes with arrays rather than nulls. Order is preserved.
func (b *ContentBundle) Normalize() {
	if b.LocalBenefits == nil {
		b.LocalBenefits = []string{}
	}
	if b.Challenges == nil {
		b.Challenges = []string{}
	}
	if b.FAQs == nil {
		b.FAQs = []FAQ{}
	}
}

// ContentStore persists content bundles keyed by locality slug.
type ContentStore interface {
	// FindContentBySlug retrieves the bundle for a locality.
	// Returns ENOTFOUND if no bundle is stored for the slug.
	FindContentBySlug(ctx context.Context, slug string) (*ContentBundle, error)

	// FindContents retrieves bundles matching the filter.
	FindContents(ctx context.Context, filter ContentFilter) ([]*ContentBundle, error)

	// UpsertContent inserts the bundle or replaces the stored one with the
	// same slug. No fields of a replaced bundle survive.
	UpsertContent(ctx context.Context, bundle *ContentBundle) error

	// DeleteContent removes the bundle for a locality.
	// Returns ENOTFOUND if no bundle is stored for the slug.
	DeleteContent(ctx context.Context, slug string) error
}

// ContentFilter represents a filter for FindContents.
type ContentFilter struct {
	Province *string `json:"province"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
