package pipeline

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/citycopy"
)

// generated holds the fields the model is asked to produce.
type generated struct {
	IntroText     string               `json:"introText"`
	LocalBenefits []string             `json:"localBenefits"`
	LocalInfo     citycopy.LocalInfo   `json:"localInfo"`
	Challenges    []string             `json:"challenges"`
	Testimonial   citycopy.Testimonial `json:"testimonial"`
	FAQs          []citycopy.FAQ       `json:"faqs"`
}

// ParseBundle parses model output into a content bundle.
//
// The output must be exactly one JSON object, optionally surrounded by
// whitespace. Fenced or prose-wrapped output is rejected rather than
// scanned for an embedded object. Omitted string fields are left empty;
// an empty introText is rejected. Errors have code EPARSE.
func ParseBundle(text string) (*citycopy.ContentBundle, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, citycopy.Errorf(citycopy.EPARSE, "model output is not a JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	var out generated
	if err := dec.Decode(&out); err != nil {
		return nil, citycopy.Errorf(citycopy.EPARSE, "malformed model output: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, citycopy.Errorf(citycopy.EPARSE, "unexpected data after JSON object")
	}
	if strings.TrimSpace(out.IntroText) == "" {
		return nil, citycopy.Errorf(citycopy.EPARSE, "model output missing introText")
	}

	bundle := &citycopy.ContentBundle{
		IntroText:     out.IntroText,
		LocalBenefits: out.LocalBenefits,
		LocalInfo:     out.LocalInfo,
		Challenges:    out.Challenges,
		Testimonial:   out.Testimonial,
		FAQs:          out.FAQs,
	}
	bundle.Normalize()
	return bundle, nil
}
