// Package gemini implements citycopy.Generator using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/citycopy"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements citycopy.Generator at compile time.
var _ citycopy.Generator = (*Generator)(nil)

// Generator implements citycopy.Generator using Google Gemini.
// Requests use JSON output mode constrained by BundleSchema.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Model returns the model name used for requests.
func (g *Generator) Model() string {
	return g.model
}

// Generate returns Gemini's JSON completion for the prompts.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if userPrompt == "" {
		return "", citycopy.Errorf(citycopy.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: userPrompt}},
		}},
		BuildConfig(systemPrompt),
	)
	if err != nil {
		return "", citycopy.Errorf(citycopy.EGENERATE, "gemini request failed: %v", err)
	}
	if result == nil {
		return "", citycopy.Errorf(citycopy.EGENERATE, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", citycopy.Errorf(citycopy.EGENERATE, "gemini returned no content")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(systemPrompt string) *genai.GenerateContentConfig {
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   BundleSchema(),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	return config
}

// BundleSchema describes the generated part of a content bundle.
func BundleSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	strList := &genai.Schema{Type: genai.TypeArray, Items: str}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"introText":     str,
			"localBenefits": strList,
			"localInfo": object(map[string]*genai.Schema{
				"dogParks":    str,
				"regulations": str,
				"climate":     str,
				"nature":      str,
			}, "dogParks", "regulations", "climate", "nature"),
			"challenges": strList,
			"testimonial": object(map[string]*genai.Schema{
				"text":         str,
				"author":       str,
				"neighborhood": str,
			}, "text", "author", "neighborhood"),
			"faqs": {
				Type: genai.TypeArray,
				Items: object(map[string]*genai.Schema{
					"question": str,
					"answer":   str,
				}, "question", "answer"),
			},
		},
		Required:         bundleFields,
		PropertyOrdering: bundleFields,
	}
}

var bundleFields = []string{"introText", "localBenefits", "localInfo", "challenges", "testimonial", "faqs"}

func object(props map[string]*genai.Schema, order ...string) *genai.Schema {
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         order,
		PropertyOrdering: order,
	}
}
