package pipeline_test

import (
	"testing"

	"github.com/fwojciec/citycopy"
	"github.com/fwojciec/citycopy/pipeline"
	"github.com/stretchr/testify/assert"
)

func elcheRequest() *citycopy.GenerateRequest {
	return &citycopy.GenerateRequest{
		LocalitySlug: "elche",
		LocalityName: "Elche",
		Province:     "Alicante",
		Population:   230000,
		Distance:     90,
		Region:       "Comunidad Valenciana",
	}
}

func TestBuildUserPrompt_ContainsLocality(t *testing.T) {
	t.Parallel()

	prompt := pipeline.BuildUserPrompt(elcheRequest(), pipeline.Research{})

	assert.Contains(t, prompt, "<name>Elche</name>")
	assert.Contains(t, prompt, "<province>Alicante</province>")
	assert.Contains(t, prompt, "<region>Comunidad Valenciana</region>")
	assert.Contains(t, prompt, "<population>230000</population>")
	assert.Contains(t, prompt, "<distance_km>90</distance_km>")
}

func TestBuildUserPrompt_ContainsResearch(t *testing.T) {
	t.Parallel()

	research := pipeline.Research{
		DogParks:    "Parque de Altabix",
		Regulations: "Ordenanza 2019",
		Climate:     "Mediterráneo",
		Nature:      "Playa del Carabassí",
	}

	prompt := pipeline.BuildUserPrompt(elcheRequest(), research)

	assert.Contains(t, prompt, "<dog_parks>\nParque de Altabix\n</dog_parks>")
	assert.Contains(t, prompt, "<regulations>\nOrdenanza 2019\n</regulations>")
	assert.Contains(t, prompt, "<climate>\nMediterráneo\n</climate>")
	assert.Contains(t, prompt, "<nature>\nPlaya del Carabassí\n</nature>")
}

func TestBuildUserPrompt_UsesPlaceholderForEmptyResearch(t *testing.T) {
	t.Parallel()

	prompt := pipeline.BuildUserPrompt(elcheRequest(), pipeline.Research{Climate: "Mediterráneo"})

	assert.Contains(t, prompt, "<dog_parks>\n"+pipeline.Placeholder+"\n</dog_parks>")
	assert.Contains(t, prompt, "<climate>\nMediterráneo\n</climate>")
}

func TestBuildUserPrompt_DescribesJSONShape(t *testing.T) {
	t.Parallel()

	prompt := pipeline.BuildUserPrompt(elcheRequest(), pipeline.Research{})

	for _, key := range []string{"introText", "localBenefits", "localInfo", "dogParks", "regulations", "climate", "nature", "challenges", "testimonial", "neighborhood", "faqs"} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
	assert.NotContains(t, prompt, "localitySlug")
	assert.NotContains(t, prompt, "generatedAt")
}

func TestBuildSystemPrompt_RequestsJSON(t *testing.T) {
	t.Parallel()

	assert.Contains(t, pipeline.BuildSystemPrompt(), "single JSON object")
}
