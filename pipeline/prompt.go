package pipeline

import (
	"fmt"
	"strings"

	"github.com/fwojciec/citycopy"
)

// BuildSystemPrompt returns the instruction given to the generative model.
func BuildSystemPrompt() string {
	return "You are a copywriter for a professional dog-training business. " +
		"You write warm, concrete, locally grounded marketing copy in Spanish (Spain). " +
		"Use the research notes when they are relevant and never invent regulations. " +
		"Respond with a single JSON object and nothing else."
}

// BuildUserPrompt builds the prompt describing the locality, the research
// notes and the expected JSON shape.
func BuildUserPrompt(req *citycopy.GenerateRequest, research Research) string {
	var sb strings.Builder

	sb.WriteString("<locality>\n")
	fmt.Fprintf(&sb, "<name>%s</name>\n", req.LocalityName)
	fmt.Fprintf(&sb, "<province>%s</province>\n", req.Province)
	fmt.Fprintf(&sb, "<region>%s</region>\n", req.Region)
	fmt.Fprintf(&sb, "<population>%.0f</population>\n", req.Population)
	fmt.Fprintf(&sb, "<distance_km>%.0f</distance_km>\n", req.Distance)
	sb.WriteString("</locality>\n\n")

	sb.WriteString("<research>\n")
	writeNote(&sb, "dog_parks", research.DogParks)
	writeNote(&sb, "regulations", research.Regulations)
	writeNote(&sb, "climate", research.Climate)
	writeNote(&sb, "nature", research.Nature)
	sb.WriteString("</research>\n\n")

	fmt.Fprintf(&sb, "Write the dog-training landing page copy for %s. ", req.LocalityName)
	fmt.Fprintf(&sb, "The trainers travel %.0f km to get there, so mention home visits. ", req.Distance)
	sb.WriteString("Return exactly this JSON object:\n")
	sb.WriteString(`{
  "introText": "one paragraph introducing dog training in the locality",
  "localBenefits": ["4 to 6 benefits specific to the locality"],
  "localInfo": {
    "dogParks": "summary of dog parks and exercise areas",
    "regulations": "summary of municipal pet regulations",
    "climate": "how the climate affects walks and training",
    "nature": "dog-friendly beaches, trails and natural areas"
  },
  "challenges": ["3 to 5 typical challenges for dog owners there"],
  "testimonial": {"text": "short quote", "author": "first name and initial", "neighborhood": "a real neighborhood"},
  "faqs": [{"question": "question", "answer": "answer"}]
}`)
	sb.WriteString("\nInclude 4 to 6 faqs.")

	return sb.String()
}

func writeNote(sb *strings.Builder, topic, summary string) {
	if strings.TrimSpace(summary) == "" {
		summary = Placeholder
	}
	fmt.Fprintf(sb, "<%s>\n%s\n</%s>\n", topic, summary, topic)
}
