package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/citycopy"
	"golang.org/x/sync/errgroup"
)

// ResultsPerTopic is the number of search results kept for each topic.
const ResultsPerTopic = 3

// Placeholder stands in for a topic with no usable search results.
const Placeholder = "No hay información disponible."

// Research holds one summary per researched topic.
type Research struct {
	DogParks    string
	Regulations string
	Climate     string
	Nature      string
}

type topic struct {
	name  string
	query string
}

// Topics returns the search queries issued for a locality, in order:
// dog parks, pet regulations, climate, dog-friendly nature.
func Topics(locality string) []string {
	ts := topics(locality)
	queries := make([]string, len(ts))
	for i, t := range ts {
		queries[i] = t.query
	}
	return queries
}

func topics(locality string) []topic {
	return []topic{
		{name: "dog_parks", query: fmt.Sprintf("parques para perros y zonas de esparcimiento canino en %s", locality)},
		{name: "regulations", query: fmt.Sprintf("ordenanza municipal animales de compañía perros %s", locality)},
		{name: "climate", query: fmt.Sprintf("clima de %s temperaturas verano invierno", locality)},
		{name: "nature", query: fmt.Sprintf("playas para perros y rutas de naturaleza con perro cerca de %s", locality)},
	}
}

// research runs every topic query concurrently and waits for all of them.
// A failed query contributes the placeholder and never aborts the others.
func (p *Pipeline) research(ctx context.Context, locality string) Research {
	ts := topics(locality)
	summaries := make([]string, len(ts))

	var g errgroup.Group
	for i, t := range ts {
		g.Go(func() error {
			results, err := p.Searcher.Search(ctx, t.query)
			if err != nil {
				p.logger().Warn("search degraded",
					"topic", t.name,
					"query", t.query,
					"err", err,
				)
				results = nil
			}
			summaries[i] = Summarize(results, ResultsPerTopic)
			return nil
		})
	}
	_ = g.Wait()

	return Research{
		DogParks:    summaries[0],
		Regulations: summaries[1],
		Climate:     summaries[2],
		Nature:      summaries[3],
	}
}

// Summarize joins the title and snippet of the first n results, one per
// line. It returns Placeholder when nothing usable remains.
func Summarize(results []citycopy.SearchResult, n int) string {
	var lines []string
	for _, r := range results {
		if len(lines) == n {
			break
		}
		title := strings.TrimSpace(r.Title)
		snippet := strings.TrimSpace(r.Snippet)
		switch {
		case title == "" && snippet == "":
			continue
		case title == "":
			lines = append(lines, snippet)
		case snippet == "":
			lines = append(lines, title)
		default:
			lines = append(lines, title+": "+snippet)
		}
	}
	if len(lines) == 0 {
		return Placeholder
	}
	return strings.Join(lines, "\n")
}
