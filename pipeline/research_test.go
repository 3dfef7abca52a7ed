package pipeline_test

import (
	"testing"

	"github.com/fwojciec/citycopy"
	"github.com/fwojciec/citycopy/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("keeps the first n results in order", func(t *testing.T) {
		t.Parallel()

		results := []citycopy.SearchResult{
			{Title: "Uno", Snippet: "primero"},
			{Title: "Dos", Snippet: "segundo"},
			{Title: "Tres", Snippet: "tercero"},
			{Title: "Cuatro", Snippet: "cuarto"},
		}

		summary := pipeline.Summarize(results, 3)

		assert.Equal(t, "Uno: primero\nDos: segundo\nTres: tercero", summary)
	})

	t.Run("returns placeholder for no results", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pipeline.Placeholder, pipeline.Summarize(nil, 3))
	})

	t.Run("skips blank results", func(t *testing.T) {
		t.Parallel()

		results := []citycopy.SearchResult{
			{Title: " ", Snippet: ""},
			{Title: "", Snippet: "solo snippet"},
			{Title: "solo título"},
		}

		summary := pipeline.Summarize(results, 3)

		assert.Equal(t, "solo snippet\nsolo título", summary)
	})

	t.Run("returns placeholder when every result is blank", func(t *testing.T) {
		t.Parallel()

		results := []citycopy.SearchResult{{Title: "", Snippet: "  "}}

		assert.Equal(t, pipeline.Placeholder, pipeline.Summarize(results, 3))
	})
}

func TestTopics(t *testing.T) {
	t.Parallel()

	queries := pipeline.Topics("Elche")

	assert.Len(t, queries, 4)
	for _, q := range queries {
		assert.Contains(t, q, "Elche")
	}
	assert.Contains(t, queries[0], "parques para perros")
	assert.Contains(t, queries[1], "ordenanza municipal")
	assert.Contains(t, queries[2], "clima")
	assert.Contains(t, queries[3], "playas para perros")
}
