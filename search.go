package citycopy

import "context"

// SearchResult is a single ranked web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher queries a web search provider.
type Searcher interface {
	// Search returns results for the query, best match first.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
