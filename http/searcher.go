// Package http provides an HTTP-based implementation of citycopy.Searcher
// backed by the Brave Search web API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/citycopy"
)

// DefaultSearchTimeout is the default timeout for search requests.
const DefaultSearchTimeout = 10 * time.Second

// DefaultBaseURL is the Brave Search API endpoint.
const DefaultBaseURL = "https://api.search.brave.com"

// DefaultCount is the number of results requested per query.
const DefaultCount = 5

// maxErrorBody limits how much of an error response is echoed back.
const maxErrorBody = 512

// Ensure Searcher implements citycopy.Searcher at compile time.
var _ citycopy.Searcher = (*Searcher)(nil)

// Searcher queries the Brave Search web API.
type Searcher struct {
	client  *http.Client
	apiKey  string
	baseURL string
	count   int
	timeout time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout sets the timeout for search requests.
// Defaults to DefaultSearchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(s *Searcher) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCount sets how many results are requested per query.
func WithCount(n int) Option {
	return func(s *Searcher) {
		s.count = n
	}
}

// NewSearcher creates a new Searcher. Returns ECONFIG if apiKey is empty.
func NewSearcher(apiKey string, opts ...Option) (*Searcher, error) {
	if apiKey == "" {
		return nil, citycopy.Errorf(citycopy.ECONFIG, "search API key required")
	}

	s := &Searcher{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		count:   DefaultCount,
		timeout: DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s, nil
}

type searchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search returns web results for the query in ranked order.
func (s *Searcher) Search(ctx context.Context, query string) ([]citycopy.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, citycopy.Errorf(citycopy.EINVALID, "search query required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(s.count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/res/v1/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("HTTP %d for search %q: %s", resp.StatusCode, query, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]citycopy.SearchResult, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, citycopy.SearchResult{
			Title:   StripTags(r.Title),
			Snippet: StripTags(r.Description),
			URL:     r.URL,
		})
	}
	return results, nil
}

// StripTags returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed.
func StripTags(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
