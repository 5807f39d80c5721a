package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query  string   // User's search query
	Genres []string // Filter by exact genre names (OR across values)

	// Pagination
	Limit  int
	Offset int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:  10,
		Offset: 0,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Overview   string            `json:"overview,omitempty"`
	Genres     []string          `json:"genres,omitempty"`
	Rating     int               `json:"rating"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a keyword search over memorized content.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultParams().Limit
	}

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score"})

	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("title")
	searchRequest.Highlight.AddField("overview")

	searchRequest.Fields = []string{"title", "overview", "genres", "rating"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["title"].(string); ok {
			h.Title = t
		}
		if o, ok := hit.Fields["overview"].(string); ok {
			h.Overview = o
		}
		if r, ok := hit.Fields["rating"].(float64); ok {
			h.Rating = int(r)
		}
		// Bleve returns a bare string for single-valued array fields.
		switch g := hit.Fields["genres"].(type) {
		case string:
			h.Genres = []string{g}
		case []interface{}:
			for _, v := range g {
				if name, ok := v.(string); ok {
					h.Genres = append(h.Genres, name)
				}
			}
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	// Main text query across title and overview, title boosted. A fuzzy
	// match on the title tolerates the typos that half-remembered movie
	// names tend to have.
	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		overviewMatch := bleve.NewMatchQuery(params.Query)
		overviewMatch.SetField("overview")
		textQueries = append(textQueries, overviewMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Genre filter (exact match, OR across names)
	if len(params.Genres) > 0 {
		genreQueries := make([]query.Query, len(params.Genres))
		for i, name := range params.Genres {
			gq := bleve.NewTermQuery(name)
			gq.SetField("genres")
			genreQueries[i] = gq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(genreQueries...))
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
