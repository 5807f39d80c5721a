package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// Discover runs a filtered discovery query sorted by descending popularity.
// Genres are pipe-joined for OR semantics: an item matching any of the
// filter's genres qualifies.
func (c *Client) Discover(ctx context.Context, filter DiscoverFilter) ([]Summary, error) {
	const path = "/discover/movie"

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_average.gte", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	params.Set("vote_count.gte", strconv.Itoa(filter.MinVoteCount))

	if len(filter.GenreIDs) > 0 {
		ids := make([]string, len(filter.GenreIDs))
		for i, id := range filter.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, "|"))
	}

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, wrapError("discover", path, err)
	}

	var resp struct {
		Results []rawSummary `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("discover", path, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Summary, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, resp.Results[i].toSummary(domain.MediaTypeMovie))
	}
	return results, nil
}

// Trending returns this week's trending content across movies and TV.
func (c *Client) Trending(ctx context.Context) ([]Summary, error) {
	const path = "/trending/all/week"

	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, wrapError("trending", path, err)
	}

	var resp struct {
		Results []rawSummary `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("trending", path, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Summary, 0, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		// Trending mixes media types and may include people.
		if mt := domain.MediaType(r.MediaType); r.MediaType != "" && !mt.Valid() {
			continue
		}
		results = append(results, r.toSummary(domain.MediaTypeMovie))
	}
	return results, nil
}
