package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// Search queries /search/multi for movies and TV shows.
// Person results are discarded: the tracker only deals in watchable content.
func (c *Client) Search(ctx context.Context, query string) ([]Summary, error) {
	const path = "/search/multi"

	params := url.Values{}
	params.Set("query", query)

	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return nil, wrapError("search", path, err)
	}

	var resp struct {
		Results []rawSummary `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", path, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Summary, 0, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		if mt := domain.MediaType(r.MediaType); !mt.Valid() {
			continue
		}
		results = append(results, r.toSummary(""))
	}
	return results, nil
}

// Details fetches full info for one item, including runtime for movies.
func (c *Client) Details(ctx context.Context, mediaType domain.MediaType, id int64) (*Details, error) {
	if !mediaType.Valid() {
		return nil, wrapError("details", "", fmt.Errorf("invalid media type %q", mediaType))
	}
	path := fmt.Sprintf("/%s/%d", mediaType, id)

	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, wrapError("details", path, err)
	}

	var raw rawDetails
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("details", path, fmt.Errorf("parse response: %w", err))
	}

	d := &Details{
		Summary:  raw.toSummary(mediaType),
		Runtime:  raw.Runtime,
		Tagline:  raw.Tagline,
		Status:   raw.Status,
		Homepage: raw.Homepage,
	}
	for _, g := range raw.Genres {
		d.Genres = append(d.Genres, g.Name)
	}
	return d, nil
}

// Recommendations lists content similar to a given movie.
func (c *Client) Recommendations(ctx context.Context, id int64) ([]Summary, error) {
	path := "/movie/" + strconv.FormatInt(id, 10) + "/recommendations"

	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, wrapError("recommendations", path, err)
	}

	var resp struct {
		Results []rawSummary `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("recommendations", path, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Summary, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, resp.Results[i].toSummary(domain.MediaTypeMovie))
	}
	return results, nil
}

// WatchProviders returns the subscription ("flatrate") provider names for an
// item in the given region. Region defaults to the client's configured
// region. A region with no provider data yields an empty list, not an error.
func (c *Client) WatchProviders(ctx context.Context, mediaType domain.MediaType, id int64, region string) ([]string, error) {
	if !mediaType.Valid() {
		return nil, wrapError("watchProviders", "", fmt.Errorf("invalid media type %q", mediaType))
	}
	if region == "" {
		region = c.region
	}
	path := fmt.Sprintf("/%s/%d/watch/providers", mediaType, id)

	body, err := c.doRequest(ctx, path, nil)
	if err != nil {
		return nil, wrapError("watchProviders", path, err)
	}

	var resp struct {
		Results map[string]struct {
			Flatrate []struct {
				ProviderName string `json:"provider_name"`
			} `json:"flatrate"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("watchProviders", path, fmt.Errorf("parse response: %w", err))
	}

	regional, ok := resp.Results[region]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(regional.Flatrate))
	for _, p := range regional.Flatrate {
		names = append(names, p.ProviderName)
	}
	return names, nil
}
