package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/mood"
)

func (s *Server) registerDiscoveryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "discover",
		Method:      http.MethodGet,
		Path:        "/api/v1/discover",
		Summary:     "Discover by mood",
		Description: "Popular titles biased by mood and rating floor, with already-seen titles removed and queued titles flagged",
		Tags:        []string{"Discovery"},
	}, s.handleDiscover)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMoods",
		Method:      http.MethodGet,
		Path:        "/api/v1/moods",
		Summary:     "List moods",
		Description: "The fixed mood vocabulary accepted by discovery",
		Tags:        []string{"Discovery"},
	}, s.handleListMoods)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Free-text search across movies and TV, reconciled against the local library",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "catalogDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{type}/{id}",
		Summary:     "Catalog item details",
		Tags:        []string{"Catalog"},
	}, s.handleCatalogDetails)

	huma.Register(s.api, huma.Operation{
		OperationID: "watchProviders",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{type}/{id}/providers",
		Summary:     "Streaming providers",
		Description: "Subscription streaming services carrying the item in a region",
		Tags:        []string{"Catalog"},
	}, s.handleWatchProviders)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/movie/{id}/recommendations",
		Summary:     "Similar titles",
		Description: "Titles similar to a given movie, reconciled against the local library",
		Tags:        []string{"Catalog"},
	}, s.handleRecommendations)
}

// === DTOs ===

// DiscoverInput contains discovery parameters.
type DiscoverInput struct {
	Mood      string  `query:"mood" required:"false" doc:"Mood from the fixed vocabulary; unknown or empty means neutral"`
	MinRating float64 `query:"min_rating" minimum:"0" maximum:"10" required:"false" doc:"Minimum average rating 0-10"`
}

// SummariesResponse contains a reconciled list of catalog summaries.
type SummariesResponse struct {
	Results []tmdb.Summary `json:"results" doc:"Catalog order preserved; reviewed titles removed, queued titles flagged"`
}

// SummariesOutput wraps a summary list for Huma.
type SummariesOutput struct {
	Body SummariesResponse
}

// MoodsResponse lists the mood vocabulary.
type MoodsResponse struct {
	Moods []string `json:"moods" doc:"Accepted mood names"`
}

// MoodsOutput wraps the moods response for Huma.
type MoodsOutput struct {
	Body MoodsResponse
}

// CatalogSearchInput contains catalog search parameters.
type CatalogSearchInput struct {
	Query string `query:"q" minLength:"1" maxLength:"200" doc:"Search query"`
}

// CatalogItemInput identifies one catalog item.
type CatalogItemInput struct {
	Type string `path:"type" enum:"movie,tv" doc:"Media type"`
	ID   int64  `path:"id" doc:"Catalog identifier"`
}

// DetailsOutput wraps item details for Huma.
type DetailsOutput struct {
	Body tmdb.Details
}

// ProvidersInput identifies an item and optional region.
type ProvidersInput struct {
	Type   string `path:"type" enum:"movie,tv" doc:"Media type"`
	ID     int64  `path:"id" doc:"Catalog identifier"`
	Region string `query:"region" required:"false" doc:"ISO 3166-1 region code; defaults to the configured region"`
}

// ProvidersResponse lists streaming provider names.
type ProvidersResponse struct {
	Providers []string `json:"providers" doc:"Subscription provider names; empty when none carry the item"`
}

// ProvidersOutput wraps the providers response for Huma.
type ProvidersOutput struct {
	Body ProvidersResponse
}

// RecommendationsInput identifies the source movie.
type RecommendationsInput struct {
	ID int64 `path:"id" doc:"Movie identifier"`
}

// === Handlers ===

func (s *Server) handleDiscover(ctx context.Context, input *DiscoverInput) (*SummariesOutput, error) {
	if input.Mood != "" && !mood.Known(input.Mood) {
		return nil, errors.Validationf("unknown mood %q; see /api/v1/moods", input.Mood)
	}

	results, err := s.services.Discovery.DiscoverByMood(ctx, input.Mood, input.MinRating)
	if err != nil {
		s.logger.Error("discovery failed", "mood", input.Mood, "error", err)
		return nil, err
	}
	return &SummariesOutput{Body: SummariesResponse{Results: results}}, nil
}

func (s *Server) handleListMoods(_ context.Context, _ *struct{}) (*MoodsOutput, error) {
	return &MoodsOutput{Body: MoodsResponse{Moods: mood.Moods()}}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *CatalogSearchInput) (*SummariesOutput, error) {
	results, err := s.services.Discovery.SearchCatalog(ctx, input.Query)
	if err != nil {
		s.logger.Error("catalog search failed", "query", input.Query, "error", err)
		return nil, err
	}
	return &SummariesOutput{Body: SummariesResponse{Results: results}}, nil
}

func (s *Server) handleCatalogDetails(ctx context.Context, input *CatalogItemInput) (*DetailsOutput, error) {
	details, err := s.services.Discovery.Details(ctx, domain.MediaType(input.Type), input.ID)
	if err != nil {
		s.logger.Error("details lookup failed", "type", input.Type, "id", input.ID, "error", err)
		return nil, err
	}
	return &DetailsOutput{Body: *details}, nil
}

func (s *Server) handleWatchProviders(ctx context.Context, input *ProvidersInput) (*ProvidersOutput, error) {
	providers, err := s.services.Discovery.Providers(ctx, domain.MediaType(input.Type), input.ID, input.Region)
	if err != nil {
		s.logger.Error("providers lookup failed", "type", input.Type, "id", input.ID, "error", err)
		return nil, err
	}
	return &ProvidersOutput{Body: ProvidersResponse{Providers: providers}}, nil
}

func (s *Server) handleRecommendations(ctx context.Context, input *RecommendationsInput) (*SummariesOutput, error) {
	results, err := s.services.Discovery.Recommend(ctx, input.ID)
	if err != nil {
		s.logger.Error("recommendations failed", "id", input.ID, "error", err)
		return nil, err
	}
	return &SummariesOutput{Body: SummariesResponse{Results: results}}, nil
}
