package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/memory"
	"github.com/cinelogapp/cinelog-server/internal/search"
)

func (s *Server) registerMemoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "memorizeContent",
		Method:        http.MethodPost,
		Path:          "/api/v1/memory",
		Summary:       "Memorize content",
		Description:   "Stores a plot in semantic memory; re-memorizing a title overwrites the previous record",
		Tags:          []string{"Memory"},
		DefaultStatus: http.StatusCreated,
	}, s.handleMemorize)

	huma.Register(s.api, huma.Operation{
		OperationID: "findSimilar",
		Method:      http.MethodGet,
		Path:        "/api/v1/memory/similar",
		Summary:     "Find similar content",
		Description: "Recalls memorized content nearest to the query in embedding space",
		Tags:        []string{"Memory"},
	}, s.handleFindSimilar)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchMemory",
		Method:      http.MethodGet,
		Path:        "/api/v1/memory/search",
		Summary:     "Keyword search over memory",
		Description: "Term-match search over memorized titles and overviews; does not touch the embedder",
		Tags:        []string{"Memory"},
	}, s.handleSearchMemory)

	huma.Register(s.api, huma.Operation{
		OperationID: "forgetContent",
		Method:      http.MethodDelete,
		Path:        "/api/v1/memory/{id}",
		Summary:     "Forget content",
		Tags:        []string{"Memory"},
	}, s.handleForget)
}

// === DTOs ===

// MemorizeRequest contains the content to memorize.
type MemorizeRequest struct {
	Title    string   `json:"title" minLength:"1" maxLength:"500" doc:"Content title"`
	Overview string   `json:"overview,omitempty" maxLength:"5000" doc:"Plot overview"`
	Rating   *int     `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Personal rating 0-10; omit if unrated"`
	Genres   []string `json:"genres,omitempty" doc:"Genre names"`
}

// MemorizeInput wraps the memorize request body for Huma.
type MemorizeInput struct {
	Body MemorizeRequest
}

// MemorizeResponse reports the stored record's identifier.
type MemorizeResponse struct {
	ID string `json:"id" doc:"Stable content identifier derived from the title"`
}

// MemorizeOutput wraps the memorize response for Huma.
type MemorizeOutput struct {
	Body MemorizeResponse
}

// SimilarInput contains parameters for similarity recall.
type SimilarInput struct {
	Query string `query:"q" minLength:"1" maxLength:"500" doc:"Free-text description to match against memorized plots"`
	Limit int    `query:"limit" minimum:"1" maximum:"50" required:"false" doc:"Max results (default 5)"`
}

// SimilarResponse contains similarity matches, nearest first.
type SimilarResponse struct {
	Query   string         `json:"query" doc:"Original query"`
	Matches []memory.Match `json:"matches" doc:"Matches ordered by descending similarity"`
}

// SimilarOutput wraps the similarity response for Huma.
type SimilarOutput struct {
	Body SimilarResponse
}

// MemorySearchInput contains parameters for keyword search.
type MemorySearchInput struct {
	Query  string `query:"q" minLength:"1" maxLength:"200" doc:"Search query"`
	Genres string `query:"genres" required:"false" doc:"Comma-separated genre names to filter by"`
	Limit  int    `query:"limit" minimum:"1" maximum:"50" required:"false" doc:"Max results (default 10)"`
	Offset int    `query:"offset" minimum:"0" required:"false" doc:"Pagination offset"`
}

// MemorySearchOutput wraps keyword search results for Huma.
type MemorySearchOutput struct {
	Body search.Result
}

// ForgetInput identifies the record to forget.
type ForgetInput struct {
	ID string `path:"id" doc:"Content identifier"`
}

// ForgetOutput is the empty forget response.
type ForgetOutput struct{}

// === Handlers ===

func (s *Server) handleMemorize(ctx context.Context, input *MemorizeInput) (*MemorizeOutput, error) {
	rating := domain.RatingUnknown
	if input.Body.Rating != nil {
		rating = *input.Body.Rating
	}

	recID, err := s.services.Memory.Memorize(ctx, memory.MemorizeInput{
		Title:    input.Body.Title,
		Overview: input.Body.Overview,
		Rating:   rating,
		Genres:   input.Body.Genres,
	})
	if err != nil {
		s.logger.Error("memorize failed", "title", input.Body.Title, "error", err)
		return nil, err
	}

	return &MemorizeOutput{Body: MemorizeResponse{ID: recID}}, nil
}

func (s *Server) handleFindSimilar(ctx context.Context, input *SimilarInput) (*SimilarOutput, error) {
	matches, err := s.services.Memory.FindSimilar(ctx, input.Query, input.Limit)
	if err != nil {
		s.logger.Error("similarity recall failed", "query", input.Query, "error", err)
		return nil, err
	}

	return &SimilarOutput{Body: SimilarResponse{
		Query:   input.Query,
		Matches: matches,
	}}, nil
}

func (s *Server) handleSearchMemory(ctx context.Context, input *MemorySearchInput) (*MemorySearchOutput, error) {
	params := search.Params{
		Query:  input.Query,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.Genres != "" {
		for g := range strings.SplitSeq(input.Genres, ",") {
			if g = strings.TrimSpace(g); g != "" {
				params.Genres = append(params.Genres, g)
			}
		}
	}

	result, err := s.services.Memory.SearchKeyword(ctx, params)
	if err != nil {
		s.logger.Error("memory search failed", "query", input.Query, "error", err)
		return nil, err
	}
	return &MemorySearchOutput{Body: *result}, nil
}

func (s *Server) handleForget(ctx context.Context, input *ForgetInput) (*ForgetOutput, error) {
	if err := s.services.Memory.Forget(ctx, input.ID); err != nil {
		s.logger.Error("forget failed", "id", input.ID, "error", err)
		return nil, err
	}
	return &ForgetOutput{}, nil
}
