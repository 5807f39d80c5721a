package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addToWatchlist",
		Method:        http.MethodPost,
		Path:          "/api/v1/watchlist",
		Summary:       "Add to watchlist",
		Description:   "Queues a title; re-adding the same title updates the existing entry",
		Tags:          []string{"Library"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddToWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist",
		Summary:     "List watchlist",
		Description: "Pending entries, oldest first",
		Tags:        []string{"Library"},
	}, s.handleListWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/reviews",
		Summary:       "Log a review",
		Description:   "Records a finished title and clears matching watchlist entries",
		Tags:          []string{"Library"},
		DefaultStatus: http.StatusCreated,
	}, s.handleLogReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/reviews",
		Summary:     "List reviews",
		Description: "Review log, most recently watched first",
		Tags:        []string{"Library"},
	}, s.handleListReviews)
}

// === DTOs ===

// WatchlistRequest contains the title to queue.
type WatchlistRequest struct {
	Title     string `json:"title" minLength:"1" maxLength:"500" doc:"Content title"`
	MediaType string `json:"media_type,omitempty" enum:"movie,tv" doc:"Media type (default movie)"`
	TMDBID    int64  `json:"tmdb_id,omitempty" doc:"Catalog identifier when the title came from a catalog result"`
}

// WatchlistPostInput wraps the watchlist request body for Huma.
type WatchlistPostInput struct {
	Body WatchlistRequest
}

// WatchlistEntryOutput wraps a single entry for Huma.
type WatchlistEntryOutput struct {
	Body domain.WatchlistEntry
}

// WatchlistResponse contains watchlist entries.
type WatchlistResponse struct {
	Entries []*domain.WatchlistEntry `json:"entries" doc:"Pending entries, oldest first"`
}

// WatchlistOutput wraps the watchlist response for Huma.
type WatchlistOutput struct {
	Body WatchlistResponse
}

// ReviewRequest contains the review to log.
type ReviewRequest struct {
	Title  string `json:"title" minLength:"1" maxLength:"500" doc:"Content title"`
	Rating *int   `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Personal rating 0-10; omit if unrated"`
	Text   string `json:"text,omitempty" maxLength:"5000" doc:"Review text"`
	Mood   string `json:"mood,omitempty" doc:"Mood the viewing matched, from the fixed vocabulary"`
}

// ReviewPostInput wraps the review request body for Huma.
type ReviewPostInput struct {
	Body ReviewRequest
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body domain.Review
}

// ReviewsResponse contains the review log.
type ReviewsResponse struct {
	Reviews []*domain.Review `json:"reviews" doc:"Most recently watched first"`
}

// ReviewsOutput wraps the reviews response for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

// === Handlers ===

func (s *Server) handleAddToWatchlist(ctx context.Context, input *WatchlistPostInput) (*WatchlistEntryOutput, error) {
	entry, err := s.services.Library.AddToWatchlist(ctx, service.AddToWatchlistInput{
		Title:     input.Body.Title,
		MediaType: domain.MediaType(input.Body.MediaType),
		TMDBID:    input.Body.TMDBID,
	})
	if err != nil {
		s.logger.Error("add to watchlist failed", "title", input.Body.Title, "error", err)
		return nil, err
	}
	return &WatchlistEntryOutput{Body: *entry}, nil
}

func (s *Server) handleListWatchlist(ctx context.Context, _ *struct{}) (*WatchlistOutput, error) {
	entries, err := s.services.Library.Watchlist(ctx)
	if err != nil {
		s.logger.Error("list watchlist failed", "error", err)
		return nil, err
	}
	return &WatchlistOutput{Body: WatchlistResponse{Entries: entries}}, nil
}

func (s *Server) handleLogReview(ctx context.Context, input *ReviewPostInput) (*ReviewOutput, error) {
	review, err := s.services.Library.LogReview(ctx, service.LogReviewInput{
		Title:  input.Body.Title,
		Rating: input.Body.Rating,
		Text:   input.Body.Text,
		Mood:   input.Body.Mood,
	})
	if err != nil {
		s.logger.Error("log review failed", "title", input.Body.Title, "error", err)
		return nil, err
	}
	return &ReviewOutput{Body: *review}, nil
}

func (s *Server) handleListReviews(ctx context.Context, _ *struct{}) (*ReviewsOutput, error) {
	reviews, err := s.services.Library.Reviews(ctx)
	if err != nil {
		s.logger.Error("list reviews failed", "error", err)
		return nil, err
	}
	return &ReviewsOutput{Body: ReviewsResponse{Reviews: reviews}}, nil
}
