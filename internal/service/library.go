package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/id"
	"github.com/cinelogapp/cinelog-server/internal/mood"
	"github.com/cinelogapp/cinelog-server/internal/store"
)

// LibraryService manages the watchlist and review log.
type LibraryService struct {
	store  store.Library
	logger *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store store.Library, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:  store,
		logger: logger,
	}
}

// AddToWatchlistInput is the payload of an add-to-watchlist call.
type AddToWatchlistInput struct {
	Title     string
	MediaType domain.MediaType
	TMDBID    int64 // 0 when the title came from free text, not the catalog
}

// AddToWatchlist queues a title. Entries with a catalog id are keyed by it,
// so re-adding the same catalog item upserts; free-text titles are keyed by
// their title hash for the same effect.
func (s *LibraryService) AddToWatchlist(ctx context.Context, in AddToWatchlistInput) (*domain.WatchlistEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, errors.Validation("title is required")
	}
	mediaType := in.MediaType
	if mediaType == "" {
		mediaType = domain.MediaTypeMovie
	}
	if !mediaType.Valid() {
		return nil, errors.Validationf("invalid media type %q", in.MediaType)
	}

	entryID := id.ForTitle(in.Title)
	if in.TMDBID > 0 {
		entryID = "wl-" + strconv.FormatInt(in.TMDBID, 10)
	}

	entry := &domain.WatchlistEntry{
		ID:        entryID,
		Title:     in.Title,
		MediaType: mediaType,
		Status:    domain.WatchlistPending,
		AddedAt:   time.Now().UTC(),
	}

	if err := s.store.UpsertWatchlistEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	s.logger.Info("added to watchlist", "id", entryID, "title", in.Title)
	return entry, nil
}

// Watchlist returns pending entries, oldest first.
func (s *LibraryService) Watchlist(ctx context.Context) ([]*domain.WatchlistEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListWatchlist(ctx, domain.WatchlistPending)
}

// LogReviewInput is the payload of a log-review call.
type LogReviewInput struct {
	Title  string
	Rating *int // nil when the user declined to rate
	Text   string
	Mood   string
}

// LogReview records a finished title and clears any watchlist rows whose
// stored title equals the logged title exactly. The delete matches verbatim,
// so "dune " queued with a trailing space survives a review of "Dune"; the
// review itself still hides both from future discovery because discovery
// matches normalized titles.
func (s *LibraryService) LogReview(ctx context.Context, in LogReviewInput) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, errors.Validation("title is required")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 10) {
		return nil, errors.Validationf("rating %d out of range 0-10", *in.Rating)
	}
	if in.Mood != "" && !mood.Known(in.Mood) {
		return nil, errors.Validationf("unknown mood %q", in.Mood)
	}

	reviewID, err := id.Generate("rev")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		ID:        reviewID,
		Title:     in.Title,
		Rating:    in.Rating,
		Text:      in.Text,
		Mood:      in.Mood,
		WatchedAt: time.Now().UTC(),
	}

	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, fmt.Errorf("log review: %w", err)
	}

	removed, err := s.store.DeleteWatchlistByTitle(ctx, in.Title)
	if err != nil {
		return nil, fmt.Errorf("clear watchlist after review: %w", err)
	}
	if removed == 0 {
		s.logger.Debug("review logged for title not on watchlist", "title", in.Title)
	} else {
		s.logger.Info("cleared watchlist entry after review", "title", in.Title, "removed", removed)
	}

	return review, nil
}

// Reviews returns the review log, most recently watched first.
func (s *LibraryService) Reviews(ctx context.Context) ([]*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListReviews(ctx)
}
