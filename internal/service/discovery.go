package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/mood"
	"github.com/cinelogapp/cinelog-server/internal/store"
)

// minVoteCount excludes titles whose average rating rests on too few votes.
const minVoteCount = 100

// Catalog is the remote catalog surface the discovery service needs.
// *tmdb.Client satisfies it; tests substitute a fake.
type Catalog interface {
	Search(ctx context.Context, query string) ([]tmdb.Summary, error)
	Details(ctx context.Context, mediaType domain.MediaType, id int64) (*tmdb.Details, error)
	Discover(ctx context.Context, filter tmdb.DiscoverFilter) ([]tmdb.Summary, error)
	Trending(ctx context.Context) ([]tmdb.Summary, error)
	Recommendations(ctx context.Context, id int64) ([]tmdb.Summary, error)
	WatchProviders(ctx context.Context, mediaType domain.MediaType, id int64, region string) ([]string, error)
}

// DiscoveryService aggregates the remote catalog with the local library:
// every recommendation list is reconciled against what the user has already
// seen or queued before it leaves the service.
type DiscoveryService struct {
	catalog Catalog
	library store.Library
	logger  *slog.Logger
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(catalog Catalog, library store.Library, logger *slog.Logger) *DiscoveryService {
	return &DiscoveryService{
		catalog: catalog,
		library: library,
		logger:  logger,
	}
}

// DiscoverByMood returns popular titles biased toward the mood's genre set
// and filtered by a minimum rating, with everything already reviewed removed
// and queued titles flagged.
//
// A neutral (or unknown) mood with no rating floor falls back to the weekly
// trending list instead of an unfiltered discovery query; trending is the
// better "surprise me" answer.
func (s *DiscoveryService) DiscoverByMood(ctx context.Context, moodName string, minRating float64) ([]tmdb.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if minRating < 0 || minRating > 10 {
		return nil, errors.Validationf("min rating %.1f out of range 0-10", minRating)
	}

	genreIDs := mood.Resolve(moodName)

	var (
		results []tmdb.Summary
		err     error
	)
	if len(genreIDs) == 0 && minRating == 0 {
		results, err = s.catalog.Trending(ctx)
	} else {
		results, err = s.catalog.Discover(ctx, tmdb.DiscoverFilter{
			GenreIDs:     genreIDs,
			MinRating:    minRating,
			MinVoteCount: minVoteCount,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("discover by mood %q: %w", moodName, err)
	}

	reconciled, err := s.reconcile(ctx, results)
	if err != nil {
		return nil, err
	}

	s.logger.Info("discovery query",
		"mood", moodName,
		"min_rating", minRating,
		"candidates", len(results),
		"after_reconcile", len(reconciled),
	)
	return reconciled, nil
}

// SearchCatalog searches the remote catalog by free text and reconciles the
// results against the local library.
func (s *DiscoveryService) SearchCatalog(ctx context.Context, query string) ([]tmdb.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, errors.Validation("query is required")
	}

	results, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return s.reconcile(ctx, results)
}

// Details fetches full catalog info for one item.
func (s *DiscoveryService) Details(ctx context.Context, mediaType domain.MediaType, id int64) (*tmdb.Details, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.Details(ctx, mediaType, id)
}

// Recommend lists titles similar to a given movie, reconciled against the
// local library.
func (s *DiscoveryService) Recommend(ctx context.Context, id int64) ([]tmdb.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := s.catalog.Recommendations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return s.reconcile(ctx, results)
}

// Providers returns streaming provider names for an item in the given region
// ("" uses the configured default). No providers is an empty list.
func (s *DiscoveryService) Providers(ctx context.Context, mediaType domain.MediaType, id int64, region string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.WatchProviders(ctx, mediaType, id, region)
}
