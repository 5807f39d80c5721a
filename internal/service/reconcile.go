package service

import (
	"context"
	"fmt"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/memory"
	"github.com/cinelogapp/cinelog-server/internal/normalize"
)

// reconcile filters catalog candidates against the local library: anything
// already reviewed is dropped, anything on the watchlist stays but is flagged.
// Titles match by normalized equality (case-insensitive, whitespace-collapsed,
// exact), not fuzzily; remakes that share a name with a watched film are a
// known false positive of that rule.
func (s *DiscoveryService) reconcile(ctx context.Context, candidates []tmdb.Summary) ([]tmdb.Summary, error) {
	if len(candidates) == 0 {
		return []tmdb.Summary{}, nil
	}

	reviews, err := s.library.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	watchlist, err := s.library.ListWatchlist(ctx, domain.WatchlistPending)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	return Reconcile(candidates, watchlist, reviews), nil
}

// Reconcile applies the library to a candidate list. It never reorders:
// output preserves the catalog's ranking with seen titles removed.
func Reconcile(candidates []tmdb.Summary, watchlist []*domain.WatchlistEntry, reviews []*domain.Review) []tmdb.Summary {
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		seen[normalize.Title(r.Title)] = struct{}{}
	}
	queued := make(map[string]struct{}, len(watchlist))
	for _, e := range watchlist {
		queued[normalize.Title(e.Title)] = struct{}{}
	}

	out := make([]tmdb.Summary, 0, len(candidates))
	for _, c := range candidates {
		key := normalize.Title(c.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		if _, ok := queued[key]; ok {
			c.InWatchlist = true
		}
		out = append(out, c)
	}
	return out
}

// ReconcileMatches is Reconcile for similarity-recall results: memorized
// plots the user has since reviewed are dropped, queued titles are flagged,
// ranking order is preserved.
func ReconcileMatches(matches []memory.Match, watchlist []*domain.WatchlistEntry, reviews []*domain.Review) []memory.Match {
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		seen[normalize.Title(r.Title)] = struct{}{}
	}
	queued := make(map[string]struct{}, len(watchlist))
	for _, e := range watchlist {
		queued[normalize.Title(e.Title)] = struct{}{}
	}

	out := make([]memory.Match, 0, len(matches))
	for _, m := range matches {
		key := normalize.Title(m.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		if _, ok := queued[key]; ok {
			m.InWatchlist = true
		}
		out = append(out, m)
	}
	return out
}
