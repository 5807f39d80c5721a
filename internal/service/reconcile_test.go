package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/domain"
)

func wlEntry(title string) *domain.WatchlistEntry {
	return &domain.WatchlistEntry{
		ID:        "wl-" + title,
		Title:     title,
		MediaType: domain.MediaTypeMovie,
		Status:    domain.WatchlistPending,
		AddedAt:   time.Now(),
	}
}

func review(title string) *domain.Review {
	return &domain.Review{ID: "rev-" + title, Title: title, WatchedAt: time.Now()}
}

func TestReconcileDropsReviewedTitles(t *testing.T) {
	candidates := []tmdb.Summary{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Arrival"},
		{ID: 3, Title: "Inception"},
	}
	// Reviewed as "dune " with noise: normalized matching still drops it.
	reviews := []*domain.Review{review("dune ")}

	out := Reconcile(candidates, nil, reviews)

	assert.Len(t, out, 2)
	assert.Equal(t, "Arrival", out[0].Title)
	assert.Equal(t, "Inception", out[1].Title)
}

func TestReconcileFlagsQueuedTitlesWithoutRemoving(t *testing.T) {
	candidates := []tmdb.Summary{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Arrival"},
	}
	watchlist := []*domain.WatchlistEntry{wlEntry("ARRIVAL")}

	out := Reconcile(candidates, watchlist, nil)

	assert.Len(t, out, 2, "queued titles stay in the list")
	assert.False(t, out[0].InWatchlist)
	assert.True(t, out[1].InWatchlist, "queued title is flagged")
}

func TestReconcileExactMatchOnly(t *testing.T) {
	candidates := []tmdb.Summary{
		{ID: 1, Title: "Dune: Part Two"},
		{ID: 2, Title: "Aliens"},
	}
	reviews := []*domain.Review{review("Dune"), review("Alien")}

	out := Reconcile(candidates, nil, reviews)

	assert.Len(t, out, 2, "substring overlap must not count as seen")
}

func TestReconcilePreservesOrder(t *testing.T) {
	candidates := []tmdb.Summary{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D"},
	}
	reviews := []*domain.Review{review("B")}

	out := Reconcile(candidates, nil, reviews)

	titles := make([]string, len(out))
	for i, s := range out {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"A", "C", "D"}, titles)
}

func TestReconcileEmptyCandidates(t *testing.T) {
	out := Reconcile(nil, []*domain.WatchlistEntry{wlEntry("Dune")}, []*domain.Review{review("Arrival")})
	assert.Empty(t, out)
	assert.NotNil(t, out)
}
