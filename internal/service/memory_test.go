package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/memory"
)

// flatEmbedder gives every text the same vector. Similarity ordering is
// covered in the memory package; here only the reconciliation matters.
type flatEmbedder struct{}

func (flatEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newTestMemoryService(t *testing.T) (*MemoryService, *memory.Store) {
	t.Helper()
	memStore := newTestMemoryStore(t)
	return NewMemoryService(memStore, nil, newTestLibrary(t), testLogger()), memStore
}

func newTestMemoryStore(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.Open(t.TempDir(), flatEmbedder{}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFindSimilarReconcilesAgainstLibrary(t *testing.T) {
	memStore := newTestMemoryStore(t)
	lib := newTestLibrary(t)
	svc := NewMemoryService(memStore, nil, lib, testLogger())
	ctx := context.Background()

	for _, title := range []string{"Dune", "Arrival", "Inception"} {
		_, err := memStore.Memorize(ctx, memory.MemorizeInput{Title: title, Rating: domain.RatingUnknown})
		require.NoError(t, err)
	}

	require.NoError(t, lib.InsertReview(ctx, review("dune ")))
	require.NoError(t, lib.UpsertWatchlistEntry(ctx, wlEntry("Arrival")))

	matches, err := svc.FindSimilar(ctx, "desert epic", 10)
	require.NoError(t, err)

	require.Len(t, matches, 2, "reviewed title is dropped from recall")
	byTitle := make(map[string]memory.Match, len(matches))
	for _, m := range matches {
		byTitle[m.Title] = m
	}
	require.NotContains(t, byTitle, "Dune")
	assert.True(t, byTitle["Arrival"].InWatchlist, "queued title is flagged")
	assert.False(t, byTitle["Inception"].InWatchlist)
}

func TestFindSimilarEmptyLibraryPassesThrough(t *testing.T) {
	svc, memStore := newTestMemoryService(t)
	ctx := context.Background()

	_, err := memStore.Memorize(ctx, memory.MemorizeInput{Title: "Arrival", Rating: domain.RatingUnknown})
	require.NoError(t, err)

	matches, err := svc.FindSimilar(ctx, "aliens", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].InWatchlist)
}

func TestFindSimilarValidatesQuery(t *testing.T) {
	svc, _ := newTestMemoryService(t)

	_, err := svc.FindSimilar(context.Background(), "", 10)
	assert.Error(t, err)
}

func TestReconcileMatchesPreservesRanking(t *testing.T) {
	matches := []memory.Match{
		{ID: "mem-1", Title: "Dune", Score: 0.9},
		{ID: "mem-2", Title: "Arrival", Score: 0.8},
		{ID: "mem-3", Title: "Inception", Score: 0.7},
	}
	reviews := []*domain.Review{review("ARRIVAL")}
	watchlist := []*domain.WatchlistEntry{wlEntry("inception")}

	out := ReconcileMatches(matches, watchlist, reviews)

	require.Len(t, out, 2)
	assert.Equal(t, "Dune", out[0].Title)
	assert.Equal(t, "Inception", out[1].Title)
	assert.True(t, out[1].InWatchlist)
	assert.False(t, out[0].InWatchlist)
}
