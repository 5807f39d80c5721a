package memory

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// fakeEmbedder embeds text as keyword counts over a fixed vocabulary.
// Texts sharing vocabulary end up close in cosine space, which is enough to
// exercise ranking without a real model.
type fakeEmbedder struct {
	vocab []string
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		vocab: []string{"alien", "communicat", "space", "dream", "heist", "linguist", "love"},
	}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vec := make([]float32, len(f.vocab))
	for i, word := range f.vocab {
		vec[i] = float32(strings.Count(lower, word))
	}
	// Constant tail component so no vector is ever all-zero.
	vec = append(vec, 0.1)
	return vec, nil
}

// failingEmbedder simulates an unreachable embedding server.
type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding server unreachable")
}

func newTestStore(t *testing.T, embedder Embedder) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := Open(t.TempDir(), embedder, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAll(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	_, err := s.Memorize(ctx, MemorizeInput{Title: "Arrival", Rating: domain.RatingUnknown})
	require.NoError(t, err)
	_, err = s.Memorize(ctx, MemorizeInput{Title: "Inception", Rating: domain.RatingUnknown})
	require.NoError(t, err)

	recs, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Vector, "stored vectors survive a full load")
	}
}

func TestMemorizeAndGet(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	recID, err := s.Memorize(ctx, MemorizeInput{
		Title:    "Arrival",
		Overview: "A linguist communicates with aliens after twelve spacecraft land.",
		Rating:   9,
		Genres:   []string{"Science Fiction", "Drama"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(recID, "mem-"))

	rec, err := s.Get(ctx, recID)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", rec.Title)
	assert.Equal(t, 9, rec.Rating)
	assert.NotEmpty(t, rec.Vector)
	assert.Contains(t, rec.Text, "Genres: Science Fiction, Drama")
}

func TestMemorizeUpsertsByTitle(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	id1, err := s.Memorize(ctx, MemorizeInput{Title: "Arrival", Overview: "first", Rating: 7})
	require.NoError(t, err)
	first, err := s.Get(ctx, id1)
	require.NoError(t, err)

	// Same title, different case and spacing: still the same record.
	id2, err := s.Memorize(ctx, MemorizeInput{Title: " arrival ", Overview: "second", Rating: 9})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "re-memorizing must not duplicate")

	rec, err := s.Get(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "second", rec.Overview, "last write wins")
	assert.Equal(t, 9, rec.Rating)
	assert.True(t, rec.CreatedAt.Equal(first.CreatedAt), "creation time survives upserts")
}

func TestMemorizeValidation(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	_, err := s.Memorize(ctx, MemorizeInput{Title: ""})
	assert.Error(t, err)

	_, err = s.Memorize(ctx, MemorizeInput{Title: "Dune", Rating: 11})
	assert.Error(t, err)

	// Unknown rating sentinel is fine.
	_, err = s.Memorize(ctx, MemorizeInput{Title: "Dune", Rating: domain.RatingUnknown})
	assert.NoError(t, err)
}

func TestFindSimilarRanksByMeaning(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	_, err := s.Memorize(ctx, MemorizeInput{
		Title:    "Arrival",
		Overview: "A linguist learns to communicate with aliens from deep space.",
	})
	require.NoError(t, err)
	_, err = s.Memorize(ctx, MemorizeInput{
		Title:    "Inception",
		Overview: "A thief performs a heist inside layered dreams.",
	})
	require.NoError(t, err)

	matches, err := s.FindSimilar(ctx, "movie about communicating with aliens", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Arrival", matches[0].Title)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestFindSimilarEmptyStore(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())

	matches, err := s.FindSimilar(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, matches, "empty memory is an empty result, not an error")
}

func TestFindSimilarLimit(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	for _, title := range []string{"Arrival", "Inception", "Interstellar"} {
		_, err := s.Memorize(ctx, MemorizeInput{Title: title, Overview: "space dream alien"})
		require.NoError(t, err)
	}

	matches, err := s.FindSimilar(ctx, "space", 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestFindSimilarEmbedderDown(t *testing.T) {
	s := newTestStore(t, failingEmbedder{})

	_, err := s.FindSimilar(context.Background(), "anything", 5)
	assert.Error(t, err, "embedder failure must propagate, not degrade to empty results")
}

func TestForget(t *testing.T) {
	s := newTestStore(t, newFakeEmbedder())
	ctx := context.Background()

	recID, err := s.Memorize(ctx, MemorizeInput{Title: "Arrival"})
	require.NoError(t, err)

	require.NoError(t, s.Forget(ctx, recID))

	_, err = s.Get(ctx, recID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Forgetting a missing record is not an error.
	assert.NoError(t, s.Forget(ctx, "mem-doesnotexist"))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosine([]float32{1, 2}, []float32{1, 2, 3}), "mismatched dims score zero")
	assert.Equal(t, 0.0, cosine(nil, []float32{1}))
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 1}), "zero vector scores zero")
}
