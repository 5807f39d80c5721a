package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func testRecord(id, title, overview string, genres ...string) *domain.ContentRecord {
	return &domain.ContentRecord{
		ID:       id,
		Title:    title,
		Overview: overview,
		Genres:   genres,
		Rating:   8,
	}
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestNewIndexFreshNeedsNoReindex(t *testing.T) {
	index := setupTestIndex(t)
	assert.False(t, index.NeedsReindex(), "a brand-new index has nothing to repopulate")
}

func TestMappingVersionChangeTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	index, err := NewIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "aliens")))
	require.NoError(t, index.Close())

	// An index written under a previous mapping version.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.version"), []byte("0"), 0o644))

	index, err = NewIndex(Options{DataPath: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	assert.True(t, index.NeedsReindex())
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count, "stale documents are discarded with the old mapping")

	// Repopulation goes through the batch path.
	require.NoError(t, index.IndexBatch(ctx, []*domain.ContentRecord{
		testRecord("mem-1", "Arrival", "aliens", "Science Fiction"),
		testRecord("mem-2", "Heat", "heist", "Crime"),
	}))

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := index.Search(ctx, Params{Query: "heist", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "mem-2", result.Hits[0].ID)
}

func TestIndexContent(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	err := index.IndexContent(ctx, testRecord("mem-1", "Arrival", "A linguist communicates with aliens.", "Science Fiction"))
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndexContentIsUpsert(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "first")))
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "second")))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchByTitleAndOverview(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "A linguist communicates with aliens.", "Science Fiction")))
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-2", "Inception", "A thief steals secrets inside dreams.", "Action")))

	// Title match.
	result, err := index.Search(ctx, Params{Query: "arrival", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "mem-1", result.Hits[0].ID)
	assert.Equal(t, "Arrival", result.Hits[0].Title)

	// Overview match.
	result, err = index.Search(ctx, Params{Query: "dreams", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "mem-2", result.Hits[0].ID)
}

func TestSearchTitleOutranksOverview(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Alien", "A crew encounters a hostile creature.")))
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-2", "Arrival", "An alien language rewires perception.")))

	result, err := index.Search(ctx, Params{Query: "alien", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "mem-1", result.Hits[0].ID, "title match ranks above overview match")
}

func TestSearchGenreFilter(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "aliens", "Science Fiction")))
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-2", "Heat", "heist", "Crime")))

	// Keyword analyzer keeps multi-word genre names intact.
	result, err := index.Search(ctx, Params{Genres: []string{"Science Fiction"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "mem-1", result.Hits[0].ID)
	assert.Equal(t, []string{"Science Fiction"}, result.Hits[0].Genres)
}

func TestDeleteContent(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "aliens")))
	require.NoError(t, index.DeleteContent(ctx, "mem-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexContent(ctx, testRecord("mem-1", "Arrival", "aliens")))
	require.NoError(t, index.IndexContent(ctx, testRecord("mem-2", "Heat", "heist")))

	result, err := index.Search(ctx, Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}
