package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/store"
)

func makeTestEntry(id, title string) *domain.WatchlistEntry {
	return &domain.WatchlistEntry{
		ID:        id,
		Title:     title,
		MediaType: domain.MediaTypeMovie,
		Status:    domain.WatchlistPending,
		AddedAt:   time.Now(),
	}
}

func TestUpsertAndGetWatchlistEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := makeTestEntry("wl-1", "Dune")
	if err := s.UpsertWatchlistEntry(ctx, entry); err != nil {
		t.Fatalf("UpsertWatchlistEntry: %v", err)
	}

	got, err := s.GetWatchlistEntry(ctx, "wl-1")
	if err != nil {
		t.Fatalf("GetWatchlistEntry: %v", err)
	}
	if got.Title != "Dune" {
		t.Errorf("Title: got %q, want %q", got.Title, "Dune")
	}
	if got.Status != domain.WatchlistPending {
		t.Errorf("Status: got %q, want pending", got.Status)
	}
	if got.AddedAt.Unix() != entry.AddedAt.Unix() {
		t.Errorf("AddedAt: got %v, want %v", got.AddedAt, entry.AddedAt)
	}
}

func TestUpsertWatchlistEntryReplacesById(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertWatchlistEntry(ctx, makeTestEntry("wl-1", "Dune")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertWatchlistEntry(ctx, makeTestEntry("wl-1", "Dune: Part Two")); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	entries, err := s.ListWatchlist(ctx, "")
	if err != nil {
		t.Fatalf("ListWatchlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", len(entries))
	}
	if entries[0].Title != "Dune: Part Two" {
		t.Errorf("Title: got %q, want replacement", entries[0].Title)
	}
}

func TestGetWatchlistEntryNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetWatchlistEntry(context.Background(), "wl-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListWatchlistOrderAndStatusFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := makeTestEntry("wl-1", "Dune")
	older.AddedAt = time.Now().Add(-2 * time.Hour)
	newer := makeTestEntry("wl-2", "Arrival")
	newer.AddedAt = time.Now().Add(-time.Hour)
	watched := makeTestEntry("wl-3", "Inception")
	watched.Status = domain.WatchlistWatched

	for _, e := range []*domain.WatchlistEntry{newer, older, watched} {
		if err := s.UpsertWatchlistEntry(ctx, e); err != nil {
			t.Fatalf("upsert %s: %v", e.ID, err)
		}
	}

	pending, err := s.ListWatchlist(ctx, domain.WatchlistPending)
	if err != nil {
		t.Fatalf("ListWatchlist: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(pending))
	}
	if pending[0].ID != "wl-1" || pending[1].ID != "wl-2" {
		t.Errorf("expected oldest first, got %s then %s", pending[0].ID, pending[1].ID)
	}

	all, err := s.ListWatchlist(ctx, "")
	if err != nil {
		t.Fatalf("ListWatchlist all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries without filter, got %d", len(all))
	}
}

func TestDeleteWatchlistByTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertWatchlistEntry(ctx, makeTestEntry("wl-1", "Inception")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertWatchlistEntry(ctx, makeTestEntry("wl-2", "dune ")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Exact match removes the row.
	n, err := s.DeleteWatchlistByTitle(ctx, "Inception")
	if err != nil {
		t.Fatalf("DeleteWatchlistByTitle: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row removed, got %d", n)
	}

	// The delete is verbatim: "Dune" does not match the stored "dune ".
	n, err = s.DeleteWatchlistByTitle(ctx, "Dune")
	if err != nil {
		t.Fatalf("DeleteWatchlistByTitle: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows removed for non-exact title, got %d", n)
	}

	remaining, err := s.ListWatchlist(ctx, "")
	if err != nil {
		t.Fatalf("ListWatchlist: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "dune " {
		t.Errorf("expected only %q to remain, got %+v", "dune ", remaining)
	}
}
