// Package store defines the persistence interface for the viewing library
// (watchlist and reviews) plus the errors its implementations return.
package store

import (
	"context"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/errors"
)

// Sentinel errors returned by store implementations.
var (
	ErrNotFound      = errors.NotFound("record not found")
	ErrAlreadyExists = errors.Validation("record already exists")
)

// Library is the persistence interface for the viewing library.
type Library interface {
	// UpsertWatchlistEntry inserts an entry or replaces one with the same id.
	UpsertWatchlistEntry(ctx context.Context, e *domain.WatchlistEntry) error

	// GetWatchlistEntry retrieves an entry by id. Returns ErrNotFound if missing.
	GetWatchlistEntry(ctx context.Context, id string) (*domain.WatchlistEntry, error)

	// ListWatchlist returns entries filtered by status ("" means all),
	// oldest first.
	ListWatchlist(ctx context.Context, status domain.WatchlistStatus) ([]*domain.WatchlistEntry, error)

	// DeleteWatchlistByTitle removes entries whose stored title equals the
	// given title exactly, and reports how many rows were removed.
	DeleteWatchlistByTitle(ctx context.Context, title string) (int64, error)

	// InsertReview records a finished title.
	InsertReview(ctx context.Context, r *domain.Review) error

	// ListReviews returns reviews, most recently watched first.
	ListReviews(ctx context.Context) ([]*domain.Review, error)

	Close() error
}
