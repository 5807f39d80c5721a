package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cinelogapp/cinelog-server/internal/domain"
	"github.com/cinelogapp/cinelog-server/internal/store"
)

// watchlistColumns is the ordered list of columns selected in watchlist
// queries. Must match the scan order in scanWatchlistEntry.
const watchlistColumns = `id, title, media_type, status, added_at`

// scanWatchlistEntry scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.WatchlistEntry.
func scanWatchlistEntry(scanner interface{ Scan(dest ...any) error }) (*domain.WatchlistEntry, error) {
	var e domain.WatchlistEntry
	var addedAt string

	err := scanner.Scan(
		&e.ID,
		&e.Title,
		&e.MediaType,
		&e.Status,
		&addedAt,
	)
	if err != nil {
		return nil, err
	}

	e.AddedAt, err = parseTime(addedAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// UpsertWatchlistEntry inserts an entry or replaces one with the same id.
// Re-adding a title keeps a single row; the added_at of the newest call wins.
func (s *Store) UpsertWatchlistEntry(ctx context.Context, e *domain.WatchlistEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist (id, title, media_type, status, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			media_type = excluded.media_type,
			status = excluded.status,
			added_at = excluded.added_at`,
		e.ID,
		e.Title,
		e.MediaType,
		e.Status,
		formatTime(e.AddedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert watchlist entry: %w", err)
	}
	return nil
}

// GetWatchlistEntry retrieves an entry by id.
func (s *Store) GetWatchlistEntry(ctx context.Context, id string) (*domain.WatchlistEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+watchlistColumns+`
		FROM watchlist
		WHERE id = ?`, id)

	e, err := scanWatchlistEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get watchlist entry: %w", err)
	}
	return e, nil
}

// ListWatchlist returns entries filtered by status ("" means all), oldest
// first so the longest-waiting title surfaces at the top.
func (s *Store) ListWatchlist(ctx context.Context, status domain.WatchlistStatus) ([]*domain.WatchlistEntry, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY added_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	entries := []*domain.WatchlistEntry{}
	for rows.Next() {
		e, err := scanWatchlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteWatchlistByTitle removes entries whose stored title equals the given
// title exactly (byte equality, not normalized) and reports how many rows
// were removed. Zero is a valid outcome.
func (s *Store) DeleteWatchlistByTitle(ctx context.Context, title string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM watchlist
		WHERE title = ?`, title)
	if err != nil {
		return 0, fmt.Errorf("delete watchlist by title: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}
