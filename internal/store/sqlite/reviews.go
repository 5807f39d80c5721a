package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// reviewColumns is the ordered list of columns selected in review queries.
// Must match the scan order in scanReview.
const reviewColumns = `id, title, rating, review, mood, watched_at`

// scanReview scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Review.
func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		rating    sql.NullInt64
		watchedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.Title,
		&rating,
		&r.Text,
		&r.Mood,
		&watchedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		r.Rating = &v
	}
	r.WatchedAt, err = parseTime(watchedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// InsertReview records a finished title. Rating may be nil (unrated).
func (s *Store) InsertReview(ctx context.Context, r *domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, title, rating, review, mood, watched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Title,
		nullInt(r.Rating),
		r.Text,
		r.Mood,
		formatTime(r.WatchedAt),
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListReviews returns reviews, most recently watched first.
func (s *Store) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		ORDER BY watched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
