package domain

import "time"

// WatchlistStatus tracks the lifecycle of a watchlist entry.
// An entry is pending from the moment it is added until a review is logged
// for its title, at which point the row is deleted (watched is represented
// by a row in reviews, not a status flip).
type WatchlistStatus string

// Watchlist statuses.
const (
	WatchlistPending WatchlistStatus = "pending"
	WatchlistWatched WatchlistStatus = "watched"
)

// WatchlistEntry is a piece of content queued for watching.
type WatchlistEntry struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	MediaType MediaType       `json:"media_type"`
	Status    WatchlistStatus `json:"status"`
	AddedAt   time.Time       `json:"added_at"`
}

// Review is a logged viewing of a piece of content.
// Rating is nil when the user declined to rate.
type Review struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rating    *int      `json:"rating,omitempty"`
	Text      string    `json:"text"`
	Mood      string    `json:"mood"`
	WatchedAt time.Time `json:"watched_at"`
}
