// Package domain contains the core types for the CineLog server.
package domain

import (
	"strings"
	"time"
)

// MediaType distinguishes movies from TV shows in catalog results.
type MediaType string

// Media types recognized by the catalog.
const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the media type is one the catalog understands.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// RatingUnknown is the sentinel stored when a content record has no rating.
const RatingUnknown = -1

// ContentRecord is a piece of content memorized for semantic search.
//
// The identifier is derived deterministically from the title, so memorizing
// the same title again replaces the stored record instead of duplicating it.
// Text is the embedding input and must be regenerated whenever the overview
// or genres change.
type ContentRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Overview  string    `json:"overview"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"` // 0-10, or RatingUnknown
	Genres    []string  `json:"genres"`
	Vector    []float32 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenreList renders the genres as the single delimited string used for the
// metadata side-channel and the embedding text.
func (c *ContentRecord) GenreList() string {
	return strings.Join(c.Genres, ", ")
}

// ContentText builds the text representation embedded for a record.
// Genres are included to help with semantic matching.
func ContentText(title, overview string, genres []string) string {
	return title + ". " + overview + ". Genres: " + strings.Join(genres, ", ")
}
