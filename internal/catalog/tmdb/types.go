package tmdb

import (
	"fmt"
	"strings"

	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// Summary is a catalog content summary, normalized across the movie/tv split
// (TMDB uses title/release_date for movies and name/first_air_date for TV).
type Summary struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	MediaType   domain.MediaType `json:"media_type"`
	Overview    string           `json:"overview"`
	ReleaseDate string           `json:"release_date,omitempty"`
	VoteAverage float64          `json:"vote_average"`
	VoteCount   int              `json:"vote_count"`
	Popularity  float64          `json:"popularity"`
	GenreIDs    []int            `json:"genre_ids,omitempty"`

	// InWatchlist is set by the reconciler when the title is already queued.
	InWatchlist bool `json:"in_watchlist,omitempty"`
}

// Details carries the extra fields of a single-item lookup.
type Details struct {
	Summary
	Runtime  int      `json:"runtime,omitempty"` // minutes, movies only
	Tagline  string   `json:"tagline,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Status   string   `json:"status,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
}

// DiscoverFilter is the ephemeral filter behind a discovery query.
// Genres combine with OR semantics; MinVoteCount excludes titles whose
// average rating rests on too few votes to mean anything.
type DiscoverFilter struct {
	GenreIDs     []int
	MinRating    float64
	MinVoteCount int
}

// Raw API response types (internal)

type rawSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	MediaType    string  `json:"media_type"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

type rawDetails struct {
	rawSummary
	Runtime  int    `json:"runtime"`
	Tagline  string `json:"tagline"`
	Status   string `json:"status"`
	Homepage string `json:"homepage"`
	Genres   []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// toSummary normalizes a raw result. fallback is used when the payload
// carries no media_type (single-media endpoints like /discover/movie).
func (r *rawSummary) toSummary(fallback domain.MediaType) Summary {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	mt := domain.MediaType(r.MediaType)
	if !mt.Valid() {
		mt = fallback
	}
	return Summary{
		ID:          r.ID,
		Title:       title,
		MediaType:   mt,
		Overview:    r.Overview,
		ReleaseDate: date,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		Popularity:  r.Popularity,
		GenreIDs:    r.GenreIDs,
	}
}

// FormatSummary renders a one-item markdown blurb for chat-style frontends.
func FormatSummary(s Summary) string {
	year := "Unknown"
	if len(s.ReleaseDate) >= 4 {
		year = s.ReleaseDate[:4]
	}
	overview := s.Overview
	if runes := []rune(overview); len(runes) > 150 {
		overview = string(runes[:150])
	}
	rating := "N/A"
	if s.VoteCount > 0 {
		rating = fmt.Sprintf("%.1f", s.VoteAverage)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s) - Rating: %s/10\n", s.Title, year, rating)
	fmt.Fprintf(&b, "> %s...\n", overview)
	return b.String()
}
