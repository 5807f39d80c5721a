// Package mood maps the closed mood vocabulary to TMDB genre sets.
//
// Moods bias discovery queries toward genre groups. The table is fixed:
// callers cannot register moods at runtime, and an unrecognized mood resolves
// to the empty set (equivalent to "neutral"), never to an error. Callers must
// treat the empty set as "no genre constraint" rather than "no results".
package mood

import (
	"sort"
	"strings"
)

// TMDB genre IDs used by the mood table.
const (
	GenreAction      = 28
	GenreComedy      = 35
	GenreDocumentary = 99
	GenreDrama       = 18
	GenreFamily      = 10751
	GenreFantasy     = 14
	GenreHistory     = 36
	GenreHorror      = 27
	GenreRomance     = 10749
	GenreSciFi       = 878
	GenreThriller    = 53
)

// Neutral is the mood carrying no genre bias.
const Neutral = "neutral"

// genres is the fixed mood → genre-set table.
var genres = map[string][]int{
	"chill":       {GenreComedy, GenreFamily},
	"intense":     {GenreAction, GenreThriller, GenreHorror},
	"emotional":   {GenreDrama, GenreRomance},
	"educational": {GenreDocumentary, GenreHistory},
	"scifi":       {GenreSciFi, GenreFantasy},
	Neutral:       {},
}

// Resolve maps a mood to its genre IDs. Matching is case-insensitive and
// ignores surrounding whitespace. Unknown moods yield an empty set.
func Resolve(mood string) []int {
	ids, ok := genres[strings.ToLower(strings.TrimSpace(mood))]
	if !ok || len(ids) == 0 {
		return nil
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Known reports whether the mood is part of the fixed vocabulary.
func Known(mood string) bool {
	_, ok := genres[strings.ToLower(strings.TrimSpace(mood))]
	return ok
}

// Moods returns the vocabulary in sorted order, for API discovery.
func Moods() []string {
	out := make([]string, 0, len(genres))
	for m := range genres {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
