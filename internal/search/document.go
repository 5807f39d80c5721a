// Package search provides keyword search over memorized content using Bleve.
// It complements vector similarity: when the user remembers a phrase from a
// plot rather than its meaning, a term match beats a semantic one.
package search

import (
	"github.com/cinelogapp/cinelog-server/internal/domain"
)

// ContentDocument is the document structure for the Bleve index.
type ContentDocument struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Genres   []string `json:"genres,omitempty"`
	Rating   int      `json:"rating"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our mapping
// uses lowercase names, so we convert explicitly.
func (d *ContentDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":     d.ID,
		"title":  d.Title,
		"rating": d.Rating,
	}
	if d.Overview != "" {
		m["overview"] = d.Overview
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	return m
}

// RecordToDocument converts a memorized content record to a search document.
func RecordToDocument(rec *domain.ContentRecord) *ContentDocument {
	return &ContentDocument{
		ID:       rec.ID,
		Title:    rec.Title,
		Overview: rec.Overview,
		Genres:   rec.Genres,
		Rating:   rec.Rating,
	}
}
