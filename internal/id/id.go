// Package id provides identifier generation for CineLog entities.
package id

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cinelogapp/cinelog-server/internal/normalize"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "rev-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// ForTitle derives a stable content identifier from a title.
// The same title (modulo case and surrounding whitespace) always maps to the
// same identifier, across runs and across machines, so re-memorizing a title
// upserts instead of duplicating. xxhash is used with its fixed default seed;
// this is a content address, not a security boundary.
func ForTitle(title string) string {
	sum := xxhash.Sum64String(normalize.Title(title))
	return "mem-" + strconv.FormatUint(sum, 16)
}
