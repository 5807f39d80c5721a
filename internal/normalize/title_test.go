package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Dune", "dune"},
		{"trims whitespace", " dune  ", "dune"},
		{"collapses internal whitespace", "The  Wire", "the wire"},
		{"tabs and newlines collapse too", "The\tMatrix\nReloaded", "the matrix reloaded"},
		{"already canonical", "arrival", "arrival"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", "   ", ""},
		{"unicode case folds", "AMÉLIE", "amélie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.input))
		})
	}
}

func TestTitlesEqual(t *testing.T) {
	assert.True(t, TitlesEqual("Dune", "dune "))
	assert.True(t, TitlesEqual("The  Wire", "the wire"))
	assert.False(t, TitlesEqual("Dune", "Dune: Part Two"), "substring overlap is not equality")
	assert.False(t, TitlesEqual("Alien", "Aliens"))
}
