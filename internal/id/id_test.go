package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id1, err := Generate("rev")
	require.NoError(t, err)
	id2, err := Generate("rev")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id1, "rev-"))
	assert.NotEqual(t, id1, id2, "nanoid values must be unique")
}

func TestForTitleDeterministic(t *testing.T) {
	a := ForTitle("Arrival")
	b := ForTitle("Arrival")
	assert.Equal(t, a, b, "same title must map to the same identifier")
	assert.True(t, strings.HasPrefix(a, "mem-"))
}

func TestForTitleNormalizes(t *testing.T) {
	// Case and surrounding whitespace do not change the identity.
	assert.Equal(t, ForTitle("Arrival"), ForTitle(" arrival "))
	assert.Equal(t, ForTitle("The  Wire"), ForTitle("the wire"))
}

func TestForTitleDistinct(t *testing.T) {
	assert.NotEqual(t, ForTitle("Alien"), ForTitle("Aliens"))
	assert.NotEqual(t, ForTitle("Dune"), ForTitle("Dune: Part Two"))
}
