package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUniqueSlug_FreeCandidate(t *testing.T) {
	slug, err := ensureUniqueSlug("chocolate-cake", func(string) (bool, error) {
		return false, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "chocolate-cake", slug)
}

func TestEnsureUniqueSlug_AppendsCounter(t *testing.T) {
	taken := map[string]bool{
		"chocolate-cake":   true,
		"chocolate-cake-1": true,
		"chocolate-cake-2": true,
	}

	slug, err := ensureUniqueSlug("chocolate-cake", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})

	require.NoError(t, err)
	assert.Equal(t, "chocolate-cake-3", slug)
}

func TestEnsureUniqueSlug_PropagatesError(t *testing.T) {
	checkErr := errors.New("database unavailable")

	slug, err := ensureUniqueSlug("chocolate-cake", func(string) (bool, error) {
		return false, checkErr
	})

	assert.ErrorIs(t, err, checkErr)
	assert.Empty(t, slug)
}
