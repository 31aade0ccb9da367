package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_SetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("labbaik-2025"))
	assert.NotEqual(t, "labbaik-2025", p.Hash)

	ok, err := p.Matches("labbaik-2025")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAll_ListsEveryModel(t *testing.T) {
	assert.Len(t, All(), 14)
}
