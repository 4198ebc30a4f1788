package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every Store must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.APIKey(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LastResponse(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetAPIKey(ctx, "sk-ant-123"))
	require.NoError(t, s.SetLastResponse(ctx, "```\nA  1\n```"))

	key, err := s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-123", key)

	last, err := s.LastResponse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "```\nA  1\n```", last)

	// Replacing one value leaves the other alone.
	require.NoError(t, s.SetLastResponse(ctx, "second"))
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-123", key)
	last, err = s.LastResponse(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", last)
}
