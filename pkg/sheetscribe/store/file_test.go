package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreContract(t *testing.T) {
	runStoreContract(t, NewFile(filepath.Join(t.TempDir(), "nested", "state.yaml")))
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewFile(path)
	require.NoError(t, s.SetAPIKey(context.Background(), "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, NewFile(path).SetLastResponse(context.Background(), "kept"))

	got, err := NewFile(path).LastResponse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [unclosed"), 0o600))

	_, err := NewFile(path).APIKey(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
