package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	tok := &Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(tok))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, loaded.AccessToken)
	assert.Equal(t, tok.RefreshToken, loaded.RefreshToken)
	assert.True(t, tok.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestFileStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
}

func TestFileStoreSaveReplacesInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	store := NewFileStore(path)

	first := &Token{AccessToken: "a1", RefreshToken: "r1", ExpiresAt: time.Now().UTC()}
	second := &Token{AccessToken: "a2", RefreshToken: "r2", ExpiresAt: time.Now().UTC().Add(time.Hour)}

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a2", loaded.AccessToken)
	assert.Equal(t, "r2", loaded.RefreshToken)

	// No temp files may be left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "credentials.json", entries[0].Name())
}

func TestFileStorePermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(&Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now()}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)

	tok := &Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now()}
	require.NoError(t, store.Save(tok))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)

	// The store keeps its own copy.
	loaded.AccessToken = "mutated"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a", again.AccessToken)
}
