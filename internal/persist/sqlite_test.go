// ABOUTME: Tests for the SQLite persist store
// ABOUTME: Covers roundtrips, overwrites, deletes, and reopen persistence

package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore opens a SQLite store in a temp directory.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	s := createTestStore(t)

	v, ok, err := s.Get("auth.token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_SetGetRoundtrip(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.Set("auth.token", "tok-123"))

	v, ok, err := s.Get("auth.token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.Set("auth.token", "old"))
	require.NoError(t, s.Set("auth.token", "new"))

	v, ok, err := s.Get("auth.token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.Set("auth.identity", `{"username":"alice"}`))
	require.NoError(t, s.Delete("auth.identity"))

	_, ok, err := s.Get("auth.identity")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op
	require.NoError(t, s.Delete("auth.identity"))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("auth.token", "persisted"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("auth.token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestSQLiteStore_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", "v"))
}

func TestSQLiteStore_OperationsAfterClose(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get("auth.token")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("auth.token", "tok"), ErrClosed)
	assert.ErrorIs(t, s.Delete("auth.token"), ErrClosed)

	// Closing twice is a no-op
	require.NoError(t, s.Close())
}

func TestMemoryStore_OperationsAfterClose(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Set("auth.token", "tok"))
	require.NoError(t, m.Close())

	_, _, err := m.Get("auth.token")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set("auth.token", "tok"), ErrClosed)
	assert.ErrorIs(t, m.Delete("auth.token"), ErrClosed)
}
