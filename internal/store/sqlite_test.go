package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_RoundTrip(t *testing.T) {
	s := openTestDB(t)

	_, ok, err := s.Get("interns")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("interns", `[{"id":"i1"}]`))
	v, ok, err := s.Get("interns")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"i1"}]`, v)

	// Set on an existing key overwrites.
	require.NoError(t, s.Set("interns", `[]`))
	v, _, err = s.Get("interns")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove("interns"))
	_, ok, err = s.Get("interns")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_RemoveAbsentKey(t *testing.T) {
	s := openTestDB(t)
	require.NoError(t, s.Remove("absent"))
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Remove("k"))
	_, ok, _ = m.Get("k")
	assert.False(t, ok)
}

func TestMemory_FailNextWrite(t *testing.T) {
	m := NewMemory()
	boom := errors.New("boom")

	m.FailNextWrite(boom)
	require.ErrorIs(t, m.Set("k", "v"), boom)
	// The injected failure is one-shot.
	require.NoError(t, m.Set("k", "v"))

	m.FailNextWrite(boom)
	require.ErrorIs(t, m.Remove("k"), boom)
}
