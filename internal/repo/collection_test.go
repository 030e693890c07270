package repo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mchevalier/stagetrack/internal/store"
)

func setupRepos(t *testing.T) (*Repos, *store.Memory) {
	t.Helper()
	s := store.NewMemory()
	return New(s), s
}

func ptr[T any](v T) *T { return &v }

// flakyStore fails every Set on one key, letting tests break the second
// phase of a multi-document operation while the first phase succeeds.
type flakyStore struct {
	store.Store
	failKey string
	err     error
}

func (f *flakyStore) Set(key, value string) error {
	if f.failKey != "" && key == f.failKey {
		return f.err
	}
	return f.Store.Set(key, value)
}

func TestLoad_AbsentDocumentReadsEmpty(t *testing.T) {
	repos, _ := setupRepos(t)

	interns, err := repos.Interns.List()
	require.NoError(t, err)
	require.Empty(t, interns)
}

func TestLoad_MalformedDocumentReadsEmpty(t *testing.T) {
	repos, s := setupRepos(t)
	require.NoError(t, s.Set("interns", "{definitely not json"))

	interns, err := repos.Interns.List()
	require.NoError(t, err)
	require.Empty(t, interns)

	// The collection is usable again after the next write.
	_, err = repos.Interns.Create(modelIntern("Dupont", "Marie"))
	require.NoError(t, err)
	interns, err = repos.Interns.List()
	require.NoError(t, err)
	require.Len(t, interns, 1)
}
