package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchevalier/stagetrack/internal/store"
)

func ptr[T any](v T) *T { return &v }

func TestLoad_Defaults(t *testing.T) {
	m := New(store.NewMemory())

	p := m.Load()
	assert.Equal(t, ThemeLight, p.Theme)
	assert.False(t, p.ShowCalendar)
	assert.True(t, p.ShowAnalytics)
	assert.Equal(t, ViewList, p.DefaultView)
}

func TestLoad_MalformedDocumentReadsDefaults(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set("preferences", "{broken"))

	p := New(s).Load()
	assert.Equal(t, Defaults(), p)
}

func TestLoad_PartialDocumentKeepsDefaults(t *testing.T) {
	s := store.NewMemory()
	// A document written before newer fields existed.
	require.NoError(t, s.Set("preferences", `{"theme":"dark"}`))

	p := New(s).Load()
	assert.Equal(t, ThemeDark, p.Theme)
	assert.True(t, p.ShowAnalytics)
	assert.Equal(t, ViewList, p.DefaultView)
}

func TestSave_MergesPatch(t *testing.T) {
	m := New(store.NewMemory())

	require.NoError(t, m.Save(Patch{Theme: ptr(ThemeDark)}))
	require.NoError(t, m.Save(Patch{DefaultView: ptr(ViewCalendar)}))

	p := m.Load()
	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, ViewCalendar, p.DefaultView)
	assert.True(t, p.ShowAnalytics)
}

func TestToggleTheme(t *testing.T) {
	m := New(store.NewMemory())

	theme, err := m.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, ThemeDark, m.Load().Theme)

	theme, err = m.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}
