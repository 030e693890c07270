// Package prefs persists the user preferences document: a single JSON object
// merged over defaults on read, so documents written by older versions keep
// working when fields are added.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

const key = "preferences"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	ViewList     = "list"
	ViewCalendar = "calendar"
)

// Defaults returns the preferences used before anything is stored.
func Defaults() models.Preferences {
	return models.Preferences{
		Theme:         ThemeLight,
		ShowCalendar:  false,
		ShowAnalytics: true,
		DefaultView:   ViewList,
	}
}

// Manager reads and writes the preferences document.
type Manager struct {
	store store.Store
}

func New(s store.Store) *Manager {
	return &Manager{store: s}
}

// Load returns the stored preferences merged over the defaults. An absent or
// malformed document reads as the defaults.
func (m *Manager) Load() models.Preferences {
	p := Defaults()
	raw, ok, err := m.store.Get(key)
	if err != nil || !ok {
		return p
	}
	// Unmarshalling over the pre-filled struct keeps defaults for fields the
	// stored document does not have.
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Defaults()
	}
	return p
}

// Patch lists the preference fields a save can touch.
type Patch struct {
	Theme         *string
	ShowCalendar  *bool
	ShowAnalytics *bool
	DefaultView   *string
}

// Save merges p over the current preferences and writes the document back.
func (m *Manager) Save(p Patch) error {
	current := m.Load()
	if p.Theme != nil {
		current.Theme = *p.Theme
	}
	if p.ShowCalendar != nil {
		current.ShowCalendar = *p.ShowCalendar
	}
	if p.ShowAnalytics != nil {
		current.ShowAnalytics = *p.ShowAnalytics
	}
	if p.DefaultView != nil {
		current.DefaultView = *p.DefaultView
	}
	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	return m.store.Set(key, string(data))
}

// ToggleTheme flips between light and dark and returns the new theme.
func (m *Manager) ToggleTheme() (string, error) {
	theme := ThemeLight
	if m.Load().Theme == ThemeLight {
		theme = ThemeDark
	}
	return theme, m.Save(Patch{Theme: &theme})
}
