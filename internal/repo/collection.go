// Package repo implements the typed record repositories. Every collection is
// one JSON array document in the store; every mutation is a whole-document
// read-modify-write. Two processes writing the same key race last-write-wins;
// this is a known limitation of the single-operator design, not guarded
// against here.
package repo

import (
	"encoding/json"
	"fmt"

	"github.com/mchevalier/stagetrack/internal/store"
)

// Store keys, one per collection.
const (
	keyInterns      = "interns"
	keyTasks        = "tasks"
	keyInternDrafts = "intern_drafts"
	keyTaskDrafts   = "task_drafts"
	keyTags         = "tags"
)

// decode parses a stored collection document. Callers treat a decode error
// as an empty collection; the error is surfaced so that policy stays an
// explicit branch rather than an accident.
func decode[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("malformed collection document: %w", err)
	}
	return items, nil
}

// load reads a whole collection. An absent key or a malformed document reads
// as an empty collection; only store I/O errors propagate.
func load[T any](s store.Store, key string) ([]T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	items, err := decode[T](raw)
	if err != nil {
		// Unreadable data is treated as no data.
		return nil, nil
	}
	return items, nil
}

// save writes a whole collection back to its key.
func save[T any](s store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", key, err)
	}
	return s.Set(key, string(data))
}

// Repos bundles the repositories over one store.
type Repos struct {
	Interns *Interns
	Tasks   *Tasks
	Tags    *Tags
	Drafts  *Drafts
}

// New constructs the repository set over s.
func New(s store.Store) *Repos {
	interns := NewInterns(s)
	tasks := NewTasks(s)
	return &Repos{
		Interns: interns,
		Tasks:   tasks,
		Tags:    NewTags(s, interns, tasks),
		Drafts:  NewDrafts(s, interns, tasks),
	}
}
