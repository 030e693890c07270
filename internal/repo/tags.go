package repo

import (
	"math"
	"slices"
	"unicode/utf16"

	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

// palette is the fixed color set a tag color is derived from when none is
// given. Order matters: the hash of a tag name indexes into it, so the same
// name keeps the same color across sessions.
var palette = [...]string{
	"#ff6600",
	"#3b82f6",
	"#10b981",
	"#f59e0b",
	"#8b5cf6",
	"#ec4899",
	"#14b8a6",
	"#f97316",
}

// ColorFor returns the deterministic palette color for a tag name. The
// recurrence runs over UTF-16 code units; only the shifted term wraps at
// 32 bits, the accumulator itself never does.
func ColorFor(name string) string {
	var h float64
	for _, u := range utf16.Encode([]rune(name)) {
		h = float64(u) + float64(int32(int64(h))<<5) - h
	}
	idx := int64(math.Abs(h)) % int64(len(palette))
	return palette[idx]
}

// Tags is the tag repository. Deleting a tag cascades into the intern and
// task collections so no record keeps a reference to a deleted tag.
type Tags struct {
	store   store.Store
	interns *Interns
	tasks   *Tasks
}

func NewTags(s store.Store, interns *Interns, tasks *Tasks) *Tags {
	return &Tags{store: s, interns: interns, tasks: tasks}
}

// TagPatch lists the mutable tag fields.
type TagPatch struct {
	Name  *string
	Color *string
}

// List returns all tags in insertion order.
func (r *Tags) List() ([]models.Tag, error) {
	return load[models.Tag](r.store, keyTags)
}

// ListByOwner returns the tags for one record kind.
func (r *Tags) ListByOwner(owner models.TagOwner) ([]models.Tag, error) {
	tags, err := r.List()
	if err != nil {
		return nil, err
	}
	var matched []models.Tag
	for _, t := range tags {
		if t.Owner == owner {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// Create adds a tag. An empty color is derived from the name.
func (r *Tags) Create(name, color string, owner models.TagOwner) (models.Tag, error) {
	if color == "" {
		color = ColorFor(name)
	}
	tags, err := r.List()
	if err != nil {
		return models.Tag{}, err
	}
	tag := models.Tag{
		ID:    models.NewID(),
		Name:  name,
		Color: color,
		Owner: owner,
	}
	tags = append(tags, tag)
	if err := save(r.store, keyTags, tags); err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

// Update merges p over the tag with the given id; silent no-op when absent.
func (r *Tags) Update(id string, p TagPatch) error {
	tags, err := r.List()
	if err != nil {
		return err
	}
	for i := range tags {
		if tags[i].ID != id {
			continue
		}
		if p.Name != nil {
			tags[i].Name = *p.Name
		}
		if p.Color != nil {
			tags[i].Color = *p.Color
		}
		return save(r.store, keyTags, tags)
	}
	return nil
}

// Delete removes the tag and strips its id from every intern's and every
// task's tag list in the same logical operation.
func (r *Tags) Delete(id string) error {
	tags, err := r.List()
	if err != nil {
		return err
	}
	kept := tags[:0]
	for _, t := range tags {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := save(r.store, keyTags, kept); err != nil {
		return err
	}

	interns, err := r.interns.List()
	if err != nil {
		return err
	}
	if stripTagFromInterns(interns, id) {
		if err := save(r.store, keyInterns, interns); err != nil {
			return err
		}
	}

	tasks, err := r.tasks.List()
	if err != nil {
		return err
	}
	if stripTagFromTasks(tasks, id) {
		if err := save(r.store, keyTasks, tasks); err != nil {
			return err
		}
	}
	return nil
}

func stripTagFromInterns(interns []models.Intern, tagID string) bool {
	changed := false
	for i := range interns {
		if slices.Contains(interns[i].TagIDs, tagID) {
			interns[i].TagIDs = removeString(interns[i].TagIDs, tagID)
			changed = true
		}
	}
	return changed
}

func stripTagFromTasks(tasks []models.Task, tagID string) bool {
	changed := false
	for i := range tasks {
		if slices.Contains(tasks[i].TagIDs, tagID) {
			tasks[i].TagIDs = removeString(tasks[i].TagIDs, tagID)
			changed = true
		}
	}
	return changed
}

func removeString(items []string, s string) []string {
	var kept []string
	for _, it := range items {
		if it != s {
			kept = append(kept, it)
		}
	}
	return kept
}
