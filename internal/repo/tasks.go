package repo

import (
	"slices"

	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

// Tasks is the task record repository.
type Tasks struct {
	store store.Store
}

func NewTasks(s store.Store) *Tasks {
	return &Tasks{store: s}
}

// TaskPatch lists the mutable task fields. A nil field leaves the stored
// value unchanged. IsGroup is not patchable: it is recomputed whenever
// AssigneeIDs changes.
type TaskPatch struct {
	Title       *string
	Description *string
	AssigneeIDs *[]string
	Status      *models.Status
	DueDate     *string
	TagIDs      *[]string
}

// List returns all tasks in insertion order.
func (r *Tasks) List() ([]models.Task, error) {
	return load[models.Task](r.store, keyTasks)
}

// Create assigns a fresh id, derives IsGroup from the assignee list, defaults
// CreatedAt to now when unset, appends and writes back.
func (r *Tasks) Create(t models.Task) (models.Task, error) {
	tasks, err := r.List()
	if err != nil {
		return models.Task{}, err
	}
	t.ID = models.NewID()
	t.IsGroup = len(t.AssigneeIDs) > 1
	if t.CreatedAt == "" {
		t.CreatedAt = models.Now()
	}
	tasks = append(tasks, t)
	if err := save(r.store, keyTasks, tasks); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Update merges p over the task with the given id, recomputing IsGroup in the
// same write when the assignee list changes. An unknown id is a silent no-op.
func (r *Tasks) Update(id string, p TaskPatch) error {
	tasks, err := r.List()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		applyTaskPatch(&tasks[i], p)
		return save(r.store, keyTasks, tasks)
	}
	return nil
}

// Delete removes the task with the given id; no-op if absent.
func (r *Tasks) Delete(id string) error {
	tasks, err := r.List()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return save(r.store, keyTasks, kept)
}

// ListByAssignee returns the tasks whose assignee list contains internID.
func (r *Tasks) ListByAssignee(internID string) ([]models.Task, error) {
	tasks, err := r.List()
	if err != nil {
		return nil, err
	}
	var matched []models.Task
	for _, t := range tasks {
		if slices.Contains(t.AssigneeIDs, internID) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func applyTaskPatch(t *models.Task, p TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AssigneeIDs != nil {
		t.AssigneeIDs = *p.AssigneeIDs
		t.IsGroup = len(t.AssigneeIDs) > 1
	}
	if p.Status != nil {
		// Any status may replace any other; there is no transition order.
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.TagIDs != nil {
		t.TagIDs = *p.TagIDs
	}
}
