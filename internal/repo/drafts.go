package repo

import (
	"math"

	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

// Drafts manages the intern and task draft lifecycle: save, completeness,
// conversion to a finalized record, deletion.
//
// Conversion is two-phase (create the record, then delete the draft) with no
// transaction across the two documents. A failure between the phases leaves
// both the new record and the draft behind; the caller sees the error and a
// retry converts again. At-least-once, never exactly-once.
type Drafts struct {
	store   store.Store
	interns *Interns
	tasks   *Tasks
}

func NewDrafts(s store.Store, interns *Interns, tasks *Tasks) *Drafts {
	return &Drafts{store: s, interns: interns, tasks: tasks}
}

// InternDraftPatch lists the fields a draft save can touch.
type InternDraftPatch struct {
	LastName      *string
	FirstName     *string
	Track         *string
	Email         *string
	Phone         *string
	StartDate     *string
	EndDate       *string
	GuardianName  *string
	GuardianPhone *string
}

// TaskDraftPatch lists the fields a task draft save can touch.
type TaskDraftPatch struct {
	Title       *string
	Description *string
	AssigneeIDs *[]string
	DueDate     *string
}

func (d *Drafts) ListInternDrafts() ([]models.InternDraft, error) {
	return load[models.InternDraft](d.store, keyInternDrafts)
}

func (d *Drafts) ListTaskDrafts() ([]models.TaskDraft, error) {
	return load[models.TaskDraft](d.store, keyTaskDrafts)
}

// SaveInternDraft merges p into the draft with the given id, refreshing
// ModifiedAt. With an empty or unknown id a new draft is created with
// CreatedAt = ModifiedAt = now. Returns the resulting draft.
func (d *Drafts) SaveInternDraft(p InternDraftPatch, id string) (models.InternDraft, error) {
	drafts, err := d.ListInternDrafts()
	if err != nil {
		return models.InternDraft{}, err
	}
	now := models.Now()

	if id != "" {
		for i := range drafts {
			if drafts[i].ID != id {
				continue
			}
			applyInternDraftPatch(&drafts[i], p)
			drafts[i].ModifiedAt = now
			if err := save(d.store, keyInternDrafts, drafts); err != nil {
				return models.InternDraft{}, err
			}
			return drafts[i], nil
		}
	}

	draft := models.InternDraft{ID: models.NewID(), CreatedAt: now, ModifiedAt: now}
	applyInternDraftPatch(&draft, p)
	drafts = append(drafts, draft)
	if err := save(d.store, keyInternDrafts, drafts); err != nil {
		return models.InternDraft{}, err
	}
	return draft, nil
}

// SaveTaskDraft is the task counterpart of SaveInternDraft.
func (d *Drafts) SaveTaskDraft(p TaskDraftPatch, id string) (models.TaskDraft, error) {
	drafts, err := d.ListTaskDrafts()
	if err != nil {
		return models.TaskDraft{}, err
	}
	now := models.Now()

	if id != "" {
		for i := range drafts {
			if drafts[i].ID != id {
				continue
			}
			applyTaskDraftPatch(&drafts[i], p)
			drafts[i].ModifiedAt = now
			if err := save(d.store, keyTaskDrafts, drafts); err != nil {
				return models.TaskDraft{}, err
			}
			return drafts[i], nil
		}
	}

	draft := models.TaskDraft{ID: models.NewID(), CreatedAt: now, ModifiedAt: now}
	applyTaskDraftPatch(&draft, p)
	drafts = append(drafts, draft)
	if err := save(d.store, keyTaskDrafts, drafts); err != nil {
		return models.TaskDraft{}, err
	}
	return draft, nil
}

// internRequired extracts the required-field values of an intern draft.
func internRequired(d models.InternDraft) []string {
	return []string{
		d.LastName, d.FirstName, d.Track, d.Email,
		d.StartDate, d.EndDate, d.GuardianName, d.GuardianPhone,
	}
}

// InternDraftCompleteness returns the filled percentage of the eight required
// intern fields, rounded to the nearest integer.
func InternDraftCompleteness(d models.InternDraft) int {
	return completeness(checks(internRequired(d)))
}

// TaskDraftCompleteness returns the filled percentage of the three task
// requirements: title, at least one assignee, due date.
func TaskDraftCompleteness(d models.TaskDraft) int {
	return completeness([]bool{
		d.Title != "",
		len(d.AssigneeIDs) > 0,
		d.DueDate != "",
	})
}

func checks(values []string) []bool {
	out := make([]bool, len(values))
	for i, v := range values {
		out[i] = v != ""
	}
	return out
}

func completeness(filled []bool) int {
	n := 0
	for _, ok := range filled {
		if ok {
			n++
		}
	}
	return int(math.Round(float64(n) / float64(len(filled)) * 100))
}

// ConvertInternDraft promotes a complete draft into a finalized intern and
// deletes the draft. Returns (nil, nil) when the draft is missing or any
// required field is empty; completeness of 100 and a successful conversion
// are the same condition.
func (d *Drafts) ConvertInternDraft(id string) (*models.Intern, error) {
	drafts, err := d.ListInternDrafts()
	if err != nil {
		return nil, err
	}
	var draft *models.InternDraft
	for i := range drafts {
		if drafts[i].ID == id {
			draft = &drafts[i]
			break
		}
	}
	if draft == nil {
		return nil, nil
	}
	for _, v := range internRequired(*draft) {
		if v == "" {
			return nil, nil
		}
	}

	intern, err := d.interns.Create(models.Intern{
		LastName:      draft.LastName,
		FirstName:     draft.FirstName,
		Track:         draft.Track,
		Email:         draft.Email,
		Phone:         draft.Phone,
		StartDate:     draft.StartDate,
		EndDate:       draft.EndDate,
		GuardianName:  draft.GuardianName,
		GuardianPhone: draft.GuardianPhone,
	})
	if err != nil {
		return nil, err
	}

	if err := d.DeleteInternDraft(id); err != nil {
		// The intern exists but the draft survived; a retry re-converts.
		return &intern, err
	}
	return &intern, nil
}

// ConvertTaskDraft promotes a complete task draft into a finalized task with
// defaulted derived fields, then deletes the draft. Same contract as
// ConvertInternDraft.
func (d *Drafts) ConvertTaskDraft(id string) (*models.Task, error) {
	drafts, err := d.ListTaskDrafts()
	if err != nil {
		return nil, err
	}
	var draft *models.TaskDraft
	for i := range drafts {
		if drafts[i].ID == id {
			draft = &drafts[i]
			break
		}
	}
	if draft == nil {
		return nil, nil
	}
	if draft.Title == "" || len(draft.AssigneeIDs) == 0 || draft.DueDate == "" {
		return nil, nil
	}

	task, err := d.tasks.Create(models.Task{
		Title:       draft.Title,
		Description: draft.Description,
		AssigneeIDs: draft.AssigneeIDs,
		Status:      models.StatusNotStarted,
		CreatedAt:   models.Now(),
		DueDate:     draft.DueDate,
	})
	if err != nil {
		return nil, err
	}

	if err := d.DeleteTaskDraft(id); err != nil {
		return &task, err
	}
	return &task, nil
}

// DeleteInternDraft removes a draft unconditionally; no-op when absent.
func (d *Drafts) DeleteInternDraft(id string) error {
	drafts, err := d.ListInternDrafts()
	if err != nil {
		return err
	}
	kept := drafts[:0]
	for _, dr := range drafts {
		if dr.ID != id {
			kept = append(kept, dr)
		}
	}
	return save(d.store, keyInternDrafts, kept)
}

// DeleteTaskDraft removes a task draft unconditionally; no-op when absent.
func (d *Drafts) DeleteTaskDraft(id string) error {
	drafts, err := d.ListTaskDrafts()
	if err != nil {
		return err
	}
	kept := drafts[:0]
	for _, dr := range drafts {
		if dr.ID != id {
			kept = append(kept, dr)
		}
	}
	return save(d.store, keyTaskDrafts, kept)
}

func applyInternDraftPatch(d *models.InternDraft, p InternDraftPatch) {
	if p.LastName != nil {
		d.LastName = *p.LastName
	}
	if p.FirstName != nil {
		d.FirstName = *p.FirstName
	}
	if p.Track != nil {
		d.Track = *p.Track
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
	if p.GuardianName != nil {
		d.GuardianName = *p.GuardianName
	}
	if p.GuardianPhone != nil {
		d.GuardianPhone = *p.GuardianPhone
	}
}

func applyTaskDraftPatch(d *models.TaskDraft, p TaskDraftPatch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.AssigneeIDs != nil {
		d.AssigneeIDs = *p.AssigneeIDs
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
}
