package repo

import (
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

// Interns is the intern record repository.
type Interns struct {
	store store.Store
}

func NewInterns(s store.Store) *Interns {
	return &Interns{store: s}
}

// InternPatch lists the mutable intern fields. A nil field leaves the stored
// value unchanged.
type InternPatch struct {
	LastName      *string
	FirstName     *string
	Track         *string
	Email         *string
	Phone         *string
	StartDate     *string
	EndDate       *string
	GuardianName  *string
	GuardianPhone *string
	TagIDs        *[]string
}

// List returns all interns in insertion order.
func (r *Interns) List() ([]models.Intern, error) {
	return load[models.Intern](r.store, keyInterns)
}

// Create assigns a fresh id to in, appends it and writes the collection back.
func (r *Interns) Create(in models.Intern) (models.Intern, error) {
	interns, err := r.List()
	if err != nil {
		return models.Intern{}, err
	}
	in.ID = models.NewID()
	interns = append(interns, in)
	if err := save(r.store, keyInterns, interns); err != nil {
		return models.Intern{}, err
	}
	return in, nil
}

// Update merges p over the intern with the given id. An unknown id is a
// silent no-op.
func (r *Interns) Update(id string, p InternPatch) error {
	interns, err := r.List()
	if err != nil {
		return err
	}
	for i := range interns {
		if interns[i].ID != id {
			continue
		}
		applyInternPatch(&interns[i], p)
		return save(r.store, keyInterns, interns)
	}
	return nil
}

// Delete removes the intern with the given id. Tasks referencing the intern
// are left untouched; they keep the dangling assignee id.
func (r *Interns) Delete(id string) error {
	interns, err := r.List()
	if err != nil {
		return err
	}
	kept := interns[:0]
	for _, in := range interns {
		if in.ID != id {
			kept = append(kept, in)
		}
	}
	return save(r.store, keyInterns, kept)
}

func applyInternPatch(in *models.Intern, p InternPatch) {
	if p.LastName != nil {
		in.LastName = *p.LastName
	}
	if p.FirstName != nil {
		in.FirstName = *p.FirstName
	}
	if p.Track != nil {
		in.Track = *p.Track
	}
	if p.Email != nil {
		in.Email = *p.Email
	}
	if p.Phone != nil {
		in.Phone = *p.Phone
	}
	if p.StartDate != nil {
		in.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		in.EndDate = *p.EndDate
	}
	if p.GuardianName != nil {
		in.GuardianName = *p.GuardianName
	}
	if p.GuardianPhone != nil {
		in.GuardianPhone = *p.GuardianPhone
	}
	if p.TagIDs != nil {
		in.TagIDs = *p.TagIDs
	}
}
