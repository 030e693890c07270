package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/store"
)

func completeInternPatch() InternDraftPatch {
	return InternDraftPatch{
		LastName:      ptr("Dupont"),
		FirstName:     ptr("Marie"),
		Track:         ptr("Développement Web"),
		Email:         ptr("marie@example.fr"),
		StartDate:     ptr("2026-02-01"),
		EndDate:       ptr("2026-07-31"),
		GuardianName:  ptr("Jean Dupont"),
		GuardianPhone: ptr("+33 6 12 34 56 78"),
	}
}

func TestSaveInternDraft_CreateThenMerge(t *testing.T) {
	repos, _ := setupRepos(t)

	draft, err := repos.Drafts.SaveInternDraft(InternDraftPatch{
		LastName: ptr("Dupont"),
	}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.NotEmpty(t, draft.CreatedAt)
	assert.Equal(t, draft.CreatedAt, draft.ModifiedAt)

	merged, err := repos.Drafts.SaveInternDraft(InternDraftPatch{
		FirstName: ptr("Marie"),
	}, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, merged.ID)
	assert.Equal(t, "Dupont", merged.LastName)
	assert.Equal(t, "Marie", merged.FirstName)

	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	require.Len(t, drafts, 1)
}

func TestSaveInternDraft_UnknownIDCreates(t *testing.T) {
	repos, _ := setupRepos(t)

	draft, err := repos.Drafts.SaveInternDraft(InternDraftPatch{
		LastName: ptr("Martin"),
	}, "nope")
	require.NoError(t, err)
	assert.NotEqual(t, "nope", draft.ID)

	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	require.Len(t, drafts, 1)
}

func TestInternDraftCompleteness(t *testing.T) {
	assert.Equal(t, 0, InternDraftCompleteness(models.InternDraft{}))
	// 2 of the 8 required fields.
	assert.Equal(t, 25, InternDraftCompleteness(models.InternDraft{
		LastName:  "Dupont",
		FirstName: "Marie",
	}))
	// Phone is optional and does not count.
	assert.Equal(t, 25, InternDraftCompleteness(models.InternDraft{
		LastName:  "Dupont",
		FirstName: "Marie",
		Phone:     "+33 6 00 00 00 00",
	}))
	assert.Equal(t, 100, InternDraftCompleteness(models.InternDraft{
		LastName: "Dupont", FirstName: "Marie", Track: "Data Science",
		Email: "m@x.fr", StartDate: "2026-02-01", EndDate: "2026-07-31",
		GuardianName: "Jean", GuardianPhone: "+33 6 12 34 56 78",
	}))
}

func TestTaskDraftCompleteness(t *testing.T) {
	assert.Equal(t, 0, TaskDraftCompleteness(models.TaskDraft{}))
	assert.Equal(t, 33, TaskDraftCompleteness(models.TaskDraft{Title: "Rapport"}))
	assert.Equal(t, 67, TaskDraftCompleteness(models.TaskDraft{
		Title:       "Rapport",
		AssigneeIDs: []string{"i1"},
	}))
	assert.Equal(t, 100, TaskDraftCompleteness(models.TaskDraft{
		Title:       "Rapport",
		AssigneeIDs: []string{"i1"},
		DueDate:     "2026-06-30",
	}))
}

func TestConvertInternDraft_IncompleteReturnsNil(t *testing.T) {
	repos, _ := setupRepos(t)
	draft, err := repos.Drafts.SaveInternDraft(InternDraftPatch{
		LastName: ptr("Dupont"),
	}, "")
	require.NoError(t, err)

	intern, err := repos.Drafts.ConvertInternDraft(draft.ID)
	require.NoError(t, err)
	assert.Nil(t, intern)

	// The draft and the intern collection are untouched.
	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
	interns, err := repos.Interns.List()
	require.NoError(t, err)
	assert.Empty(t, interns)
}

func TestConvertInternDraft_MissingReturnsNil(t *testing.T) {
	repos, _ := setupRepos(t)

	intern, err := repos.Drafts.ConvertInternDraft("nope")
	require.NoError(t, err)
	assert.Nil(t, intern)
}

func TestConvertInternDraft_Complete(t *testing.T) {
	repos, _ := setupRepos(t)
	draft, err := repos.Drafts.SaveInternDraft(completeInternPatch(), "")
	require.NoError(t, err)
	require.Equal(t, 100, InternDraftCompleteness(draft))

	intern, err := repos.Drafts.ConvertInternDraft(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, intern)
	assert.NotEmpty(t, intern.ID)
	assert.NotEqual(t, draft.ID, intern.ID)
	assert.Equal(t, "Dupont", intern.LastName)

	interns, err := repos.Interns.List()
	require.NoError(t, err)
	require.Len(t, interns, 1)
	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestConvertTaskDraft_Complete(t *testing.T) {
	repos, _ := setupRepos(t)
	draft, err := repos.Drafts.SaveTaskDraft(TaskDraftPatch{
		Title:       ptr("Projet d'équipe"),
		AssigneeIDs: ptr([]string{"i1", "i2"}),
		DueDate:     ptr("2026-06-30"),
	}, "")
	require.NoError(t, err)

	task, err := repos.Drafts.ConvertTaskDraft(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, models.StatusNotStarted, task.Status)
	assert.True(t, task.IsGroup)
	assert.NotEmpty(t, task.CreatedAt)

	drafts, err := repos.Drafts.ListTaskDrafts()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestConvertInternDraft_DraftDeleteFailure(t *testing.T) {
	mem := store.NewMemory()
	flaky := &flakyStore{Store: mem}
	repos := New(flaky)

	draft, err := repos.Drafts.SaveInternDraft(completeInternPatch(), "")
	require.NoError(t, err)

	boom := errors.New("write failed")
	flaky.failKey, flaky.err = "intern_drafts", boom

	// Phase one succeeds, phase two fails: the intern exists and the draft
	// survives.
	intern, err := repos.Drafts.ConvertInternDraft(draft.ID)
	require.ErrorIs(t, err, boom)
	require.NotNil(t, intern)

	flaky.failKey = ""
	interns, err := repos.Interns.List()
	require.NoError(t, err)
	require.Len(t, interns, 1)
	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	// A retry converts again; the duplicate is the documented cost of the
	// at-least-once contract.
	retried, err := repos.Drafts.ConvertInternDraft(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, retried)
	interns, err = repos.Interns.List()
	require.NoError(t, err)
	assert.Len(t, interns, 2)
	drafts, err = repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestDeleteInternDraft(t *testing.T) {
	repos, _ := setupRepos(t)
	draft, err := repos.Drafts.SaveInternDraft(InternDraftPatch{
		LastName: ptr("Dupont"),
	}, "")
	require.NoError(t, err)

	require.NoError(t, repos.Drafts.DeleteInternDraft(draft.ID))
	require.NoError(t, repos.Drafts.DeleteInternDraft("nope"))

	drafts, err := repos.Drafts.ListInternDrafts()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
