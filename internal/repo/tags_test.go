package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchevalier/stagetrack/internal/models"
)

func TestColorFor_Deterministic(t *testing.T) {
	assert.Equal(t, ColorFor("Urgent"), ColorFor("Urgent"))
	assert.Contains(t, palette[:], ColorFor("Urgent"))
	// The empty string hashes to zero, the first palette entry.
	assert.Equal(t, palette[0], ColorFor(""))
}

// Names and colors here come from documents written by earlier releases; the
// hash must keep mapping them to the same palette slots.
func TestColorFor_StoredDocumentParity(t *testing.T) {
	assert.Equal(t, palette[7], ColorFor("Urgent"))
	assert.Equal(t, palette[7], ColorFor("Priorité haute"))
	assert.Equal(t, palette[0], ColorFor("Développement Web"))
	// Long enough for the accumulator to pass 2^31 between shifts.
	assert.Equal(t, palette[3], ColorFor("Accompagnement renforcé stage de fin d'études"))
}

func TestTags_CreateDerivesColor(t *testing.T) {
	repos, _ := setupRepos(t)

	derived, err := repos.Tags.Create("Urgent", "", models.TagOwnerTask)
	require.NoError(t, err)
	assert.Equal(t, ColorFor("Urgent"), derived.Color)

	explicit, err := repos.Tags.Create("Autonome", "#123456", models.TagOwnerIntern)
	require.NoError(t, err)
	assert.Equal(t, "#123456", explicit.Color)
}

func TestTags_ListByOwner(t *testing.T) {
	repos, _ := setupRepos(t)
	_, err := repos.Tags.Create("Urgent", "", models.TagOwnerTask)
	require.NoError(t, err)
	_, err = repos.Tags.Create("Autonome", "", models.TagOwnerIntern)
	require.NoError(t, err)

	tags, err := repos.Tags.ListByOwner(models.TagOwnerIntern)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Autonome", tags[0].Name)
}

func TestTags_DeleteCascadesIntoBothCollections(t *testing.T) {
	repos, _ := setupRepos(t)

	doomed, err := repos.Tags.Create("Obsolète", "", models.TagOwnerIntern)
	require.NoError(t, err)
	kept, err := repos.Tags.Create("Urgent", "", models.TagOwnerTask)
	require.NoError(t, err)

	tagged, err := repos.Interns.Create(modelIntern("Dupont", "Marie"))
	require.NoError(t, err)
	require.NoError(t, repos.Interns.Update(tagged.ID, InternPatch{
		TagIDs: ptr([]string{doomed.ID, kept.ID}),
	}))
	untagged, err := repos.Interns.Create(modelIntern("Martin", "Luc"))
	require.NoError(t, err)

	task, err := repos.Tasks.Create(models.Task{
		Title:       "Rapport",
		AssigneeIDs: []string{tagged.ID},
		Status:      models.StatusNotStarted,
		DueDate:     "2026-06-30",
		TagIDs:      []string{doomed.ID},
	})
	require.NoError(t, err)

	require.NoError(t, repos.Tags.Delete(doomed.ID))

	tags, err := repos.Tags.List()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, kept.ID, tags[0].ID)

	interns, err := repos.Interns.List()
	require.NoError(t, err)
	require.Len(t, interns, 2)
	assert.Equal(t, []string{kept.ID}, interns[0].TagIDs)
	assert.Empty(t, interns[1].TagIDs)
	assert.Equal(t, untagged.ID, interns[1].ID)

	tasks, err := repos.Tasks.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Empty(t, tasks[0].TagIDs)
}

func TestTags_UpdateRenamesWithoutRecolor(t *testing.T) {
	repos, _ := setupRepos(t)
	tag, err := repos.Tags.Create("Urgent", "", models.TagOwnerTask)
	require.NoError(t, err)

	require.NoError(t, repos.Tags.Update(tag.ID, TagPatch{Name: ptr("Prioritaire")}))

	tags, err := repos.Tags.List()
	require.NoError(t, err)
	assert.Equal(t, "Prioritaire", tags[0].Name)
	// Renaming keeps the stored color; it is not re-derived.
	assert.Equal(t, tag.Color, tags[0].Color)
}
