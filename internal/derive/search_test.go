package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mchevalier/stagetrack/internal/models"
)

func TestSearchInterns(t *testing.T) {
	interns := []models.Intern{
		{ID: "i1", LastName: "Dupont", FirstName: "Marie", Email: "marie@example.fr", Track: "Data Science", GuardianName: "Jean Dupont"},
		{ID: "i2", LastName: "Martin", FirstName: "Luc", Email: "luc@example.fr", Track: "Développement Web", GuardianName: "Anne Martin"},
	}

	// Blank and whitespace-only queries return the input unchanged.
	assert.Equal(t, interns, SearchInterns(interns, ""))
	assert.Equal(t, interns, SearchInterns(interns, "   "))

	got := SearchInterns(interns, "DUPONT")
	assert.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)

	// Guardian name is searchable.
	got = SearchInterns(interns, "anne")
	assert.Len(t, got, 1)
	assert.Equal(t, "i2", got[0].ID)

	got = SearchInterns(interns, "example.fr")
	assert.Len(t, got, 2)

	assert.Empty(t, SearchInterns(interns, "introuvable"))
}

func TestSearchTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "Rapport de stage", Description: "Rédiger le rapport final"},
		{ID: "t2", Title: "Présentation", Description: "Soutenance orale"},
	}

	assert.Equal(t, tasks, SearchTasks(tasks, ""))

	got := SearchTasks(tasks, "rapport")
	assert.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)

	// Description matches too.
	got = SearchTasks(tasks, "soutenance")
	assert.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
}

func TestFilterByTags(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", TagIDs: []string{"a"}},
		{ID: "t2", TagIDs: []string{"b"}},
		{ID: "t3", TagIDs: []string{"a", "c"}},
		{ID: "t4"},
	}

	// Empty selection is the identity.
	assert.Equal(t, tasks, FilterByTags(tasks, nil))

	got := FilterByTags(tasks, []string{"a"})
	assert.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)

	// OR semantics across the selection.
	got = FilterByTags(tasks, []string{"b", "c"})
	assert.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)

	assert.Empty(t, FilterByTags(tasks, []string{"z"}))
	assert.Empty(t, FilterByTags([]models.Task(nil), []string{"a"}))
}
