package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mchevalier/stagetrack/internal/models"
)

func TestSortTasks_ByDate(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", DueDate: "2026-03-03"},
		{ID: "t2", DueDate: "2026-03-01"},
		{ID: "t3", DueDate: "2026-03-02T10:00:00Z"},
	}

	got := SortTasks(tasks, SortByDate)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)
	assert.Equal(t, "t1", got[2].ID)
	// Input order is untouched.
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestSortTasks_UnparseableDateSortsFirst(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", DueDate: "2026-03-01"},
		{ID: "t2", DueDate: "pas une date"},
	}

	got := SortTasks(tasks, SortByDate)
	assert.Equal(t, "t2", got[0].ID)
}

func TestSortTasks_ByStatusIsStable(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Status: models.StatusDone},
		{ID: "t2", Status: models.StatusNotStarted},
		{ID: "t3", Status: models.StatusNotStarted},
		{ID: "t4", Status: models.StatusInProgress},
	}

	got := SortTasks(tasks, SortByStatus)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)
	assert.Equal(t, "t4", got[2].ID)
	assert.Equal(t, "t1", got[3].ID)
}

func TestSortTasks_ByTitle(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "Veille"},
		{ID: "t2", Title: "Documentation"},
	}

	got := SortTasks(tasks, SortByTitle)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
}

func TestSortTasks_UnknownKeyKeepsOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "B"},
		{ID: "t2", Title: "A"},
	}

	got := SortTasks(tasks, SortKey("autre"))
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t2", got[1].ID)
}
