package derive

import (
	"sort"
	"time"

	"github.com/mchevalier/stagetrack/internal/models"
)

// SortKey selects a task ordering.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByStatus SortKey = "status"
	SortByTitle  SortKey = "title"
)

// SortTasks returns a sorted copy of tasks. Sorting is stable: tasks with
// equal keys keep their original relative order. An unknown key returns the
// copy unsorted.
func SortTasks(tasks []models.Task, key SortKey) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	switch key {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return parseDate(out[i].DueDate).Before(parseDate(out[j].DueDate))
		})
	case SortByStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Status.Rank() < out[j].Status.Rank()
		})
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	}
	return out
}

// parseDate reads the date formats that appear in persisted documents:
// RFC 3339 timestamps and bare YYYY-MM-DD dates. Unparseable input sorts
// first (zero time).
func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
