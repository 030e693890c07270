package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchevalier/stagetrack/internal/models"
)

func TestCanonicalDate(t *testing.T) {
	assert.Equal(t, "2026-03-05", CanonicalDate("2026-03-05"))
	// Time of day is dropped.
	assert.Equal(t, "2026-03-05", CanonicalDate("2026-03-05T23:59:59Z"))
	assert.Equal(t, "", CanonicalDate("pas une date"))
	assert.Equal(t, "", CanonicalDate(""))
}

func TestBucketMonth(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "A", DueDate: "2026-03-05"},
		{ID: "t2", Title: "B", DueDate: "2026-03-05T08:00:00Z"},
		{ID: "t3", Title: "C", DueDate: "2026-04-05"},
		{ID: "t4", Title: "D", DueDate: "sans échéance"},
	}

	m := BucketMonth(tasks, 2026, time.March)
	assert.Equal(t, 2026, m.Year)
	assert.Equal(t, time.March, m.Month)
	require.Len(t, m.Days, 31)

	// March 1st 2026 is a Sunday.
	assert.Equal(t, 0, m.LeadingBlanks)

	day5 := m.Days[4]
	assert.Equal(t, 5, day5.Day)
	require.Len(t, day5.Visible, 2)
	assert.Equal(t, "t1", day5.Visible[0].ID)
	assert.Equal(t, "t2", day5.Visible[1].ID)
	assert.Equal(t, 0, day5.More)

	for _, d := range m.Days {
		if d.Day != 5 {
			assert.Empty(t, d.Visible)
		}
	}
}

func TestBucketMonth_OverflowFolds(t *testing.T) {
	var tasks []models.Task
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		tasks = append(tasks, models.Task{ID: id, DueDate: "2026-03-10"})
	}

	m := BucketMonth(tasks, 2026, time.March)
	day := m.Days[9]
	require.Len(t, day.Visible, 3)
	assert.Equal(t, "t1", day.Visible[0].ID)
	assert.Equal(t, "t3", day.Visible[2].ID)
	assert.Equal(t, 2, day.More)
}

func TestBucketMonth_LeadingBlanks(t *testing.T) {
	// April 1st 2026 is a Wednesday.
	m := BucketMonth(nil, 2026, time.April)
	assert.Equal(t, 3, m.LeadingBlanks)
	assert.Len(t, m.Days, 30)
}
