package derive

import (
	"fmt"
	"time"

	"github.com/mchevalier/stagetrack/internal/models"
)

// maxVisiblePerDay caps how many tasks a calendar cell shows before folding
// the rest into an overflow count.
const maxVisiblePerDay = 3

// Day is one calendar cell: the visible tasks (input order, capped) plus the
// count of hidden ones.
type Day struct {
	Day     int
	Visible []models.Task
	More    int
}

// Month is a bucketed calendar month. LeadingBlanks is the number of empty
// cells before day 1 in a Sunday-first week grid.
type Month struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []Day
}

// BucketMonth buckets tasks into the days of the given month by the calendar
// date of their due date, ignoring time of day.
func BucketMonth(tasks []models.Task, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	m := Month{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		var due []models.Task
		for _, t := range tasks {
			if CanonicalDate(t.DueDate) == cell {
				due = append(due, t)
			}
		}
		d := Day{Day: day, Visible: due}
		if len(due) > maxVisiblePerDay {
			d.Visible = due[:maxVisiblePerDay]
			d.More = len(due) - maxVisiblePerDay
		}
		m.Days = append(m.Days, d)
	}
	return m
}

// CanonicalDate reduces a stored date string to YYYY-MM-DD. Unparseable
// input canonicalizes to "", which matches no calendar cell.
func CanonicalDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	return ""
}
