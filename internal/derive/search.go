// Package derive holds the pure projections over the record collections:
// search, sorting, tag filtering, analytics aggregation and calendar
// bucketing. Nothing here reads or writes the store.
package derive

import (
	"strings"

	"github.com/mchevalier/stagetrack/internal/models"
)

// SearchInterns returns the interns matching query in last name, first name,
// email, track or guardian name (case-insensitive substring). A blank query
// returns the input unchanged.
func SearchInterns(interns []models.Intern, query string) []models.Intern {
	if strings.TrimSpace(query) == "" {
		return interns
	}
	q := strings.ToLower(query)
	var matched []models.Intern
	for _, in := range interns {
		if containsFold(q, in.LastName, in.FirstName, in.Email, in.Track, in.GuardianName) {
			matched = append(matched, in)
		}
	}
	return matched
}

// SearchTasks returns the tasks matching query in title or description
// (case-insensitive substring). A blank query returns the input unchanged.
func SearchTasks(tasks []models.Task, query string) []models.Task {
	if strings.TrimSpace(query) == "" {
		return tasks
	}
	q := strings.ToLower(query)
	var matched []models.Task
	for _, t := range tasks {
		if containsFold(q, t.Title, t.Description) {
			matched = append(matched, t)
		}
	}
	return matched
}

func containsFold(lowerQuery string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}
