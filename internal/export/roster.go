// Package export renders record data into downloadable documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/mchevalier/stagetrack/internal/models"
)

// WriteRoster writes the intern roster as CSV, grouped by training track,
// one row per intern with the task completion count resolved from tasks.
// A non-empty track keeps only that track.
func WriteRoster(w io.Writer, interns []models.Intern, tasks []models.Task, track string) error {
	cw := csv.NewWriter(w)
	header := []string{"Filière", "Nom complet", "Email", "Parent", "Téléphone parent", "Période", "Tâches terminées"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}

	for _, tr := range trackOrder(interns) {
		if track != "" && tr != track {
			continue
		}
		for _, in := range interns {
			if in.Track != tr {
				continue
			}
			done, total := taskCounts(tasks, in.ID)
			row := []string{
				in.Track,
				in.FullName(),
				in.Email,
				in.GuardianName,
				in.GuardianPhone,
				in.StartDate + " – " + in.EndDate,
				fmt.Sprintf("%d/%d", done, total),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// trackOrder returns the fixed track list followed by any unknown tracks
// present in the data, in order of first appearance.
func trackOrder(interns []models.Intern) []string {
	order := slices.Clone(models.Tracks)
	for _, in := range interns {
		if !slices.Contains(order, in.Track) {
			order = append(order, in.Track)
		}
	}
	return order
}

func taskCounts(tasks []models.Task, internID string) (done, total int) {
	for _, t := range tasks {
		if !slices.Contains(t.AssigneeIDs, internID) {
			continue
		}
		total++
		if t.Status == models.StatusDone {
			done++
		}
	}
	return done, total
}
