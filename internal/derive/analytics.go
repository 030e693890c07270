package derive

import (
	"sort"

	"github.com/mchevalier/stagetrack/internal/models"
)

// StatusCounts is a per-status task tally.
type StatusCounts struct {
	NotStarted int
	InProgress int
	Done       int
}

func (c StatusCounts) Total() int {
	return c.NotStarted + c.InProgress + c.Done
}

func (c *StatusCounts) add(s models.Status) {
	switch s {
	case models.StatusNotStarted:
		c.NotStarted++
	case models.StatusInProgress:
		c.InProgress++
	case models.StatusDone:
		c.Done++
	}
}

// TrackCounts is the status tally of one training track.
type TrackCounts struct {
	Track  string
	Counts StatusCounts
}

// InternCounts is the status tally of one intern, labeled "First L.".
type InternCounts struct {
	Label  string
	Counts StatusCounts
}

// TasksByTrack tallies tasks per training track. A task counts once per
// assignee whose intern record resolves; unresolvable assignee ids are
// skipped. Tracks appear in order of first appearance; tracks with no tasks
// are absent.
func TasksByTrack(interns []models.Intern, tasks []models.Task) []TrackCounts {
	byID := make(map[string]models.Intern, len(interns))
	for _, in := range interns {
		byID[in.ID] = in
	}

	index := make(map[string]int)
	var out []TrackCounts
	for _, t := range tasks {
		for _, assignee := range t.AssigneeIDs {
			in, ok := byID[assignee]
			if !ok {
				continue
			}
			i, ok := index[in.Track]
			if !ok {
				i = len(out)
				index[in.Track] = i
				out = append(out, TrackCounts{Track: in.Track})
			}
			out[i].Counts.add(t.Status)
		}
	}
	return out
}

const internChartLimit = 10

// TasksByIntern tallies tasks per intern and returns the top 10 by total
// count, descending, ties keeping input order. Interns with no tasks are
// excluded.
func TasksByIntern(interns []models.Intern, tasks []models.Task) []InternCounts {
	var out []InternCounts
	for _, in := range interns {
		var c StatusCounts
		for _, t := range tasks {
			for _, assignee := range t.AssigneeIDs {
				if assignee == in.ID {
					c.add(t.Status)
					break
				}
			}
		}
		if c.Total() == 0 {
			continue
		}
		out = append(out, InternCounts{Label: internLabel(in), Counts: c})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Counts.Total() > out[j].Counts.Total()
	})
	if len(out) > internChartLimit {
		out = out[:internChartLimit]
	}
	return out
}

func internLabel(in models.Intern) string {
	label := in.FirstName
	if in.LastName != "" {
		label += " " + string([]rune(in.LastName)[:1]) + "."
	}
	return label
}

// GlobalStatusCounts is the single all-tasks status tally.
func GlobalStatusCounts(tasks []models.Task) StatusCounts {
	var c StatusCounts
	for _, t := range tasks {
		c.add(t.Status)
	}
	return c
}

// Summary is the headline figure set shown above the charts.
type Summary struct {
	TotalTasks         int
	Done               int
	InProgress         int
	GroupTasks         int
	CompletionRate     int // percent, 0 when there are no tasks
	MeanTasksPerIntern float64
}

// Summarize computes the headline figures over the full collections.
func Summarize(interns []models.Intern, tasks []models.Task) Summary {
	s := Summary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusDone:
			s.Done++
		case models.StatusInProgress:
			s.InProgress++
		}
		if t.IsGroup {
			s.GroupTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionRate = (s.Done*100 + s.TotalTasks/2) / s.TotalTasks
	}
	if len(interns) > 0 {
		s.MeanTasksPerIntern = float64(s.TotalTasks) / float64(len(interns))
	}
	return s
}
