package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/derive"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

// analyticsChart selects which projection is displayed.
type analyticsChart int

const (
	chartByTrack analyticsChart = iota
	chartByIntern
	chartGlobal
)

// AnalyticsView renders the aggregate projections as horizontal bar rows.
type AnalyticsView struct {
	repos *repo.Repos

	interns []models.Intern
	tasks   []models.Task
	styles  *styles.Styles

	width  int
	height int

	chart  analyticsChart
	loaded bool
}

func NewAnalyticsView(repos *repo.Repos) *AnalyticsView {
	return &AnalyticsView{
		repos:  repos,
		styles: styles.NewStyles(),
	}
}

func (v *AnalyticsView) Init() tea.Cmd {
	return v.load
}

type analyticsDataMsg struct {
	interns []models.Intern
	tasks   []models.Task
}

func (v *AnalyticsView) load() tea.Msg {
	interns, err := v.repos.Interns.List()
	if err != nil {
		return err
	}
	tasks, err := v.repos.Tasks.List()
	if err != nil {
		return err
	}
	return analyticsDataMsg{interns: interns, tasks: tasks}
}

func (v *AnalyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case analyticsDataMsg:
		v.interns = msg.interns
		v.tasks = msg.tasks
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "c" {
			v.chart = (v.chart + 1) % 3
		}
	}
	return v, nil
}

func (v *AnalyticsView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Chargement...")
	}

	summary := derive.Summarize(v.interns, v.tasks)

	rows := []string{
		s.Title.Render("Analytique"),
		"",
		fmt.Sprintf("%s %d%%   %s %d/%d   %s %d   %s %.1f",
			s.TitleMuted.Render("complétion:"), summary.CompletionRate,
			s.TitleMuted.Render("terminées:"), summary.Done, summary.TotalTasks,
			s.TitleMuted.Render("groupe:"), summary.GroupTasks,
			s.TitleMuted.Render("moy./stagiaire:"), summary.MeanTasksPerIntern,
		),
		"",
		s.TitleMuted.Render(v.chartTitle() + "  (c pour changer)"),
		"",
	}

	switch v.chart {
	case chartByTrack:
		for _, tc := range derive.TasksByTrack(v.interns, v.tasks) {
			rows = append(rows, v.renderBar(tc.Track, tc.Counts))
		}
	case chartByIntern:
		for _, ic := range derive.TasksByIntern(v.interns, v.tasks) {
			rows = append(rows, v.renderBar(ic.Label, ic.Counts))
		}
	case chartGlobal:
		rows = append(rows, v.renderBar("Vue globale", derive.GlobalStatusCounts(v.tasks)))
	}

	if len(v.tasks) == 0 {
		rows = append(rows, s.TitleMuted.Render("Aucune tâche à agréger."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *AnalyticsView) chartTitle() string {
	switch v.chart {
	case chartByTrack:
		return "Tâches par filière"
	case chartByIntern:
		return "Tâches par stagiaire (top 10)"
	default:
		return "Statuts globaux"
	}
}

// renderBar draws one labeled row: done / in-progress / not-started segments.
func (v *AnalyticsView) renderBar(label string, c derive.StatusCounts) string {
	s := v.styles
	bar := s.StatusDone.Render(strings.Repeat("█", c.Done)) +
		s.StatusInProgress.Render(strings.Repeat("█", c.InProgress)) +
		s.StatusNotStarted.Render(strings.Repeat("█", c.NotStarted))
	return s.BarLabel.Render(label) + " " + bar + " " +
		s.TitleMuted.Render(fmt.Sprintf("%d", c.Total()))
}

// Capturing is always false: the analytics view has no text inputs.
func (v *AnalyticsView) Capturing() bool { return false }
