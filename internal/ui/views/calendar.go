package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/derive"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

var monthNames = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

var dayNames = [...]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// CalendarView renders a month grid with tasks bucketed by due date.
type CalendarView struct {
	repos *repo.Repos

	tasks  []models.Task
	styles *styles.Styles

	width  int
	height int

	year   int
	month  time.Month
	loaded bool
}

func NewCalendarView(repos *repo.Repos) *CalendarView {
	now := time.Now()
	return &CalendarView{
		repos:  repos,
		styles: styles.NewStyles(),
		year:   now.Year(),
		month:  now.Month(),
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return v.load
}

type calendarTasksMsg struct {
	tasks []models.Task
}

func (v *CalendarView) load() tea.Msg {
	tasks, err := v.repos.Tasks.List()
	if err != nil {
		return err
	}
	return calendarTasksMsg{tasks: tasks}
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case calendarTasksMsg:
		v.tasks = msg.tasks
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "h", "left":
			v.month--
			if v.month < time.January {
				v.month = time.December
				v.year--
			}
		case "l", "right":
			v.month++
			if v.month > time.December {
				v.month = time.January
				v.year++
			}
		case "t":
			now := time.Now()
			v.year = now.Year()
			v.month = now.Month()
		}
	}
	return v, nil
}

func (v *CalendarView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Chargement...")
	}

	m := derive.BucketMonth(v.tasks, v.year, v.month)
	today := time.Now()

	header := s.Title.Render(fmt.Sprintf("%s %d", monthNames[int(v.month)-1], v.year))

	contentWidth := styles.ContentWidth(v.width)
	cellWidth := max(contentWidth/7-2, 8)

	var headerCells []string
	for _, d := range dayNames {
		headerCells = append(headerCells, s.TitleMuted.Width(cellWidth+2).Align(lipgloss.Center).Render(d))
	}

	var weeks []string
	var week []string
	for i := 0; i < m.LeadingBlanks; i++ {
		week = append(week, lipgloss.NewStyle().Width(cellWidth+2).Render(""))
	}
	for _, day := range m.Days {
		isToday := day.Day == today.Day() &&
			v.month == today.Month() && v.year == today.Year()
		week = append(week, v.renderDayCell(day, cellWidth, isToday))
		if len(week) == 7 {
			weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = nil
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}

	rows := []string{
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, headerCells...),
	}
	rows = append(rows, weeks...)
	rows = append(rows, s.Help.Render(
		s.HelpKey.Render("h/l")+" mois • "+s.HelpKey.Render("t")+" aujourd'hui",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *CalendarView) renderDayCell(day derive.Day, width int, isToday bool) string {
	s := v.styles

	lines := []string{fmt.Sprintf("%d", day.Day)}
	for _, t := range day.Visible {
		title := t.Title
		if runes := []rune(title); len(runes) > width {
			title = string(runes[:width])
		}
		lines = append(lines, s.TitleMuted.Render(title))
	}
	if day.More > 0 {
		lines = append(lines, s.Title.Render(fmt.Sprintf("+%d autres", day.More)))
	}

	cellStyle := s.CalendarCell
	if isToday {
		cellStyle = s.CalendarToday
	}
	return cellStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Capturing is always false: the calendar has no text inputs.
func (v *CalendarView) Capturing() bool { return false }
