package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mchevalier/stagetrack/internal/prefs"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/keys"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
	"github.com/mchevalier/stagetrack/internal/ui/views"
)

// Currently active tab
type Tab int

const (
	TabInterns Tab = iota
	TabTasks
	TabDrafts
	TabTags
	TabAnalytics
	TabCalendar

	tabCount
)

var tabLabels = [tabCount]string{
	"Stagiaires",
	"Tâches",
	"Brouillons",
	"Tags",
	"Analytique",
	"Calendrier",
}

// view is what every tab model provides on top of tea.Model. Capturing
// reports that the view owns the keyboard (a form or search bar is open), so
// global bindings must not fire.
type view interface {
	tea.Model
	Capturing() bool
}

type App struct {
	repos      *repo.Repos
	prefs      *prefs.Manager
	keys       keys.KeyMap
	styles     *styles.Styles
	currentTab Tab
	tabs       [tabCount]view
	width      int
	height     int
}

// Creates a new application. The stored theme is applied before any view
// builds its styles.
func NewApp(repos *repo.Repos, manager *prefs.Manager) *App {
	p := manager.Load()
	styles.SetTheme(p.Theme)

	a := &App{
		repos:  repos,
		prefs:  manager,
		keys:   keys.DefaultKeyMap(),
		styles: styles.NewStyles(),
	}
	a.buildTabs()

	if p.DefaultView == prefs.ViewCalendar {
		a.currentTab = TabCalendar
	}
	return a
}

func (a *App) buildTabs() {
	a.tabs = [tabCount]view{
		TabInterns:   views.NewInternListView(a.repos),
		TabTasks:     views.NewTaskListView(a.repos),
		TabDrafts:    views.NewDraftListView(a.repos),
		TabTags:      views.NewTagListView(a.repos),
		TabAnalytics: views.NewAnalyticsView(a.repos),
		TabCalendar:  views.NewCalendarView(a.repos),
	}
}

func (a *App) Init() tea.Cmd {
	return a.tabs[a.currentTab].Init()
}

// switchTab activates the given tab and reloads it, so edits made on another
// tab show up immediately.
func (a *App) switchTab(tab Tab) tea.Cmd {
	a.currentTab = tab
	return tea.Batch(
		a.tabs[tab].Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) toggleTheme() tea.Cmd {
	theme, err := a.prefs.ToggleTheme()
	if err == nil {
		styles.SetTheme(theme)
	}
	// Views cache their styles, so rebuild them all under the new theme.
	a.styles = styles.NewStyles()
	a.buildTabs()
	return a.switchTab(a.currentTab)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Tab bar takes two lines above the active view.
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		var cmds []tea.Cmd
		for i := range a.tabs {
			_, cmd := a.tabs[i].Update(inner)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.tabs[a.currentTab].Capturing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.NextTab):
				return a, a.switchTab((a.currentTab + 1) % tabCount)
			case key.Matches(msg, a.keys.PrevTab):
				return a, a.switchTab((a.currentTab + tabCount - 1) % tabCount)
			case msg.String() == "ctrl+t":
				return a, a.toggleTheme()
			}
		}
	}

	_, cmd := a.tabs[a.currentTab].Update(msg)
	return a, cmd
}

func (a *App) View() string {
	bar := a.renderTabBar()
	content := a.tabs[a.currentTab].View()
	return lipgloss.JoinVertical(lipgloss.Left, bar, content)
}

func (a *App) renderTabBar() string {
	parts := make([]string, 0, tabCount)
	for i, label := range tabLabels {
		if Tab(i) == a.currentTab {
			parts = append(parts, a.styles.TabActive.Render(label))
		} else {
			parts = append(parts, a.styles.Tab.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return styles.CenterView(row, a.width, 1)
}
