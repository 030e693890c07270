package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/keys"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

// DraftListView lists intern and task drafts with their completeness and
// converts complete ones into finalized records.
type DraftListView struct {
	repos *repo.Repos

	internDrafts []models.InternDraft
	taskDrafts   []models.TaskDraft
	styles       *styles.Styles
	keys         keys.KeyMap

	width  int
	height int

	cursor int // indexes intern drafts first, then task drafts
	status string
	loaded bool
}

func NewDraftListView(repos *repo.Repos) *DraftListView {
	return &DraftListView{
		repos:  repos,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *DraftListView) Init() tea.Cmd {
	return v.load
}

type draftsLoadedMsg struct {
	internDrafts []models.InternDraft
	taskDrafts   []models.TaskDraft
}

func (v *DraftListView) load() tea.Msg {
	internDrafts, err := v.repos.Drafts.ListInternDrafts()
	if err != nil {
		return err
	}
	taskDrafts, err := v.repos.Drafts.ListTaskDrafts()
	if err != nil {
		return err
	}
	return draftsLoadedMsg{internDrafts: internDrafts, taskDrafts: taskDrafts}
}

func (v *DraftListView) count() int {
	return len(v.internDrafts) + len(v.taskDrafts)
}

func (v *DraftListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case draftsLoadedMsg:
		v.internDrafts = msg.internDrafts
		v.taskDrafts = msg.taskDrafts
		v.loaded = true
		if v.cursor >= v.count() {
			v.cursor = max(0, v.count()-1)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < v.count()-1 {
				v.cursor++
			}
		case "enter":
			return v.convertSelected()
		case "d":
			return v.deleteSelected()
		}
	}
	return v, nil
}

func (v *DraftListView) convertSelected() (tea.Model, tea.Cmd) {
	if v.cursor < len(v.internDrafts) {
		d := v.internDrafts[v.cursor]
		intern, err := v.repos.Drafts.ConvertInternDraft(d.ID)
		if err != nil {
			v.status = err.Error()
			return v, v.load
		}
		if intern == nil {
			v.status = "Brouillon incomplet : remplissez tous les champs obligatoires."
			return v, nil
		}
		v.status = "Brouillon converti : " + intern.FullName()
		return v, v.load
	}

	i := v.cursor - len(v.internDrafts)
	if i < len(v.taskDrafts) {
		d := v.taskDrafts[i]
		task, err := v.repos.Drafts.ConvertTaskDraft(d.ID)
		if err != nil {
			v.status = err.Error()
			return v, v.load
		}
		if task == nil {
			v.status = "Brouillon incomplet : titre, stagiaires et échéance requis."
			return v, nil
		}
		v.status = "Brouillon converti : " + task.Title
		return v, v.load
	}
	return v, nil
}

func (v *DraftListView) deleteSelected() (tea.Model, tea.Cmd) {
	if v.cursor < len(v.internDrafts) {
		if err := v.repos.Drafts.DeleteInternDraft(v.internDrafts[v.cursor].ID); err == nil {
			return v, v.load
		}
		return v, nil
	}
	i := v.cursor - len(v.internDrafts)
	if i < len(v.taskDrafts) {
		if err := v.repos.Drafts.DeleteTaskDraft(v.taskDrafts[i].ID); err == nil {
			return v, v.load
		}
	}
	return v, nil
}

func (v *DraftListView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Chargement...")
	}

	var rows []string
	rows = append(rows, s.Title.Render("Brouillons"), "")

	if v.count() == 0 {
		rows = append(rows, s.TitleMuted.Render("Aucun brouillon. Ctrl+D dans un formulaire en crée un."))
	}

	if len(v.internDrafts) > 0 {
		rows = append(rows, s.TitleMuted.Render("Stagiaires"))
		for i, d := range v.internDrafts {
			rows = append(rows, v.renderRow(
				draftLabel(d.FirstName, d.LastName),
				repo.InternDraftCompleteness(d),
				d.ModifiedAt,
				i == v.cursor,
			))
		}
		rows = append(rows, "")
	}
	if len(v.taskDrafts) > 0 {
		rows = append(rows, s.TitleMuted.Render("Tâches"))
		for i, d := range v.taskDrafts {
			label := d.Title
			if label == "" {
				label = "(sans titre)"
			}
			rows = append(rows, v.renderRow(
				label,
				repo.TaskDraftCompleteness(d),
				d.ModifiedAt,
				len(v.internDrafts)+i == v.cursor,
			))
		}
	}

	if v.status != "" {
		rows = append(rows, "", s.TitleMuted.Render(v.status))
	}
	rows = append(rows, "", s.Help.Render(
		s.HelpKey.Render("↵")+" convertir • "+s.HelpKey.Render("d")+" supprimer",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func draftLabel(first, last string) string {
	if first == "" && last == "" {
		return "(sans nom)"
	}
	return first + " " + last
}

func (v *DraftListView) renderRow(label string, completeness int, modified string, selected bool) string {
	s := v.styles

	pct := fmt.Sprintf("%3d%%", completeness)
	if completeness == 100 {
		pct = s.StatusDone.Render(pct)
	} else {
		pct = s.StatusInProgress.Render(pct)
	}

	line := fmt.Sprintf("%s  %s  %s", pct, label, s.TitleMuted.Render("modifié "+modified))
	if selected {
		return s.ListSelected.Render(line)
	}
	return s.ListItem.Render(line)
}

// Capturing is always false: the draft list has no text inputs.
func (v *DraftListView) Capturing() bool { return false }
