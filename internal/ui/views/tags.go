package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/keys"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

// TagListView manages tags. Deleting a tag cascades: the id disappears from
// every intern and task that carried it.
type TagListView struct {
	repos *repo.Repos

	tags   []models.Tag
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor int
	loaded bool

	creating   bool
	newName    textinput.Model
	newColor   textinput.Model
	newOwner   models.TagOwner
	focusIdx   int // 0=name, 1=color, 2=owner, 3=save
	formStatus string

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

func NewTagListView(repos *repo.Repos) *TagListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Nom du tag"
	newName.CharLimit = 50

	newColor := textinput.New()
	newColor.Placeholder = "#rrggbb (vide = auto)"
	newColor.CharLimit = 7

	return &TagListView{
		repos:    repos,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		newName:  newName,
		newColor: newColor,
		newOwner: models.TagOwnerIntern,
	}
}

func (v *TagListView) Init() tea.Cmd {
	return v.load
}

type allTagsLoadedMsg struct {
	tags []models.Tag
}

func (v *TagListView) load() tea.Msg {
	tags, err := v.repos.Tags.List()
	if err != nil {
		return err
	}
	return allTagsLoadedMsg{tags: tags}
}

func (v *TagListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case allTagsLoadedMsg:
		v.tags = msg.tags
		v.loaded = true
		if v.cursor >= len(v.tags) {
			v.cursor = max(0, len(v.tags)-1)
		}
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.tags)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.focusIdx = 0
			v.formStatus = ""
			v.newName.Reset()
			v.newColor.Reset()
			v.newOwner = models.TagOwnerIntern
			v.newName.Focus()
			v.newColor.Blur()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Delete):
			if v.cursor < len(v.tags) {
				v.confirmingDelete = true
				v.deleteTargetID = v.tags[v.cursor].ID
				v.deleteTargetName = v.tags[v.cursor].Name
			}
		}
	}
	return v, nil
}

func (v *TagListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submit()

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx == 3 {
			return v.submit()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil

	case msg.String() == " " && v.focusIdx == 2:
		if v.newOwner == models.TagOwnerIntern {
			v.newOwner = models.TagOwnerTask
		} else {
			v.newOwner = models.TagOwnerIntern
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newName, cmd = v.newName.Update(msg)
	case 1:
		v.newColor, cmd = v.newColor.Update(msg)
	}
	return v, cmd
}

func (v *TagListView) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(v.newName.Value())
	if name == "" {
		v.formStatus = "Le nom est obligatoire"
		return v, nil
	}
	_, err := v.repos.Tags.Create(name, strings.TrimSpace(v.newColor.Value()), v.newOwner)
	if err != nil {
		v.formStatus = err.Error()
		return v, nil
	}
	v.creating = false
	return v, v.load
}

func (v *TagListView) updateFocus() {
	v.newName.Blur()
	v.newColor.Blur()
	switch v.focusIdx {
	case 0:
		v.newName.Focus()
	case 1:
		v.newColor.Focus()
	}
}

func (v *TagListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.repos.Tags.Delete(v.deleteTargetID); err == nil {
			return v, v.load
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TagListView) View() string {
	s := v.styles
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}
	if !v.loaded {
		return s.TitleMuted.Render("Chargement...")
	}

	rows := []string{s.Title.Render("Tags"), ""}
	if len(v.tags) == 0 {
		rows = append(rows, s.TitleMuted.Render("Aucun tag. Appuyez sur 'n' pour en créer un."))
	}
	for i, tag := range v.tags {
		tagColor := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		line := tagColor.Render("●") + " " + tag.Name + "  " +
			s.TitleMuted.Render(string(tag.Owner))
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(line))
		} else {
			rows = append(rows, s.ListItem.Render(line))
		}
	}
	rows = append(rows, "", s.Help.Render(
		s.HelpKey.Render("n")+" nouveau • "+s.HelpKey.Render("d")+" supprimer",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TagListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	nameStyle, colorStyle := s.Input, s.Input
	ownerStyle := s.TitleMuted
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		colorStyle = s.InputFocused
	case 2:
		ownerStyle = s.Title
	case 3:
		btnStyle = s.ButtonFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Nouveau tag"),
		"",
		"Nom:",
		nameStyle.Width(inputWidth).Render(v.newName.View()),
		"",
		"Couleur:",
		colorStyle.Width(inputWidth).Render(v.newColor.View()),
		"",
		"Type: "+ownerStyle.Render(string(v.newOwner))+" "+s.TitleMuted.Render("(espace pour changer)"),
		"",
		btnStyle.Render(" Créer "),
		renderFormStatus(s, v.formStatus),
		"",
		s.TitleMuted.Render("Tab: suivant • Ctrl+S: créer • Esc: annuler"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func renderFormStatus(s *styles.Styles, status string) string {
	if status == "" {
		return ""
	}
	return s.ErrorText.Render(status)
}

func (v *TagListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Supprimer le tag \""+v.deleteTargetName+"\" ?"),
		"",
		s.TitleMuted.Render("Il sera retiré de tous les stagiaires et tâches."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Oui "),
			"  ",
			s.Button.Render(" N - Non "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

// Capturing reports whether key input is being consumed by the creation form
// or a confirmation prompt.
func (v *TagListView) Capturing() bool {
	return v.creating || v.confirmingDelete
}
