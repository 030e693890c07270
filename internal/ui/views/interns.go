package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/derive"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/keys"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

type internItem struct {
	intern models.Intern
}

func (i internItem) Title() string { return i.intern.FullName() }
func (i internItem) Description() string {
	return i.intern.Track + " • " + i.intern.Email
}
func (i internItem) FilterValue() string { return i.intern.FullName() }

type internDelegate struct {
	styles *styles.Styles
	width  int
}

func (d internDelegate) Height() int                               { return 2 }
func (d internDelegate) Spacing() int                              { return 1 }
func (d internDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d internDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(internItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := titleStyle.Render(it.Title())
	desc := descStyle.Render(it.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// Form inputs in tab order; index internFieldCount is the save button.
const internFieldCount = 9

var internFieldLabels = [internFieldCount]string{
	"Nom", "Prénom", "Filière", "Email", "Téléphone",
	"Début (YYYY-MM-DD)", "Fin (YYYY-MM-DD)", "Parent", "Téléphone parent",
}

// InternListView lists interns with search, creation, editing and deletion.
type InternListView struct {
	repos *repo.Repos
	list  list.Model

	delegate *internDelegate
	search   textinput.Model
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int

	interns   []models.Intern
	loaded    bool
	searching bool

	editing    bool
	editID     string // empty when creating
	inputs     [internFieldCount]textinput.Model
	focusIdx   int // 0..8 inputs, 9 = save button
	formStatus string

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

func NewInternListView(repos *repo.Repos) *InternListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Rechercher..."
	search.CharLimit = 100

	var inputs [internFieldCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = internFieldLabels[i]
		in.CharLimit = 100
		inputs[i] = in
	}

	delegate := &internDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Stagiaires"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &InternListView{
		repos:    repos,
		list:     l,
		delegate: delegate,
		search:   search,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		inputs:   inputs,
	}
}

func (v *InternListView) Init() tea.Cmd {
	return v.loadInterns
}

type internsLoadedMsg struct {
	interns []models.Intern
}

func (v *InternListView) loadInterns() tea.Msg {
	interns, err := v.repos.Interns.List()
	if err != nil {
		return err
	}
	return internsLoadedMsg{interns: interns}
}

func (v *InternListView) setItems() {
	shown := derive.SearchInterns(v.interns, v.search.Value())
	items := make([]list.Item, len(shown))
	for i, in := range shown {
		items[i] = internItem{intern: in}
	}
	v.list.SetItems(items)
}

func (v *InternListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-8)
		return v, nil

	case internsLoadedMsg:
		v.interns = msg.interns
		v.loaded = true
		v.setItems()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Search):
			v.searching = true
			v.search.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.New):
			v.openForm(nil)
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(internItem); ok {
				v.openForm(&item.intern)
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(internItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.intern.ID
				v.deleteTargetName = item.intern.FullName()
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *InternListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.searching = false
		v.search.Blur()
		v.search.Reset()
		v.setItems()
		return v, nil
	case "enter":
		v.searching = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.setItems()
	return v, cmd
}

func (v *InternListView) openForm(existing *models.Intern) {
	v.editing = true
	v.editID = ""
	v.focusIdx = 0
	v.formStatus = ""
	for i := range v.inputs {
		v.inputs[i].Reset()
		v.inputs[i].Blur()
	}
	if existing != nil {
		v.editID = existing.ID
		values := [internFieldCount]string{
			existing.LastName, existing.FirstName, existing.Track,
			existing.Email, existing.Phone, existing.StartDate,
			existing.EndDate, existing.GuardianName, existing.GuardianPhone,
		}
		for i, val := range values {
			v.inputs[i].SetValue(val)
		}
	}
	v.inputs[0].Focus()
}

func (v *InternListView) formValues() [internFieldCount]string {
	var out [internFieldCount]string
	for i := range v.inputs {
		out[i] = strings.TrimSpace(v.inputs[i].Value())
	}
	return out
}

func (v *InternListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitForm()

	case msg.String() == "ctrl+d":
		// Stash the partial form as a draft instead of a record.
		return v.saveAsDraft()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + internFieldCount) % (internFieldCount + 1)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % (internFieldCount + 1)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < internFieldCount {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v.submitForm()
	}

	var cmd tea.Cmd
	if v.focusIdx < internFieldCount {
		v.inputs[v.focusIdx], cmd = v.inputs[v.focusIdx].Update(msg)
	}
	return v, cmd
}

func (v *InternListView) submitForm() (tea.Model, tea.Cmd) {
	vals := v.formValues()
	for i, val := range vals {
		if i == 4 { // phone is optional
			continue
		}
		if val == "" {
			v.formStatus = "Champs obligatoires manquants. Ctrl+D pour garder en brouillon"
			return v, nil
		}
	}

	if v.editID != "" {
		patch := repo.InternPatch{
			LastName: &vals[0], FirstName: &vals[1], Track: &vals[2],
			Email: &vals[3], Phone: &vals[4], StartDate: &vals[5],
			EndDate: &vals[6], GuardianName: &vals[7], GuardianPhone: &vals[8],
		}
		if err := v.repos.Interns.Update(v.editID, patch); err != nil {
			v.formStatus = err.Error()
			return v, nil
		}
	} else {
		_, err := v.repos.Interns.Create(models.Intern{
			LastName: vals[0], FirstName: vals[1], Track: vals[2],
			Email: vals[3], Phone: vals[4], StartDate: vals[5],
			EndDate: vals[6], GuardianName: vals[7], GuardianPhone: vals[8],
		})
		if err != nil {
			v.formStatus = err.Error()
			return v, nil
		}
	}

	v.editing = false
	return v, v.loadInterns
}

func (v *InternListView) saveAsDraft() (tea.Model, tea.Cmd) {
	vals := v.formValues()
	patch := repo.InternDraftPatch{
		LastName: &vals[0], FirstName: &vals[1], Track: &vals[2],
		Email: &vals[3], Phone: &vals[4], StartDate: &vals[5],
		EndDate: &vals[6], GuardianName: &vals[7], GuardianPhone: &vals[8],
	}
	if _, err := v.repos.Drafts.SaveInternDraft(patch, ""); err != nil {
		v.formStatus = err.Error()
		return v, nil
	}
	v.editing = false
	return v, v.loadInterns
}

func (v *InternListView) updateFocus() {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	if v.focusIdx < internFieldCount {
		v.inputs[v.focusIdx].Focus()
	}
}

func (v *InternListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.repos.Interns.Delete(v.deleteTargetID); err == nil {
			return v, v.loadInterns
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *InternListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Chargement...")
	}

	var parts []string
	if v.searching || v.search.Value() != "" {
		parts = append(parts, v.styles.FilterBar.Render(v.search.View()))
	}
	if len(v.list.Items()) == 0 {
		parts = append(parts, v.renderEmpty())
	} else {
		parts = append(parts, v.list.View())
	}
	parts = append(parts, v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *InternListView) renderEmpty() string {
	s := v.styles
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("Aucun stagiaire"),
		"",
		s.TitleMuted.Render("Appuyez sur 'n' pour en créer un"),
	)
}

func (v *InternListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "Nouveau stagiaire"
	if v.editID != "" {
		formTitle = "Modifier le stagiaire"
	}

	rows := []string{s.Title.Render(formTitle), ""}
	for i := range v.inputs {
		style := s.Input
		if v.focusIdx == i {
			style = s.InputFocused
		}
		rows = append(rows,
			internFieldLabels[i]+":",
			style.Width(inputWidth).Render(v.inputs[i].View()),
		)
	}

	btnStyle := s.Button
	if v.focusIdx == internFieldCount {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows, "", btnStyle.Render(" Enregistrer "))
	if v.formStatus != "" {
		rows = append(rows, "", s.ErrorText.Render(v.formStatus))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: champ suivant • Ctrl+S: enregistrer • Ctrl+D: brouillon • Esc: annuler"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *InternListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s nouveau • %s modifier • %s supprimer • %s rechercher • %s quitter",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *InternListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Supprimer ce stagiaire ?"),
		"",
		s.TitleMuted.Render(v.deleteTargetName),
		s.TitleMuted.Render("Ses tâches resteront assignées à son identifiant."),
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

// Capturing reports whether key input is being consumed by a form, the
// search bar or a confirmation prompt.
func (v *InternListView) Capturing() bool {
	return v.searching || v.editing || v.confirmingDelete
}
