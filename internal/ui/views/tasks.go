package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mchevalier/stagetrack/internal/derive"
	"github.com/mchevalier/stagetrack/internal/models"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/ui/keys"
	"github.com/mchevalier/stagetrack/internal/ui/styles"
)

// TaskListView shows all tasks with search, sort, status cycling, tag
// filtering and a creation/edit form with an assignee picker.
type TaskListView struct {
	repos *repo.Repos

	tasks   []models.Task
	interns []models.Intern
	tags    []models.Tag
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	// UI state
	cursor      int
	scrollY     int
	searchInput textinput.Model
	searching   bool
	sortKey     derive.SortKey
	filterTags  []string // selected tag ids, empty = all

	// Tag filter dropdown
	tagFilterOpen   bool
	tagFilterCursor int

	// Task creation/editing
	editing       bool
	editID        string // empty when creating
	editTitle     textinput.Model
	editDesc      textarea.Model
	editDue       textinput.Model
	editFocusIdx  int // 0=title, 1=desc, 2=due, 3=assignees, 4=tags, 5=save
	editAssignees []string
	editCursor    int
	editTags      []string
	editTagCursor int
	formStatus    string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string

	loaded bool
}

func NewTaskListView(repos *repo.Repos) *TaskListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Rechercher..."
	search.CharLimit = 100

	editTitle := textinput.New()
	editTitle.Placeholder = "Titre"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD"
	editDue.CharLimit = 10

	return &TaskListView{
		repos:       repos,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
		sortKey:     derive.SortByDate,
		editTitle:   editTitle,
		editDesc:    editDesc,
		editDue:     editDue,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return v.load
}

type taskDataMsg struct {
	tasks   []models.Task
	interns []models.Intern
	tags    []models.Tag
}

func (v *TaskListView) load() tea.Msg {
	tasks, err := v.repos.Tasks.List()
	if err != nil {
		return err
	}
	interns, err := v.repos.Interns.List()
	if err != nil {
		return err
	}
	tags, err := v.repos.Tags.ListByOwner(models.TagOwnerTask)
	if err != nil {
		return err
	}
	return taskDataMsg{tasks: tasks, interns: interns, tags: tags}
}

// visibleTasks applies search, tag filter and sort, in that order.
func (v *TaskListView) visibleTasks() []models.Task {
	shown := derive.SearchTasks(v.tasks, v.searchInput.Value())
	shown = derive.FilterByTags(shown, v.filterTags)
	return derive.SortTasks(shown, v.sortKey)
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case taskDataMsg:
		v.tasks = msg.tasks
		v.interns = msg.interns
		v.tags = msg.tags
		v.loaded = true
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
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
		if v.tagFilterOpen {
			return v.updateTagFilter(msg)
		}
		return v.updateList(msg)
	}
	return v, nil
}

func (v *TaskListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	shown := v.visibleTasks()

	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			if v.cursor < v.scrollY {
				v.scrollY = v.cursor
			}
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(shown)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink
	case key.Matches(msg, v.keys.New):
		v.openForm(nil)
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Edit):
		if v.cursor < len(shown) {
			t := shown[v.cursor]
			v.openForm(&t)
			return v, textinput.Blink
		}
	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(shown) {
			v.confirmingDelete = true
			v.deleteTargetID = shown[v.cursor].ID
		}
	case msg.String() == "s":
		v.sortKey = nextSortKey(v.sortKey)
	case msg.String() == "f":
		v.tagFilterOpen = true
		v.tagFilterCursor = 0
	case msg.String() == " ":
		// Cycle the selected task's status. Any status can follow any
		// other; this is a manual override, not a workflow gate.
		if v.cursor < len(shown) {
			next := nextStatus(shown[v.cursor].Status)
			if err := v.repos.Tasks.Update(shown[v.cursor].ID, repo.TaskPatch{Status: &next}); err == nil {
				return v, v.load
			}
		}
	}
	return v, nil
}

func nextSortKey(k derive.SortKey) derive.SortKey {
	switch k {
	case derive.SortByDate:
		return derive.SortByStatus
	case derive.SortByStatus:
		return derive.SortByTitle
	default:
		return derive.SortByDate
	}
}

func nextStatus(s models.Status) models.Status {
	switch s {
	case models.StatusNotStarted:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusDone
	default:
		return models.StatusNotStarted
	}
}

func (v *TaskListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.searching = false
		v.searchInput.Blur()
		v.searchInput.Reset()
		return v, nil
	case "enter":
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.cursor = 0
	return v, cmd
}

func (v *TaskListView) updateTagFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		v.tagFilterOpen = false
	case "up", "k":
		if v.tagFilterCursor > 0 {
			v.tagFilterCursor--
		}
	case "down", "j":
		if v.tagFilterCursor < len(v.tags)-1 {
			v.tagFilterCursor++
		}
	case " ", "enter":
		if v.tagFilterCursor < len(v.tags) {
			id := v.tags[v.tagFilterCursor].ID
			if slices.Contains(v.filterTags, id) {
				v.filterTags = slices.DeleteFunc(v.filterTags, func(s string) bool { return s == id })
			} else {
				v.filterTags = append(v.filterTags, id)
			}
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *TaskListView) openForm(existing *models.Task) {
	v.editing = true
	v.editID = ""
	v.editFocusIdx = 0
	v.editCursor = 0
	v.editTagCursor = 0
	v.formStatus = ""
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editAssignees = nil
	v.editTags = nil
	if existing != nil {
		v.editID = existing.ID
		v.editTitle.SetValue(existing.Title)
		v.editDesc.SetValue(existing.Description)
		v.editDue.SetValue(derive.CanonicalDate(existing.DueDate))
		v.editAssignees = slices.Clone(existing.AssigneeIDs)
		v.editTags = slices.Clone(existing.TagIDs)
	}
	v.editTitle.Focus()
	v.editDesc.Blur()
	v.editDue.Blur()
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitForm()

	case msg.String() == "ctrl+d":
		return v.saveAsDraft()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 6
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 5) % 6
		v.updateEditFocus()
		return v, nil
	}

	// Assignee and tag pickers take arrows and space while focused.
	switch v.editFocusIdx {
	case 3:
		return v.updatePicker(msg, &v.editCursor, len(v.interns), func(i int) {
			toggle(&v.editAssignees, v.interns[i].ID)
		})
	case 4:
		return v.updatePicker(msg, &v.editTagCursor, len(v.tags), func(i int) {
			toggle(&v.editTags, v.tags[i].ID)
		})
	case 5:
		if key.Matches(msg, v.keys.Enter) {
			return v.submitForm()
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 2:
		v.editDue, cmd = v.editDue.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) updatePicker(msg tea.KeyMsg, cursor *int, n int, onToggle func(int)) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
	case "down", "j":
		if *cursor < n-1 {
			*cursor++
		}
	case " ", "enter":
		if *cursor < n {
			onToggle(*cursor)
		}
	}
	return v, nil
}

func toggle(ids *[]string, id string) {
	if slices.Contains(*ids, id) {
		*ids = slices.DeleteFunc(*ids, func(s string) bool { return s == id })
		return
	}
	*ids = append(*ids, id)
}

func (v *TaskListView) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(v.editTitle.Value())
	due := strings.TrimSpace(v.editDue.Value())
	if title == "" || due == "" || len(v.editAssignees) == 0 {
		v.formStatus = "Titre, échéance et au moins un stagiaire requis. Ctrl+D pour garder en brouillon"
		return v, nil
	}

	desc := v.editDesc.Value()
	if v.editID != "" {
		patch := repo.TaskPatch{
			Title:       &title,
			Description: &desc,
			AssigneeIDs: &v.editAssignees,
			DueDate:     &due,
			TagIDs:      &v.editTags,
		}
		if err := v.repos.Tasks.Update(v.editID, patch); err != nil {
			v.formStatus = err.Error()
			return v, nil
		}
	} else {
		_, err := v.repos.Tasks.Create(models.Task{
			Title:       title,
			Description: desc,
			AssigneeIDs: v.editAssignees,
			Status:      models.StatusNotStarted,
			DueDate:     due,
			TagIDs:      v.editTags,
		})
		if err != nil {
			v.formStatus = err.Error()
			return v, nil
		}
	}

	v.editing = false
	return v, v.load
}

func (v *TaskListView) saveAsDraft() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(v.editTitle.Value())
	desc := v.editDesc.Value()
	due := strings.TrimSpace(v.editDue.Value())
	patch := repo.TaskDraftPatch{
		Title:       &title,
		Description: &desc,
		AssigneeIDs: &v.editAssignees,
		DueDate:     &due,
	}
	if _, err := v.repos.Drafts.SaveTaskDraft(patch, ""); err != nil {
		v.formStatus = err.Error()
		return v, nil
	}
	v.editing = false
	return v, v.load
}

func (v *TaskListView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()
	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	case 2:
		v.editDue.Focus()
	}
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.repos.Tasks.Delete(v.deleteTargetID); err == nil {
			return v, v.load
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderEditForm()
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Chargement...")
	}

	var parts []string
	parts = append(parts, v.styles.Title.Render("Tâches")+"  "+
		v.styles.TitleMuted.Render(fmt.Sprintf("tri: %s", v.sortKey)))
	if v.searching || v.searchInput.Value() != "" {
		parts = append(parts, v.styles.FilterBar.Render(v.searchInput.View()))
	}
	if v.tagFilterOpen {
		parts = append(parts, v.renderTagFilter())
	}
	parts = append(parts, v.renderTaskList(), v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) renderTagFilter() string {
	s := v.styles
	if len(v.tags) == 0 {
		return s.FilterBar.Render(s.TitleMuted.Render("Aucun tag"))
	}
	var items []string
	for i, tag := range v.tags {
		checkbox := "[ ]"
		if slices.Contains(v.filterTags, tag.ID) {
			checkbox = "[x]"
		}
		tagColor := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		line := checkbox + " " + tagColor.Render("●") + " " + tag.Name
		if i == v.tagFilterCursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}
	return s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	shown := v.visibleTasks()

	if len(shown) == 0 {
		return s.TitleMuted.Render("Aucune tâche. Appuyez sur 'n' pour en créer une.")
	}

	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := max(availableHeight/3, 1)

	if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(shown))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(shown[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) statusBadge(status models.Status) string {
	switch status {
	case models.StatusDone:
		return v.styles.StatusDone.Render("● terminé")
	case models.StatusInProgress:
		return v.styles.StatusInProgress.Render("◐ en cours")
	default:
		return v.styles.StatusNotStarted.Render("○ non commencé")
	}
}

func (v *TaskListView) assigneeNames(t models.Task) string {
	var names []string
	for _, id := range t.AssigneeIDs {
		found := false
		for _, in := range v.interns {
			if in.ID == id {
				names = append(names, in.FullName())
				found = true
				break
			}
		}
		if !found {
			// Deleted intern; the task keeps the id.
			names = append(names, "?")
		}
	}
	return strings.Join(names, ", ")
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	titleLine := task.Title
	if task.IsGroup {
		titleLine += "  " + s.TitleMuted.Render("[groupe]")
	}

	detailLine := v.statusBadge(task.Status) + "  " +
		s.TitleMuted.Render("échéance "+derive.CanonicalDate(task.DueDate)) + "  " +
		s.TitleMuted.Render(v.assigneeNames(task))

	var titleStyle, detailStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		detailStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		detailStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		detailStyle.Render(detailLine),
	) + "\n"
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "Nouvelle tâche"
	if v.editID != "" {
		formTitle = "Modifier la tâche"
	}

	titleStyle, descStyle, dueStyle := s.Input, s.Input, s.Input
	pickerStyle, tagStyle := s.Input, s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		dueStyle = s.InputFocused
	case 3:
		pickerStyle = s.InputFocused
	case 4:
		tagStyle = s.InputFocused
	case 5:
		btnStyle = s.ButtonFocused
	}

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Titre:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Échéance:",
		dueStyle.Width(14).Render(v.editDue.View()),
		"",
		"Stagiaires:",
		v.renderAssigneePicker(pickerStyle, inputWidth),
		"",
		"Tags:",
		v.renderTagPicker(tagStyle, inputWidth),
		"",
		btnStyle.Render(" Enregistrer "),
	}
	if v.formStatus != "" {
		rows = append(rows, "", s.ErrorText.Render(v.formStatus))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: suivant • Espace: cocher • Ctrl+S: enregistrer • Ctrl+D: brouillon • Esc: annuler"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderAssigneePicker(containerStyle lipgloss.Style, width int) string {
	s := v.styles
	if len(v.interns) == 0 {
		return containerStyle.Width(width).Render(s.TitleMuted.Render("Aucun stagiaire"))
	}
	var items []string
	for i, in := range v.interns {
		checkbox := "[ ]"
		if slices.Contains(v.editAssignees, in.ID) {
			checkbox = "[x]"
		}
		line := checkbox + " " + in.FullName()
		if v.editFocusIdx == 3 && i == v.editCursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}
	return containerStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderTagPicker(containerStyle lipgloss.Style, width int) string {
	s := v.styles
	if len(v.tags) == 0 {
		return containerStyle.Width(width).Render(s.TitleMuted.Render("Aucun tag"))
	}
	var items []string
	for i, tag := range v.tags {
		checkbox := "[ ]"
		if slices.Contains(v.editTags, tag.ID) {
			checkbox = "[x]"
		}
		tagColor := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		line := checkbox + " " + tagColor.Render("●") + " " + tag.Name
		if v.editFocusIdx == 4 && i == v.editTagCursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}
	return containerStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (v *TaskListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s nouveau • %s modifier • %s supprimer • %s statut • %s tri • %s tags • %s rechercher",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("espace"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("/"),
		),
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Supprimer cette tâche ?"),
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
// search bar, the tag filter or a confirmation prompt.
func (v *TaskListView) Capturing() bool {
	return v.searching || v.editing || v.confirmingDelete || v.tagFilterOpen
}
