package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// Dark is the dark color theme
var Dark = Theme{
	Name: "Dark",

	Background:    lipgloss.Color("#171717"),
	Foreground:    lipgloss.Color("#f5f5f5"),
	ForegroundDim: lipgloss.Color("#737373"),

	Primary:   lipgloss.Color("#ff6600"),
	Secondary: lipgloss.Color("#3b82f6"),
	Accent:    lipgloss.Color("#14b8a6"),

	Success: lipgloss.Color("#22c55e"),
	Warning: lipgloss.Color("#f59e0b"),
	Error:   lipgloss.Color("#ef4444"),
	Info:    lipgloss.Color("#3b82f6"),

	Border:      lipgloss.Color("#404040"),
	BorderFocus: lipgloss.Color("#ff6600"),
	Selection:   lipgloss.Color("#525252"),
	Cursor:      lipgloss.Color("#f5f5f5"),
}

// Light is the light color theme
var Light = Theme{
	Name: "Light",

	Background:    lipgloss.Color("#ffffff"),
	Foreground:    lipgloss.Color("#171717"),
	ForegroundDim: lipgloss.Color("#737373"),

	Primary:   lipgloss.Color("#ff6600"),
	Secondary: lipgloss.Color("#3b82f6"),
	Accent:    lipgloss.Color("#14b8a6"),

	Success: lipgloss.Color("#22c55e"),
	Warning: lipgloss.Color("#f59e0b"),
	Error:   lipgloss.Color("#ef4444"),
	Info:    lipgloss.Color("#3b82f6"),

	Border:      lipgloss.Color("#d4d4d4"),
	BorderFocus: lipgloss.Color("#ff6600"),
	Selection:   lipgloss.Color("#e5e5e5"),
	Cursor:      lipgloss.Color("#171717"),
}

// Current holds the active theme
var Current = Light

// SetTheme switches the active theme by preference name ("light" or "dark").
func SetTheme(name string) {
	if name == "dark" {
		Current = Dark
		return
	}
	Current = Light
}

// MaxWidth is the maximum content width for the app
const MaxWidth = 100

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// App container
	App lipgloss.Style

	// Title bar and tabs
	TitleBar   lipgloss.Style
	Title      lipgloss.Style
	TitleMuted lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style

	// Lists
	List         lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Filter bar
	FilterBar   lipgloss.Style
	FilterInput lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Tags
	Tag lipgloss.Style

	// Status badges
	StatusDone       lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusNotStarted lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Calendar cells
	CalendarCell  lipgloss.Style
	CalendarToday lipgloss.Style

	// Bar chart labels
	BarLabel lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style

	// Error line
	ErrorText lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		TitleBar: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(0, 2).
			Bold(true).
			Underline(true),

		List: lipgloss.NewStyle().
			Padding(1, 2),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		FilterInput: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1),

		StatusDone: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		StatusInProgress: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		StatusNotStarted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		CalendarCell: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CalendarToday: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		BarLabel: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Width(22),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		ErrorText: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
