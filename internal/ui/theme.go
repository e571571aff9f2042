package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used by the viewer's inline output.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Progress bar gradient endpoints
	BarStart string
	BarEnd   string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Link        lipgloss.Style
	Key         lipgloss.Style
	Spinner     lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Underline(true),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
	}
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

// DefaultThemeName is used when no preference is stored.
const DefaultThemeName = "Dracula"

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// ThemeNames returns available theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name:     "Dracula",
		Text:     "#F8F8F2", // Foreground
		Muted:    "#6272A4", // Comment
		Faint:    "#44475A", // Selection
		Accent:   "#BD93F9", // Purple
		Success:  "#50FA7B", // Green
		Warning:  "#FFB86C", // Orange
		Danger:   "#FF5555", // Red
		Info:     "#8BE9FD", // Cyan
		BarStart: "#FF79C6", // Pink
		BarEnd:   "#BD93F9",
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky scale
	return Theme{
		Name:     "Slate",
		Text:     "#f1f5f9", // slate-100
		Muted:    "#94a3b8", // slate-400
		Faint:    "#64748b", // slate-500
		Accent:   "#38bdf8", // sky-400
		Success:  "#22c55e", // green-500
		Warning:  "#f59e0b", // amber-500
		Danger:   "#ef4444", // red-500
		Info:     "#06b6d4", // cyan-500
		BarStart: "#0284c7", // sky-600
		BarEnd:   "#38bdf8",
	}
}
