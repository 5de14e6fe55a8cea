package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the console's color palette.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	StatusColors map[string]string
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),

		statusColors: t.StatusColors,
		muted:        t.Muted,
	}
}

// Styles holds the ready-to-use lipgloss styles.
type Styles struct {
	Text      lipgloss.Style
	MutedText lipgloss.Style
	FaintText lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style

	Header      lipgloss.Style
	Footer      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	TableHeader lipgloss.Style
	Selected    lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Modal       lipgloss.Style

	statusColors map[string]string
	muted        string
}

// StatusStyle returns a foreground style for a resource status string.
// Statuses are matched case-insensitively: API enums are uppercase while
// job outcomes like backup results arrive lowercase.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(status)]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"slate":   slateTheme(),
	"dracula": draculaTheme(),
}

var themeOrder = []string{"slate", "dracula"}

// GetTheme returns a theme by name, defaulting to slate.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return slateTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func slateTheme() Theme {
	// Tailwind CSS slate/sky palette.
	return Theme{
		Name: "slate",

		Background: "#020617",
		Surface:    "#0f172a",
		SurfaceAlt: "#1e293b",

		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",

		Border:      "#334155",
		BorderFocus: "#38bdf8",

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		StatusColors: map[string]string{
			"active":       "#22c55e",
			"online":       "#22c55e",
			"offline":      "#64748b",
			"approved":     "#22c55e",
			"success":      "#22c55e",
			"paid":         "#22c55e",
			"trial":        "#38bdf8",
			"trialing":     "#38bdf8",
			"provisioning": "#38bdf8",
			"pending":      "#f59e0b",
			"past_due":     "#f59e0b",
			"stopped":      "#94a3b8",
			"canceled":     "#94a3b8",
			"exhausted":    "#94a3b8",
			"expired":      "#94a3b8",
			"suspended":    "#ef4444",
			"failed":       "#ef4444",
			"error":        "#ef4444",
			"rejected":     "#ef4444",
			"revoked":      "#ef4444",
		},
	}
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "dracula",

		Background: "#191A21",
		Surface:    "#282A36",
		SurfaceAlt: "#21222C",

		SelectionBg:   "#44475A",
		SelectionText: "#F8F8F2",

		Border:      "#44475A",
		BorderFocus: "#BD93F9",

		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		StatusColors: map[string]string{
			"active":       "#50FA7B",
			"online":       "#50FA7B",
			"offline":      "#6272A4",
			"approved":     "#50FA7B",
			"success":      "#50FA7B",
			"paid":         "#50FA7B",
			"trial":        "#8BE9FD",
			"trialing":     "#8BE9FD",
			"provisioning": "#8BE9FD",
			"pending":      "#FFB86C",
			"past_due":     "#FFB86C",
			"stopped":      "#6272A4",
			"canceled":     "#6272A4",
			"exhausted":    "#6272A4",
			"expired":      "#6272A4",
			"suspended":    "#FF5555",
			"failed":       "#FF5555",
			"error":        "#FF5555",
			"rejected":     "#FF5555",
			"revoked":      "#FF5555",
		},
	}
}
