package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme bundles palette + symbols for every renderer.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Pending, Error lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	Border                                        lipgloss.Color

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

func base(name string, accent, border lipgloss.Color) Theme {
	return Theme{
		Name:     name,
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Border:   border,

		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
	}
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ThemeDark:
		return base(ThemeDark, lipgloss.Color("12"), lipgloss.Color("8")), nil
	case ThemeLight:
		t := base(ThemeLight, lipgloss.Color("27"), lipgloss.Color("245"))
		t.Title = t.Title.Foreground(lipgloss.Color("0"))
		t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
		return t, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want dark or light)", name)
}

// Toggled flips between light and dark.
func (t Theme) Toggled() Theme {
	next := ThemeLight
	if t.Name == ThemeLight {
		next = ThemeDark
	}
	nt, _ := LookupTheme(next)
	return nt
}

// Box renders the completion checkbox for a todo.
func (t Theme) Box(done bool) string {
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}
