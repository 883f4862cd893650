// Package ui provides the visual styling for the dealdesk interactive
// panels, with light and dark themes.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds one color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the default dark palette.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#7aa2f7"),
		Accent:     lipgloss.Color("#9ece6a"),
		Muted:      lipgloss.Color("#565f89"),
		Border:     lipgloss.Color("#3b4261"),
		Error:      lipgloss.Color("#f7768e"),
		Warning:    lipgloss.Color("#e0af68"),
		Success:    lipgloss.Color("#9ece6a"),
		IsDark:     true,
	}
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1a1b26"),
		Primary:    lipgloss.Color("#2959aa"),
		Accent:     lipgloss.Color("#385f0d"),
		Muted:      lipgloss.Color("#9699a3"),
		Border:     lipgloss.Color("#c4c8da"),
		Error:      lipgloss.Color("#8c4351"),
		Warning:    lipgloss.Color("#8f5e15"),
		Success:    lipgloss.Color("#385f0d"),
		IsDark:     false,
	}
}

// Styles bundles the lipgloss styles used across the panels.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Header    lipgloss.Style
	Body      lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Prompt    lipgloss.Style
	UserInput lipgloss.Style
	Spinner   lipgloss.Style
	Banner    lipgloss.Style
	StepDone  lipgloss.Style
	StepNow   lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:     theme,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Body:      lipgloss.NewStyle().Foreground(theme.Foreground),
		Bold:      lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(theme.Muted),
		Error:     lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warning),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Prompt:    lipgloss.NewStyle().Foreground(theme.Accent),
		UserInput: lipgloss.NewStyle().Foreground(theme.Foreground),
		Spinner:   lipgloss.NewStyle().Foreground(theme.Primary),
		Banner: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StepDone: lipgloss.NewStyle().Foreground(theme.Success),
		StepNow:  lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
	}
}

// DefaultStyles returns the dark style set.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// StylesFor picks a style set by theme name.
func StylesFor(theme string) Styles {
	if theme == "light" {
		return NewStyles(LightTheme())
	}
	return DefaultStyles()
}
