package report

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour palette for tables.
type Theme struct {
	// Primary is used for header cells.
	Primary lipgloss.Color

	// Foreground is the default cell colour.
	Foreground lipgloss.Color

	// Muted is used for row counts and secondary text.
	Muted lipgloss.Color

	// Success colours net amounts.
	Success lipgloss.Color

	// Warning colours deductions.
	Warning lipgloss.Color

	// Border is the table border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for report tables.
type Styles struct {
	theme *Theme

	Header    lipgloss.Style
	Cell      lipgloss.Style
	Number    lipgloss.Style
	Deduction lipgloss.Style
	Net       lipgloss.Style
	Footer    lipgloss.Style
	Label     lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	return &Styles{
		theme: theme,

		Header: cell.
			Bold(true).
			Foreground(theme.Primary),

		Cell: cell.
			Foreground(theme.Foreground),

		Number: number.
			Foreground(theme.Foreground),

		Deduction: number.
			Foreground(theme.Warning),

		Net: number.
			Foreground(theme.Success),

		Footer: number.
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
