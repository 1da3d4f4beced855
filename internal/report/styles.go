package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for terminal output. When disabled every
// style renders text unchanged.
type Styles struct {
	enabled bool

	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Bad    lipgloss.Style
	Box    lipgloss.Style
	Bullet string
	Arrow  string
}

// NewStyles creates the style set
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Value = lipgloss.NewStyle().Bold(true)
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
		s.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		s.Bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		s.Box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		s.Bullet = "•"
		s.Arrow = "→"
	} else {
		s.Title = lipgloss.NewStyle()
		s.Label = lipgloss.NewStyle()
		s.Value = lipgloss.NewStyle()
		s.Muted = lipgloss.NewStyle()
		s.Good = lipgloss.NewStyle()
		s.Warn = lipgloss.NewStyle()
		s.Bad = lipgloss.NewStyle()
		s.Box = lipgloss.NewStyle()
		s.Bullet = "-"
		s.Arrow = "->"
	}

	return s
}

// Score picks a style for a 0-100 AI likelihood score
func (s *Styles) Score(score float64) lipgloss.Style {
	switch {
	case score < 20:
		return s.Good
	case score < 60:
		return s.Warn
	default:
		return s.Bad
	}
}

// Grade picks a style for a grade level
func (s *Styles) Grade(grade float64) lipgloss.Style {
	switch {
	case grade < 9:
		return s.Good
	case grade < 13:
		return s.Warn
	default:
		return s.Bad
	}
}
