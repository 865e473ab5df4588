package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the configurable colours of the menu
type Palette struct {
	Indicator string
	Separator string
	Hairline  string
}

// Styles contains all the style definitions for the UI
type Styles struct {
	Label         lipgloss.Style
	Indicator     lipgloss.Style
	Separator     lipgloss.Style
	Hairline      lipgloss.Style
	Status        lipgloss.Style
	StatusTitle   lipgloss.Style
	StatusMessage lipgloss.Style
	StatusError   lipgloss.Style
	Help          lipgloss.Style
	PopupTitle    lipgloss.Style
	PopupKey      lipgloss.Style
	InfoBox       lipgloss.Style
	Dim           lipgloss.Style
}

// NewStyles creates a new Styles instance for the given palette
func NewStyles(p Palette) *Styles {
	return &Styles{
		Label:         lipgloss.NewStyle(),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color(orDefault(p.Indicator, "#007AFF"))),
		Separator:     lipgloss.NewStyle().Foreground(lipgloss.Color(orDefault(p.Separator, "#C7C7CC"))),
		Hairline:      lipgloss.NewStyle().Foreground(lipgloss.Color(orDefault(p.Hairline, "#3A3A3C"))),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		StatusMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:          lipgloss.NewStyle().Faint(true),
		PopupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		PopupKey: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Dim: lipgloss.NewStyle().Faint(true),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
