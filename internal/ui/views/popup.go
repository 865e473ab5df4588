package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centred on top of main content.
// The rest of the screen is dimmed; lines keep their full width.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	modalW := lipgloss.Width(styledPopup)
	if modalW > width {
		modalW = width
	}
	if len(popupLines) > height {
		popupLines = popupLines[:height]
	}
	x := (width - modalW) / 2
	y := (height - len(popupLines)) / 2

	base := strings.Split(mainContent, "\n")
	for len(base) < height {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		grey := desaturateANSI(line)
		j := i - y
		if j < 0 || j >= len(popupLines) {
			out[i] = grey
			continue
		}
		left := padRight(ansi.Cut(grey, 0, x), x)
		right := ansi.Cut(grey, x+modalW, width)
		out[i] = left + padRight(ansi.Truncate(popupLines[j], modalW, ""), modalW) + right
	}
	return strings.Join(out, "\n")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansi.Strip(s)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}
