package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pagedeck/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Layout Layout

	// Menu track
	Labels         []domain.MenuLabel
	LabelRects     []domain.Rect
	LabelColors    []string
	Indicator      domain.Rect
	MenuOffset     float64
	MenuTrackWidth float64
	Separators     bool
	Hairline       bool

	// Content track
	ContentOffset float64
	PageBodies    []string // rendered body per page, empty when not materialized
	Loaded        []bool

	// Chrome
	Title         string
	CurrentPage   int
	PageCount     int
	StatusMessage string
	StatusIsError bool
	HelpModel     help.Model
	KeyMap        help.KeyMap
	ShowHelp      bool
	ShowInfo      bool
	InfoContent   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(p Palette) *Renderer {
	styles := NewStyles(p)
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}
	l := state.Layout

	menu := r.renderMenu(state)
	content := r.renderContent(state)

	rows := make([]string, 0, state.Height)
	if l.MenuTop < l.ContentTop {
		rows = append(rows, menu...)
		rows = append(rows, content...)
	} else {
		rows = append(rows, content...)
		rows = append(rows, menu...)
	}
	rows = append(rows, r.renderStatus(state))
	if l.HelpRows > 0 {
		rows = append(rows, r.renderHelp(state, l.HelpRows)...)
	}
	if len(rows) > state.Height {
		rows = rows[:state.Height]
	}

	screen := strings.Join(rows, "\n")

	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(screen, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowHelp && state.KeyMap != nil {
		helpContent := r.styles.PopupTitle.Render("pagedeck") + "\n" + state.HelpModel.FullHelpView(state.KeyMap.FullHelp())
		return r.popupRender.RenderPopupOverlay(screen, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}
	return screen
}

func (r *Renderer) renderStatus(state ViewState) string {
	left := r.styles.StatusTitle.Render(state.Title)
	if state.PageCount > 0 {
		left += r.styles.Status.Render(fmt.Sprintf("  %d/%d", state.CurrentPage+1, state.PageCount))
	}

	right := ""
	if state.StatusMessage != "" {
		style := r.styles.StatusMessage
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		right = style.Render(state.StatusMessage)
	}

	gap := state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return padRight(ansi.Truncate(left+" "+right, state.Width, "…"), state.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderHelp(state ViewState, rows int) []string {
	out := make([]string, rows)
	if state.KeyMap != nil {
		line := r.styles.Help.Render(state.HelpModel.ShortHelpView(state.KeyMap.ShortHelp()))
		out[0] = padRight(ansi.Truncate(line, state.Width, ""), state.Width)
	}
	return out
}

// padRight pads s with spaces to exactly width cells
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return padRight(ansi.Truncate(s, width, ""), width)
}
