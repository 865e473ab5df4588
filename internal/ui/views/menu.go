package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderMenu renders the menu bar rows in screen order
func (r *Renderer) renderMenu(state ViewState) []string {
	l := state.Layout
	trackWidth := int(math.Ceil(math.Max(state.MenuTrackWidth, float64(state.Width))))
	offset := int(math.Round(state.MenuOffset))

	labelLine := r.renderLabelTrack(state, trackWidth)
	indicatorLine := r.renderIndicatorTrack(state, trackWidth)

	var labels, indicator []string
	textRow := (l.LabelRows - 1) / 2
	for i := 0; i < l.LabelRows; i++ {
		if i == textRow {
			labels = append(labels, cutTrack(labelLine, offset, state.Width))
		} else {
			labels = append(labels, strings.Repeat(" ", state.Width))
		}
	}
	for i := 0; i < l.IndicatorRows; i++ {
		indicator = append(indicator, cutTrack(indicatorLine, offset, state.Width))
	}

	rows := make([]string, 0, l.MenuRows())
	hairline := r.styles.Hairline.Render(strings.Repeat("─", state.Width))
	if l.MenuTop > l.ContentTop {
		// bottom bar: hairline above the labels, indicator on the content side
		if l.HairlineRows > 0 {
			rows = append(rows, hairline)
		}
		rows = append(rows, indicator...)
		rows = append(rows, labels...)
		return rows
	}
	rows = append(rows, labels...)
	rows = append(rows, indicator...)
	if l.HairlineRows > 0 {
		rows = append(rows, hairline)
	}
	return rows
}

// renderLabelTrack lays out every label at its track position
func (r *Renderer) renderLabelTrack(state ViewState, trackWidth int) string {
	var b strings.Builder
	cursor := 0
	for i, label := range state.Labels {
		if i >= len(state.LabelRects) {
			break
		}
		rect := state.LabelRects[i]
		x := int(math.Round(rect.X))
		w := int(math.Round(rect.MaxX())) - x
		if x > cursor {
			b.WriteString(strings.Repeat(" ", x-cursor))
			cursor = x
		}
		if w <= 0 || x < cursor {
			continue
		}

		sep := state.Separators && i < len(state.Labels)-1 && w > 1
		textWidth := w
		if sep {
			textWidth--
		}

		style := r.styles.Label
		if i < len(state.LabelColors) && state.LabelColors[i] != "" {
			style = style.Foreground(lipgloss.Color(state.LabelColors[i]))
		}
		if label.Selected {
			style = style.Bold(true)
		}
		text := ansi.Truncate(label.Text, textWidth, "…")
		b.WriteString(style.Render(centre(text, textWidth)))
		if sep {
			b.WriteString(r.styles.Separator.Render("│"))
		}
		cursor += w
	}
	if cursor < trackWidth {
		b.WriteString(strings.Repeat(" ", trackWidth-cursor))
	}
	return b.String()
}

// renderIndicatorTrack draws the indicator bar at its animated rectangle
func (r *Renderer) renderIndicatorTrack(state ViewState, trackWidth int) string {
	x := int(math.Round(state.Indicator.X))
	w := int(math.Round(state.Indicator.MaxX())) - x
	if x < 0 {
		w += x
		x = 0
	}
	if w <= 0 || x >= trackWidth {
		return strings.Repeat(" ", trackWidth)
	}
	if x+w > trackWidth {
		w = trackWidth - x
	}
	return strings.Repeat(" ", x) +
		r.styles.Indicator.Render(strings.Repeat("━", w)) +
		strings.Repeat(" ", trackWidth-x-w)
}

// cutTrack returns the width cells of line starting at offset
func cutTrack(line string, offset, width int) string {
	if offset < 0 {
		return fit(strings.Repeat(" ", -offset)+ansi.Cut(line, 0, width+offset), width)
	}
	return fit(ansi.Cut(line, offset, offset+width), width)
}

// centre pads text on both sides to width cells
func centre(text string, width int) string {
	w := ansi.StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}
