package views

import (
	"math"
	"strings"
)

// renderContent renders the visible slice of the content track. The track
// is the pages laid side by side, each exactly one viewport wide.
func (r *Renderer) renderContent(state ViewState) []string {
	rows := state.Layout.ContentRows
	vw := state.Width
	out := make([]string, rows)

	offset := int(math.Round(state.ContentOffset))
	first := floorDiv(offset, vw)
	shift := offset - first*vw

	left := r.pageLines(state, first, rows, vw)
	var right []string
	if shift > 0 {
		right = r.pageLines(state, first+1, rows, vw)
	}

	for i := 0; i < rows; i++ {
		if right == nil {
			out[i] = left[i]
			continue
		}
		out[i] = cutTrack(left[i]+right[i], shift, vw)
	}
	return out
}

// pageLines returns rows lines of exactly width cells for page i.
// Pages outside the track or not materialized render blank.
func (r *Renderer) pageLines(state ViewState, i, rows, width int) []string {
	lines := make([]string, rows)
	var body []string
	if i >= 0 && i < len(state.PageBodies) {
		if i < len(state.Loaded) && state.Loaded[i] {
			body = strings.Split(state.PageBodies[i], "\n")
		}
	}
	for row := range lines {
		if row < len(body) {
			lines[row] = fit(body[row], width)
		} else {
			lines[row] = strings.Repeat(" ", width)
		}
	}
	return lines
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
