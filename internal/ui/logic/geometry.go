package logic

import (
	"math"

	"pagedeck/internal/domain"
)

// Geometry holds the layout parameters of the menu and content tracks.
// All methods are pure; a Geometry is rebuilt when the viewport changes.
type Geometry struct {
	Mode            domain.LayoutMode
	ItemCount       int
	ViewportWidth   float64
	ItemWidth       float64   // fixed and centered modes
	ItemWidths      []float64 // text-fitted mode, measured label widths
	Margin          float64
	MenuHeight      float64
	IndicatorHeight float64
}

// StartingMargin is the extra left inset applied in centered mode
func (g Geometry) StartingMargin() float64 {
	if g.Mode != domain.LayoutCentered || g.ItemCount == 0 {
		return 0
	}
	n := float64(g.ItemCount)
	used := n*g.ItemWidth + (n-1)*g.Margin
	return math.Max(0, (g.ViewportWidth-used)/2-g.Margin)
}

// LabelWidth returns the width of label i under the current mode
func (g Geometry) LabelWidth(i int) float64 {
	if !g.valid(i) {
		return 0
	}
	switch g.Mode {
	case domain.LayoutSegmented:
		return g.ViewportWidth / float64(g.ItemCount)
	case domain.LayoutTextFitted:
		if i < len(g.ItemWidths) {
			return g.ItemWidths[i]
		}
		return 0
	default:
		return g.ItemWidth
	}
}

// ItemRect returns the placement of label i in menu track coordinates.
// Out-of-range indices yield the zero rectangle.
func (g Geometry) ItemRect(i int) domain.Rect {
	if !g.valid(i) {
		return domain.Rect{}
	}

	var x float64
	switch g.Mode {
	case domain.LayoutSegmented:
		x = g.ViewportWidth / float64(g.ItemCount) * float64(i)
	case domain.LayoutTextFitted:
		for j := 0; j < i && j < len(g.ItemWidths); j++ {
			x += g.ItemWidths[j]
		}
		x += g.Margin * float64(i+1)
	default:
		x = g.ItemWidth*float64(i) + g.Margin*float64(i+1) + g.StartingMargin()
	}

	return domain.Rect{
		X:      x,
		Y:      0,
		Width:  g.LabelWidth(i),
		Height: g.MenuHeight,
	}
}

// IndicatorRect returns the selection indicator placement under label i
func (g Geometry) IndicatorRect(i int) domain.Rect {
	item := g.ItemRect(i)
	if item == (domain.Rect{}) {
		return item
	}
	return domain.Rect{
		X:      item.X,
		Y:      g.MenuHeight - g.IndicatorHeight,
		Width:  item.Width,
		Height: g.IndicatorHeight,
	}
}

// ContentWidth is the scrollable width of the menu track
func (g Geometry) ContentWidth() float64 {
	n := float64(g.ItemCount)
	switch g.Mode {
	case domain.LayoutSegmented:
		return g.ViewportWidth
	case domain.LayoutTextFitted:
		var sum float64
		for _, w := range g.ItemWidths {
			sum += w
		}
		return sum + g.Margin*(n+1)
	default:
		return (g.ItemWidth+g.Margin)*n + g.Margin
	}
}

// PageTrackWidth is the scrollable width of the content track
func (g Geometry) PageTrackWidth() float64 {
	return g.ViewportWidth * float64(g.ItemCount)
}

// PageOffset is the content track offset at which page i is fully visible
func (g Geometry) PageOffset(i int) float64 {
	return float64(i) * g.ViewportWidth
}

// MaxPageOffset is the largest non-bouncing content track offset
func (g Geometry) MaxPageOffset() float64 {
	return math.Max(0, g.PageTrackWidth()-g.ViewportWidth)
}

func (g Geometry) valid(i int) bool {
	return i >= 0 && i < g.ItemCount
}
