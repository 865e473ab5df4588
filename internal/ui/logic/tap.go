package logic

import (
	"math"

	"pagedeck/internal/domain"
)

// ResolveTap maps a point in menu track coordinates to the label under it.
// It reports false when the point is outside every label, including points
// left of the first label, which never clamp to index 0.
func ResolveTap(g Geometry, x, y float64) (int, bool) {
	if g.ItemCount == 0 || y >= g.MenuHeight || x < 0 {
		return 0, false
	}

	var index int
	switch g.Mode {
	case domain.LayoutSegmented:
		index = int(math.Floor(x / (g.ViewportWidth / float64(g.ItemCount))))

	case domain.LayoutTextFitted:
		var ok bool
		index, ok = resolveTextFitted(g, x)
		if !ok {
			return 0, false
		}

	default:
		raw := (x - g.StartingMargin() - g.Margin/2) / (g.ItemWidth + g.Margin)
		if raw < 0 {
			return 0, false
		}
		index = int(math.Floor(raw))
	}

	if index < 0 || index >= g.ItemCount {
		return 0, false
	}
	return index, true
}

// resolveTextFitted scans the variable-width labels. The first label also
// owns the leading margin and half of the following one; every later label
// takes over at its predecessor's right bound. Bounds are half-open so each
// cell belongs to exactly one label.
func resolveTextFitted(g Geometry, x float64) (int, bool) {
	if len(g.ItemWidths) == 0 {
		return 0, false
	}

	left := 0.0
	right := g.ItemWidths[0] + g.Margin + g.Margin/2
	if x >= left && x < right {
		return 0, true
	}

	for i := 1; i < g.ItemCount && i < len(g.ItemWidths); i++ {
		left = right
		right = left + g.ItemWidths[i] + g.Margin
		if x >= left && x < right {
			return i, true
		}
	}
	return 0, false
}
