package logic

import (
	"math"

	"pagedeck/internal/domain"
)

// MirrorOffset maps an offset of the primary track onto the secondary track
// so both reach their ends together. It reports false, leaving the secondary
// track untouched, unless both tracks overflow the viewport.
func MirrorOffset(primaryOffset, primaryContentWidth, secondaryContentWidth, viewportWidth float64) (float64, bool) {
	if secondaryContentWidth <= viewportWidth || primaryContentWidth <= viewportWidth {
		return 0, false
	}
	ratio := (secondaryContentWidth - viewportWidth) / (primaryContentWidth - viewportWidth)
	return primaryOffset * ratio, true
}

// RawDirection compares consecutive offsets. Equal offsets keep the previous
// direction so rubber-banding at an edge does not reset it.
func RawDirection(lastOffset, offset float64, previous domain.Direction) domain.Direction {
	switch {
	case offset < lastOffset:
		return domain.DirectionRight
	case offset > lastOffset:
		return domain.DirectionLeft
	default:
		return previous
	}
}

// LatchedDirection compares the offset against the page the gesture started
// on rather than the previous callback, so sub-cell jitter cannot flip it.
func LatchedDirection(startingIndex int, viewportWidth, offset float64) domain.Direction {
	reference := float64(startingIndex) * viewportWidth
	switch {
	case reference > offset:
		return domain.DirectionRight
	case reference < offset:
		return domain.DirectionLeft
	default:
		return domain.DirectionNone
	}
}

// PageForOffset is the page occupying most of the viewport at offset
func PageForOffset(offset, viewportWidth float64) int {
	if viewportWidth <= 0 {
		return 0
	}
	return int(math.Floor((offset + viewportWidth/2) / viewportWidth))
}

// Neighbor returns the page next to current in the direction content travels:
// Right reveals the lower index, Left the higher one.
func Neighbor(current int, dir domain.Direction) int {
	switch dir {
	case domain.DirectionRight:
		return current - 1
	case domain.DirectionLeft:
		return current + 1
	default:
		return current
	}
}
