package domain

import (
	"fmt"
	"strings"
)

// LayoutMode selects how menu labels are sized and placed in the menu track.
// It is fixed at construction time.
type LayoutMode int

const (
	LayoutFixedWidth LayoutMode = iota
	LayoutSegmented
	LayoutTextFitted
	LayoutCentered
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutFixedWidth:
		return "fixed"
	case LayoutSegmented:
		return "segmented"
	case LayoutTextFitted:
		return "text"
	case LayoutCentered:
		return "centered"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

// ParseLayoutMode converts a config/flag value into a LayoutMode
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed", "fixed-width":
		return LayoutFixedWidth, nil
	case "segmented", "segment":
		return LayoutSegmented, nil
	case "text", "text-width", "fitted":
		return LayoutTextFitted, nil
	case "centered", "center":
		return LayoutCentered, nil
	}
	return LayoutFixedWidth, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// Direction is the direction content travels across the viewport.
// Right means the offset is decreasing (revealing lower indices).
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Orientation is the coarse viewport shape class
type Orientation int

const (
	OrientationLandscape Orientation = iota
	OrientationPortrait
)

// TrackID identifies one of the two horizontally scrolling tracks
type TrackID int

const (
	TrackContent TrackID = iota
	TrackMenu
)

// Rect is a rectangle in track coordinates (cells for the terminal host)
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX returns the right edge of the rectangle
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// Page is one content page. The core only ever refers to it by Index.
type Page struct {
	Index  int
	Title  string
	Source string // file path backing the page
}

// MenuLabel is the tab strip entry for the page with the same index
type MenuLabel struct {
	Index    int
	Text     string
	Width    float64 // mode-dependent
	Selected bool    // derived from the current index
}

// DefaultTitle is the label used for a page without a title
func DefaultTitle(index int) string {
	return fmt.Sprintf("Menu %d", index+1)
}
