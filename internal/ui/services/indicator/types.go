package indicator

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultDuration is how long the indicator takes to reach a new label
const DefaultDuration = 150 * time.Millisecond

// DefaultFPS is the frame rate Step is expected to be called at
const DefaultFPS = 60

// Colors are the two label states the indicator blends between
type Colors struct {
	Selected   colorful.Color
	Unselected colorful.Color
}

// State is the indicator's position and transition progress
type State struct {
	Current  int
	Last     int
	X        float64
	XVel     float64
	Width    float64
	WidthVel float64
	Progress float64 // 0 at the start of a transition, 1 when done
	ProgVel  float64
	Frame    int
	Frames   int
}
