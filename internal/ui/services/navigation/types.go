package navigation

import (
	"time"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/logic"
)

// Phase is the gesture state of the content track
type Phase int

const (
	PhaseSettled Phase = iota
	PhaseDragging
	PhaseDecelerating
	PhaseTapAnimating
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseDecelerating:
		return "decelerating"
	case PhaseTapAnimating:
		return "tap-animating"
	default:
		return "settled"
	}
}

// State holds all navigation-related state
type State struct {
	CurrentIndex            int
	LastIndex               int
	LastOffset              float64
	LastDirection           domain.Direction
	IsUserDragging          bool
	StartingIndexForGesture int
	DidScrollAlready        bool // first movement of the gesture has been handled
	Phase                   Phase
	Orientation             domain.Orientation
	SkipNextScroll          bool // set by an orientation change
}

// PendingNavigation is the animated transition waiting for its completion
type PendingNavigation struct {
	Generation uint64
	Target     int
	Offset     float64
	Duration   time.Duration
}

// Tracks moves the two scrolling tracks of the host
type Tracks interface {
	SetContentOffset(offset float64, animated bool)
	SetMenuOffset(offset float64)
}

// Timer schedules the completion of an animated transition. A fired timer
// must call CompleteTransition with the generation it was armed with.
type Timer interface {
	Arm(d time.Duration, generation uint64)
	Cancel(generation uint64)
}

// Indicator follows the current page in the menu track
type Indicator interface {
	SetGeometry(g logic.Geometry)
	Move(current, last int)
	Jump(current int)
}

// Config holds the construction-time navigation settings
type Config struct {
	PageCount         int
	AnimationDuration time.Duration
	Orientation       domain.Orientation
	Debug             bool
}
