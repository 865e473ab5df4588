package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// trackAnimation eases the content track towards a target offset.
// It runs for a fixed number of frames and lands exactly on the target.
type trackAnimation struct {
	spring    harmonica.Spring
	fps       int
	duration  time.Duration
	pos       float64
	vel       float64
	target    float64
	frame     int
	maxFrames int
}

func newTrackAnimation(fps int, duration time.Duration) *trackAnimation {
	if fps <= 0 {
		fps = 60
	}
	if duration <= 0 {
		duration = 500 * time.Millisecond
	}
	return &trackAnimation{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6/duration.Seconds(), 1.0),
		fps:      fps,
		duration: duration,
	}
}

// Start begins a transition from one offset to another
func (a *trackAnimation) Start(from, to float64) {
	a.pos = from
	a.vel = 0
	a.target = to
	a.frame = 0
	a.maxFrames = int((a.duration*time.Duration(a.fps) + time.Second - 1) / time.Second)
	if from == to {
		a.maxFrames = 0
	}
}

// Stop abandons the transition where it is
func (a *trackAnimation) Stop() {
	a.maxFrames = 0
}

// Active reports whether frames remain
func (a *trackAnimation) Active() bool {
	return a.frame < a.maxFrames
}

// Target returns the offset the animation is heading to
func (a *trackAnimation) Target() float64 {
	return a.target
}

// Step advances one frame and returns the new offset and whether the
// animation is still running
func (a *trackAnimation) Step() (float64, bool) {
	if !a.Active() {
		return a.pos, false
	}
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	a.frame++
	if a.frame >= a.maxFrames || math.Abs(a.target-a.pos) < 0.05 {
		a.pos, a.vel = a.target, 0
		a.maxFrames = 0
		a.frame = 0
	}
	return a.pos, a.Active()
}
