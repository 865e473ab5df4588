package indicator

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/logic"
)

// Service eases the selection indicator and the two affected label colours
// towards the current page
type Service struct {
	state    *State
	geometry logic.Geometry
	colors   Colors
	spring   harmonica.Spring
	fps      int
	duration time.Duration
	target   domain.Rect
}

// NewService creates an indicator resting under label 0
func NewService(g logic.Geometry, colors Colors, duration time.Duration, fps int) *Service {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	// critically damped, settles in roughly the transition duration
	omega := 6 / duration.Seconds()
	s := &Service{
		state:    &State{},
		geometry: g,
		colors:   colors,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), omega, 1.0),
		fps:      fps,
		duration: duration,
	}
	s.Jump(0)
	return s
}

// SetGeometry replaces the layout used to place the indicator
func (s *Service) SetGeometry(g logic.Geometry) {
	s.geometry = g
}

// Move starts a transition from the last label to the current one
func (s *Service) Move(current, last int) {
	if current < 0 || current >= s.geometry.ItemCount {
		return
	}
	s.target = s.geometry.IndicatorRect(current)
	if current == s.state.Current && (s.Animating() || s.atTarget()) {
		return
	}
	s.state.Current = current
	s.state.Last = last
	s.state.Progress = 0
	s.state.ProgVel = 0
	s.state.Frame = 0
	s.state.Frames = int((s.duration*time.Duration(s.fps) + time.Second - 1) / time.Second)
}

// Jump places the indicator under current without a transition
func (s *Service) Jump(current int) {
	if current < 0 || current >= s.geometry.ItemCount {
		return
	}
	s.target = s.geometry.IndicatorRect(current)
	*s.state = State{
		Current:  current,
		Last:     current,
		X:        s.target.X,
		Width:    s.target.Width,
		Progress: 1,
	}
}

// Step advances the transition by one frame and reports whether it is
// still running
func (s *Service) Step() bool {
	if !s.Animating() {
		return false
	}
	st := s.state
	st.X, st.XVel = s.spring.Update(st.X, st.XVel, s.target.X)
	st.Width, st.WidthVel = s.spring.Update(st.Width, st.WidthVel, s.target.Width)
	st.Progress, st.ProgVel = s.spring.Update(st.Progress, st.ProgVel, 1)
	st.Frame++
	if st.Frame >= st.Frames {
		st.X, st.XVel = s.target.X, 0
		st.Width, st.WidthVel = s.target.Width, 0
		st.Progress, st.ProgVel = 1, 0
		st.Frames = 0
	}
	return s.Animating()
}

// Animating reports whether a transition is in progress
func (s *Service) Animating() bool {
	return s.state.Frames > 0 && s.state.Frame < s.state.Frames
}

// FrameInterval is the delay between Step calls
func (s *Service) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.fps)
}

// Rect returns the indicator rectangle for the current frame
func (s *Service) Rect() domain.Rect {
	return domain.Rect{
		X:      s.state.X,
		Y:      s.target.Y,
		Width:  s.state.Width,
		Height: s.target.Height,
	}
}

// Current returns the label the indicator is heading to
func (s *Service) Current() int {
	return s.state.Current
}

// LabelColor returns the hex colour of label i for the current frame
func (s *Service) LabelColor(i int) string {
	t := math.Max(0, math.Min(1, s.state.Progress))
	switch {
	case i == s.state.Current && !s.Animating():
		return s.colors.Selected.Hex()
	case i == s.state.Current:
		return s.colors.Unselected.BlendLab(s.colors.Selected, t).Clamped().Hex()
	case i == s.state.Last && s.Animating():
		return s.colors.Selected.BlendLab(s.colors.Unselected, t).Clamped().Hex()
	default:
		return s.colors.Unselected.Hex()
	}
}

func (s *Service) atTarget() bool {
	return s.state.X == s.target.X && s.state.Width == s.target.Width
}
