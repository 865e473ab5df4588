package navigation

import (
	"log"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/logic"
	"pagedeck/internal/ui/services/events"
	"pagedeck/internal/ui/services/window"
)

// Service handles all navigation logic. Every notification updates state
// first, then the page window, then the indicator, and publishes events last.
type Service struct {
	state     *State
	cfg       Config
	geometry  logic.Geometry
	window    *window.Service
	indicator Indicator
	tracks    Tracks
	timer     Timer
	bus       events.EventBus

	pending    *PendingNavigation
	generation uint64
	offset     float64 // last content offset reported by the host
}

// NewService creates a navigation service resting on page 0
func NewService(cfg Config, g logic.Geometry, win *window.Service, ind Indicator, tracks Tracks, timer Timer, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state:     &State{Orientation: cfg.Orientation},
		cfg:       cfg,
		geometry:  g,
		window:    win,
		indicator: ind,
		tracks:    tracks,
		timer:     timer,
		bus:       bus,
	}
}

// CurrentPage returns the current page index
func (s *Service) CurrentPage() int {
	return s.state.CurrentIndex
}

// State returns a copy of the scroll state
func (s *Service) State() State {
	return *s.state
}

// Geometry returns the layout in use
func (s *Service) Geometry() logic.Geometry {
	return s.geometry
}

// Pending returns the in-flight animated transition, if any
func (s *Service) Pending() (PendingNavigation, bool) {
	if s.pending == nil {
		return PendingNavigation{}, false
	}
	return *s.pending, true
}

// DragStarted begins a user gesture on the content track. A drag during an
// animated transition takes over from it at the page currently on screen.
func (s *Service) DragStarted() {
	if s.state.Phase == PhaseTapAnimating {
		s.cancelPending()
		if page := logic.PageForOffset(s.offset, s.geometry.ViewportWidth); s.validPage(page) && page != s.state.CurrentIndex {
			s.state.LastIndex = s.state.CurrentIndex
			s.state.CurrentIndex = page
		}
		s.window.Materialize(s.state.CurrentIndex)
		s.window.EvictBeyond(s.state.CurrentIndex, 2)
		s.indicator.Move(s.state.CurrentIndex, s.state.LastIndex)
	}

	s.state.Phase = PhaseDragging
	s.state.IsUserDragging = true
	s.state.StartingIndexForGesture = s.state.CurrentIndex
	s.state.DidScrollAlready = false
	s.state.LastOffset = s.offset
	s.debugf("drag started on page %d at %.1f", s.state.CurrentIndex, s.offset)
}

// DragReleased ends the user's contact; the track may keep moving
func (s *Service) DragReleased() {
	if s.state.Phase != PhaseDragging {
		return
	}
	s.state.Phase = PhaseDecelerating
	s.state.IsUserDragging = false
}

// DecelerationEnded settles a drag on the current page
func (s *Service) DecelerationEnded() {
	switch s.state.Phase {
	case PhaseDragging, PhaseDecelerating:
		s.settle()
	}
}

// ScrollChanged handles a new content track offset
func (s *Service) ScrollChanged(offset float64) {
	s.offset = offset
	vw := s.geometry.ViewportWidth
	if vw <= 0 {
		return
	}

	if s.state.SkipNextScroll {
		s.state.SkipNextScroll = false
		s.indicator.Jump(s.state.CurrentIndex)
		return
	}

	// only user motion moves pages; settled and animated offsets just mirror
	inRange := offset >= 0 && offset <= float64(s.cfg.PageCount-1)*vw
	if !inRange || s.state.Phase == PhaseTapAnimating || s.state.Phase == PhaseSettled {
		s.mirror(offset)
		return
	}

	// state
	var neighbors []int
	cur := s.state.CurrentIndex
	if s.state.DidScrollAlready {
		latched := logic.LatchedDirection(s.state.StartingIndexForGesture, vw, offset)
		if latched != domain.DirectionNone && latched != s.state.LastDirection {
			neighbors = append(neighbors, logic.Neighbor(cur, latched))
			s.debugf("direction latched %s on page %d", latched, cur)
		}
		s.state.LastDirection = latched
	} else {
		switch logic.RawDirection(s.state.LastOffset, offset, domain.DirectionNone) {
		case domain.DirectionRight:
			if cur != s.cfg.PageCount-1 {
				neighbors = append(neighbors, cur-1)
				s.state.LastDirection = domain.DirectionRight
			}
		case domain.DirectionLeft:
			if cur != 0 {
				neighbors = append(neighbors, cur+1)
				s.state.LastDirection = domain.DirectionLeft
			}
		}
		s.state.DidScrollAlready = true
	}
	s.state.LastOffset = offset

	page := logic.PageForOffset(offset, vw)
	changed := page != cur && s.validPage(page)
	if changed {
		s.state.LastIndex = cur
		s.state.CurrentIndex = page
	}

	// window
	for _, n := range neighbors {
		s.window.Materialize(n)
	}
	if changed {
		s.window.Materialize(page)
		s.window.MarkStale(s.state.LastIndex)
		s.window.EvictBeyond(page, 2)
	}

	s.mirror(offset)

	// indicator
	if changed {
		s.indicator.Move(s.state.CurrentIndex, s.state.LastIndex)
	}
}

// MoveToPage starts an animated transition to index. Out-of-range indices,
// the current page and calls during a drag are ignored.
func (s *Service) MoveToPage(index int) {
	if !s.validPage(index) || index == s.state.CurrentIndex || s.state.Phase == PhaseDragging {
		return
	}

	// state
	s.state.LastIndex = s.state.CurrentIndex
	s.state.CurrentIndex = index
	s.state.StartingIndexForGesture = index
	s.state.Phase = PhaseTapAnimating
	s.state.IsUserDragging = false
	s.state.DidScrollAlready = false
	s.cancelPending()
	s.generation++
	s.pending = &PendingNavigation{
		Generation: s.generation,
		Target:     index,
		Offset:     s.geometry.PageOffset(index),
		Duration:   s.cfg.AnimationDuration,
	}

	// window
	lo, hi := s.state.LastIndex, index
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo + 1; i < hi; i++ {
		s.window.Materialize(i)
	}
	if !s.window.Materialize(index) {
		s.bus.Publish(domain.WillMoveToPageEvent{Index: index})
	}
	s.window.MarkStale(s.state.LastIndex)

	// indicator
	s.indicator.Move(index, s.state.LastIndex)

	s.tracks.SetContentOffset(s.pending.Offset, true)
	s.timer.Arm(s.pending.Duration, s.pending.Generation)
	s.debugf("navigating %d -> %d (generation %d)", s.state.LastIndex, index, s.generation)
}

// Tap resolves a point in menu track coordinates and navigates to its label
func (s *Service) Tap(x, y float64) {
	if index, ok := logic.ResolveTap(s.geometry, x, y); ok {
		s.MoveToPage(index)
	}
}

// CompleteTransition finishes the animated transition armed with generation.
// Superseded generations are discarded.
func (s *Service) CompleteTransition(generation uint64) bool {
	if s.pending == nil || s.pending.Generation != generation {
		return false
	}
	s.pending = nil
	s.settle()
	return true
}

// ViewportChanged relays the tracks out for a new viewport. An orientation
// change suppresses the scroll notification the relayout produces; the
// tracks report nothing for a jump, so that notification is delivered here.
func (s *Service) ViewportChanged(width, height float64, orientation domain.Orientation) {
	if width <= 0 {
		return
	}
	rotated := orientation != s.state.Orientation
	s.state.Orientation = orientation
	if rotated {
		s.state.SkipNextScroll = true
	}
	s.geometry.ViewportWidth = width

	s.indicator.SetGeometry(s.geometry)
	s.indicator.Jump(s.state.CurrentIndex)

	offset := s.geometry.PageOffset(s.state.CurrentIndex)
	s.offset = offset
	s.state.LastOffset = offset
	if s.pending != nil {
		s.pending.Offset = offset
	}
	s.tracks.SetContentOffset(offset, false)
	s.mirror(offset)
	if rotated {
		s.ScrollChanged(offset)
	}

	s.bus.Publish(domain.ViewportChangedEvent{Width: width, Height: height, Orientation: orientation})
}

func (s *Service) settle() {
	// state
	s.state.Phase = PhaseSettled
	s.state.IsUserDragging = false
	s.state.StartingIndexForGesture = s.state.CurrentIndex
	s.state.DidScrollAlready = false
	s.state.LastDirection = domain.DirectionNone
	s.state.LastOffset = s.offset

	// window
	s.window.Settle(s.state.CurrentIndex)

	// indicator
	s.indicator.Move(s.state.CurrentIndex, s.state.LastIndex)

	s.debugf("settled on page %d", s.state.CurrentIndex)
	s.bus.Publish(domain.DidMoveToPageEvent{Index: s.state.CurrentIndex})
}

func (s *Service) mirror(offset float64) {
	menuOffset, ok := logic.MirrorOffset(offset, s.geometry.PageTrackWidth(), s.geometry.ContentWidth(), s.geometry.ViewportWidth)
	if ok {
		s.tracks.SetMenuOffset(menuOffset)
	}
}

func (s *Service) cancelPending() {
	if s.pending == nil {
		return
	}
	s.timer.Cancel(s.pending.Generation)
	s.pending = nil
}

func (s *Service) validPage(index int) bool {
	return index >= 0 && index < s.cfg.PageCount
}

func (s *Service) debugf(format string, args ...interface{}) {
	if s.cfg.Debug {
		log.Printf("navigation: "+format, args...)
	}
}
