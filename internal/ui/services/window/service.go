package window

import (
	"sort"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/services/events"
)

// Service owns the set of materialized pages
type Service struct {
	state *State
	count int
	host  Host
	bus   events.EventBus
}

// NewService creates a window over count pages
func NewService(count int, host Host, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Materialized: make(map[int]bool),
			Stale:        make(map[int]bool),
		},
		count: count,
		host:  host,
		bus:   bus,
	}
}

// Init attaches the initial page without announcing a navigation
func (s *Service) Init(current int) {
	if !s.valid(current) || s.state.Materialized[current] {
		return
	}
	s.attach(current)
}

// Materialize attaches page index unless it is out of range or already
// present. WillMoveToPageEvent is published right before the attach.
func (s *Service) Materialize(index int) bool {
	if !s.valid(index) || s.state.Materialized[index] {
		return false
	}
	s.bus.Publish(domain.WillMoveToPageEvent{Index: index})
	s.attach(index)
	return true
}

// MarkStale records a page that should go away on the next settle
func (s *Service) MarkStale(index int) {
	if s.state.Materialized[index] {
		s.state.Stale[index] = true
	}
}

// Evict detaches page index if it is materialized
func (s *Service) Evict(index int) bool {
	if !s.state.Materialized[index] {
		return false
	}
	s.host.DetachPage(index)
	delete(s.state.Materialized, index)
	delete(s.state.Stale, index)
	s.bus.Publish(domain.PageEvictedEvent{Index: index, Loaded: len(s.state.Materialized)})
	return true
}

// EvictBeyond detaches every page at least distance away from page
func (s *Service) EvictBeyond(page, distance int) {
	for _, i := range s.Indices() {
		d := i - page
		if d < 0 {
			d = -d
		}
		if d >= distance {
			s.Evict(i)
		}
	}
}

// Settle collapses the window to the current page and forgets stale pages
func (s *Service) Settle(current int) {
	for _, i := range s.Indices() {
		if i != current {
			s.Evict(i)
		}
	}
	s.Init(current)
	s.state.Stale = make(map[int]bool)
}

// Contains reports whether page index is materialized
func (s *Service) Contains(index int) bool {
	return s.state.Materialized[index]
}

// Len returns the number of materialized pages
func (s *Service) Len() int {
	return len(s.state.Materialized)
}

// Indices returns the materialized pages in ascending order
func (s *Service) Indices() []int {
	out := make([]int, 0, len(s.state.Materialized))
	for i := range s.state.Materialized {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// StaleIndices returns the stale pages in ascending order
func (s *Service) StaleIndices() []int {
	out := make([]int, 0, len(s.state.Stale))
	for i := range s.state.Stale {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s *Service) attach(index int) {
	s.host.AttachPage(index)
	s.state.Materialized[index] = true
	s.bus.Publish(domain.PageMaterializedEvent{Index: index, Loaded: len(s.state.Materialized)})
}

func (s *Service) valid(index int) bool {
	return index >= 0 && index < s.count
}
