package events

import "pagedeck/internal/domain"

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{}))
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{})                          {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) {}

// Delegate holds the optional page change hooks. Either field may be nil.
type Delegate struct {
	WillMoveToPage func(index int)
	DidMoveToPage  func(index int)
}

// Attach subscribes the non-nil hooks to bus
func (d Delegate) Attach(bus EventBus) {
	if d.WillMoveToPage != nil {
		bus.Subscribe(TypeOf(domain.WillMoveToPageEvent{}), func(e interface{}) {
			d.WillMoveToPage(e.(domain.WillMoveToPageEvent).Index)
		})
	}
	if d.DidMoveToPage != nil {
		bus.Subscribe(TypeOf(domain.DidMoveToPageEvent{}), func(e interface{}) {
			d.DidMoveToPage(e.(domain.DidMoveToPageEvent).Index)
		})
	}
}
