package ui

import (
	"pagedeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// frameMsg advances track and indicator animations by one frame
type frameMsg struct{}

// transitionDoneMsg is delivered when an armed completion timer fires
type transitionDoneMsg struct {
	generation uint64
}

// pagerMsg contains the result of viewing a page in the pager
type pagerMsg struct {
	path string
	err  error
}

// clearStatusMsg clears the status line if it still shows the given text
type clearStatusMsg struct {
	text string
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
