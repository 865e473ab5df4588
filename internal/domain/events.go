package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventWillMoveToPage   EventType = "WillMoveToPage"
	EventDidMoveToPage    EventType = "DidMoveToPage"
	EventPageMaterialized EventType = "PageMaterialized"
	EventPageEvicted      EventType = "PageEvicted"
	EventViewportChanged  EventType = "ViewportChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
	EventAppReady         EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// WillMoveToPageEvent is emitted right before a page is materialized as part of a navigation
type WillMoveToPageEvent struct {
	Index int
}

func (e WillMoveToPageEvent) Type() EventType { return EventWillMoveToPage }

// DidMoveToPageEvent is emitted once a drag or tap navigation has settled on Index
type DidMoveToPageEvent struct {
	Index int
}

func (e DidMoveToPageEvent) Type() EventType { return EventDidMoveToPage }

// PageMaterializedEvent is emitted after a page was attached to the content track
type PageMaterializedEvent struct {
	Index  int
	Loaded int // materialized pages after the attach
}

func (e PageMaterializedEvent) Type() EventType { return EventPageMaterialized }

// PageEvictedEvent is emitted after a page was detached from the content track
type PageEvictedEvent struct {
	Index  int
	Loaded int
}

func (e PageEvictedEvent) Type() EventType { return EventPageEvicted }

// ViewportChangedEvent is emitted when the host viewport geometry changes
type ViewportChangedEvent struct {
	Width       float64
	Height      float64
	Orientation Orientation
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Pages int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	LastPage int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	Pages int
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
