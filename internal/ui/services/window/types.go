package window

// State holds the materialized page window
type State struct {
	Materialized map[int]bool
	Stale        map[int]bool // left behind by a page change, evicted on settle
}

// Host attaches and detaches page content. Calls are synchronous and must
// complete before the next scroll notification is processed.
type Host interface {
	AttachPage(index int)
	DetachPage(index int)
}
