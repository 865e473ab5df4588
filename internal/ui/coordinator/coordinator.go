package coordinator

import (
	"fmt"
	"log"
	"math"
	"strings"

	"pagedeck/internal/domain"
	"pagedeck/internal/ui/logic"
	"pagedeck/internal/ui/services/events"
	"pagedeck/internal/ui/services/indicator"
	"pagedeck/internal/ui/services/navigation"
	"pagedeck/internal/ui/services/window"
)

// overscrollFraction is how far past either end a bouncing track may travel
const overscrollFraction = 0.25

// Coordinator manages all UI services and routes host notifications to them
type Coordinator struct {
	// Services
	Navigation *navigation.Service
	Window     *window.Service
	Indicator  *indicator.Service

	// Dependencies
	bus    *events.Bus
	opts   Options
	titles []string
}

// New validates opts and wires the services. host, tracks and timer are
// called synchronously from the notification methods.
func New(opts Options, host window.Host, tracks navigation.Tracks, timer navigation.Timer) (*Coordinator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Layout == domain.LayoutSegmented {
		opts.Margin = 0
	}

	c := &Coordinator{
		bus:    events.NewBus(),
		opts:   opts,
		titles: make([]string, opts.PageCount),
	}
	for i := range c.titles {
		if i < len(opts.Titles) && strings.TrimSpace(opts.Titles[i]) != "" {
			c.titles[i] = opts.Titles[i]
		} else {
			c.titles[i] = domain.DefaultTitle(i)
		}
	}

	g := c.buildGeometry()
	colors := indicator.Colors{
		Selected:   parseColor(opts.SelectedColor, "#ffffff"),
		Unselected: parseColor(opts.UnselectedColor, "#666666"),
	}

	c.Window = window.NewService(opts.PageCount, host, c.bus)
	c.Indicator = indicator.NewService(g, colors, indicator.DefaultDuration, opts.IndicatorFPS)
	c.Navigation = navigation.NewService(navigation.Config{
		PageCount:         opts.PageCount,
		AnimationDuration: opts.AnimationDuration,
		Orientation:       opts.Orientation,
		Debug:             opts.Debug,
	}, g, c.Window, c.Indicator, tracks, timer, c.bus)

	c.subscribeToEvents()
	c.Window.Init(0)

	return c, nil
}

func (c *Coordinator) buildGeometry() logic.Geometry {
	g := logic.Geometry{
		Mode:            c.opts.EffectiveLayout(),
		ItemCount:       c.opts.PageCount,
		ViewportWidth:   c.opts.ViewportWidth,
		ItemWidth:       c.opts.ItemWidth,
		Margin:          c.opts.Margin,
		MenuHeight:      c.opts.MenuHeight,
		IndicatorHeight: c.opts.IndicatorHeight,
	}
	if g.Mode == domain.LayoutTextFitted {
		g.ItemWidths = make([]float64, len(c.titles))
		for i, title := range c.titles {
			g.ItemWidths[i] = c.opts.Measurer.Measure(title)
		}
	}
	return g
}

// subscribeToEvents sets up event handlers
func (c *Coordinator) subscribeToEvents() {
	if !c.opts.Debug {
		return
	}
	c.bus.Subscribe(events.TypeOf(domain.PageMaterializedEvent{}), func(e interface{}) {
		ev := e.(domain.PageMaterializedEvent)
		log.Printf("page %d materialized (%d loaded)", ev.Index, ev.Loaded)
	})
	c.bus.Subscribe(events.TypeOf(domain.PageEvictedEvent{}), func(e interface{}) {
		ev := e.(domain.PageEvictedEvent)
		log.Printf("page %d evicted (%d loaded)", ev.Index, ev.Loaded)
	})
}

// SetDelegate attaches the optional page change hooks
func (c *Coordinator) SetDelegate(d events.Delegate) {
	d.Attach(c.bus)
}

// Bus returns the synchronous UI bus the services publish on
func (c *Coordinator) Bus() events.EventBus {
	return c.bus
}

// Options returns the effective construction options
func (c *Coordinator) Options() Options {
	return c.opts
}

// OnScrollPositionChanged handles a track offset change. Only the content
// track drives navigation; the menu track follows it.
func (c *Coordinator) OnScrollPositionChanged(track domain.TrackID, offset float64) {
	if track != domain.TrackContent {
		return
	}
	c.Navigation.ScrollChanged(offset)
}

// OnDragStarted handles the start of a user drag
func (c *Coordinator) OnDragStarted(track domain.TrackID) {
	if track == domain.TrackContent {
		c.Navigation.DragStarted()
	}
}

// OnDragEnded handles the release of a user drag
func (c *Coordinator) OnDragEnded(track domain.TrackID) {
	if track == domain.TrackContent {
		c.Navigation.DragReleased()
	}
}

// OnDecelerationEnded handles the end of post-release motion
func (c *Coordinator) OnDecelerationEnded(track domain.TrackID) {
	if track == domain.TrackContent {
		c.Navigation.DecelerationEnded()
	}
}

// OnTapAt handles a tap in menu track coordinates
func (c *Coordinator) OnTapAt(x, y float64) {
	c.Navigation.Tap(x, y)
}

// OnViewportGeometryChanged handles a host resize
func (c *Coordinator) OnViewportGeometryChanged(width, height float64, orientation domain.Orientation) {
	c.opts.ViewportWidth = width
	c.opts.ViewportHeight = height
	c.Navigation.ViewportChanged(width, height, orientation)
}

// OnTransitionTimer delivers a fired completion timer
func (c *Coordinator) OnTransitionTimer(generation uint64) bool {
	return c.Navigation.CompleteTransition(generation)
}

// MoveToPage navigates to index with an animated transition
func (c *Coordinator) MoveToPage(index int) {
	c.Navigation.MoveToPage(index)
}

// CurrentPageIndex returns the current page
func (c *Coordinator) CurrentPageIndex() int {
	return c.Navigation.CurrentPage()
}

// PageCount returns the number of pages
func (c *Coordinator) PageCount() int {
	return c.opts.PageCount
}

// Title returns the label text of page index
func (c *Coordinator) Title(index int) string {
	if index < 0 || index >= len(c.titles) {
		return ""
	}
	return c.titles[index]
}

// Geometry returns the current layout
func (c *Coordinator) Geometry() logic.Geometry {
	return c.Navigation.Geometry()
}

// Labels returns the menu labels with selection derived from the current page
func (c *Coordinator) Labels() []domain.MenuLabel {
	g := c.Geometry()
	current := c.CurrentPageIndex()
	labels := make([]domain.MenuLabel, len(c.titles))
	for i, title := range c.titles {
		labels[i] = domain.MenuLabel{
			Index:    i,
			Text:     title,
			Width:    g.LabelWidth(i),
			Selected: i == current,
		}
	}
	return labels
}

// ClampContentOffset limits a dragged content offset to the track, allowing
// a short overscroll when bounce is enabled.
func (c *Coordinator) ClampContentOffset(offset float64) float64 {
	g := c.Geometry()
	lo, hi := 0.0, g.MaxPageOffset()
	if c.opts.Bounce {
		slack := g.ViewportWidth * overscrollFraction
		lo, hi = lo-slack, hi+slack
	}
	return math.Max(lo, math.Min(hi, offset))
}

// SnapTarget is the resting offset for a released drag at offset
func (c *Coordinator) SnapTarget(offset float64) float64 {
	g := c.Geometry()
	page := logic.PageForOffset(offset, g.ViewportWidth)
	if page < 0 {
		page = 0
	}
	if page >= c.opts.PageCount {
		page = c.opts.PageCount - 1
	}
	return g.PageOffset(page)
}

// String summarises the coordinator state for logs
func (c *Coordinator) String() string {
	st := c.Navigation.State()
	return fmt.Sprintf("page %d/%d phase=%s window=%v", st.CurrentIndex, c.opts.PageCount, st.Phase, c.Window.Indices())
}
