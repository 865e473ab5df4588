package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pagedeck/internal/config"
	"pagedeck/internal/domain"
	"pagedeck/internal/eventbus"
	"pagedeck/internal/ui/coordinator"
	"pagedeck/internal/ui/services/events"
	"pagedeck/internal/ui/views"
)

const (
	statusTimeout = 3 * time.Second
	helpRows      = 1
)

// Options tune the model beyond what the config file holds
type Options struct {
	Debug bool
}

// Model is the Bubble Tea model hosting the carousel. It owns both tracks
// and feeds every offset change back into the coordinator.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	coord  *coordinator.Coordinator
	pages  *PageStore

	width  int
	height int
	layout views.Layout
	ready  bool

	// Track state
	contentOffset   float64
	menuOffset      float64
	anim            *trackAnimation
	frameScheduled  bool
	decelerating    bool
	dragging        bool
	dragStartX      int
	dragStartOffset float64
	armed           uint64

	// Chrome
	help          help.Model
	keys          keyMap
	renderer      *views.Renderer
	statusMessage string
	statusIsError bool
	showHelp      bool
	showInfo      bool
	inPagerMode   bool
	initialPage   int
	debug         bool

	cmds []tea.Cmd

	pager   *PagerOps
	program *tea.Program
}

// trackHost adapts the model to the navigation track interface
type trackHost struct{ m *Model }

func (t trackHost) SetContentOffset(offset float64, animated bool) {
	t.m.setContentOffset(offset, animated)
}

func (t trackHost) SetMenuOffset(offset float64) {
	t.m.menuOffset = offset
}

// transitionTimer adapts the model to the navigation timer interface
type transitionTimer struct{ m *Model }

func (t transitionTimer) Arm(d time.Duration, generation uint64) {
	t.m.armed = generation
	t.m.queue(tea.Tick(d, func(time.Time) tea.Msg {
		return transitionDoneMsg{generation: generation}
	}))
}

func (t transitionTimer) Cancel(generation uint64) {
	if t.m.armed == generation {
		t.m.armed = 0
	}
}

// NewModel creates the UI model for pages
func NewModel(bus eventbus.EventBus, cfg *config.Config, pages []domain.Page, opts Options) (*Model, error) {
	if len(pages) == 0 {
		return nil, domain.ErrNoPages
	}

	m := &Model{
		bus:      bus,
		config:   cfg,
		pages:    NewPageStore(pages, cfg.UI.SyntaxStyle),
		anim:     newTrackAnimation(60, time.Duration(cfg.Menu.AnimationMS)*time.Millisecond),
		help:     help.New(),
		keys:     newKeyMap(),
		pager:    NewPagerOps(),
		debug:    opts.Debug,
		renderer: views.NewRenderer(views.Palette{
			Indicator: cfg.Menu.IndicatorColor,
			Separator: cfg.Menu.SeparatorColor,
			Hairline:  cfg.Menu.HairlineColor,
		}),
	}

	coord, err := coordinator.New(coordinatorOptions(cfg, m.pages.Titles(), opts.Debug), m.pages, trackHost{m}, transitionTimer{m})
	if err != nil {
		return nil, fmt.Errorf("failed to create carousel: %w", err)
	}
	m.coord = coord
	m.coord.SetDelegate(events.Delegate{
		WillMoveToPage: m.willMoveToPage,
		DidMoveToPage:  m.didMoveToPage,
	})

	if cfg.UI.RememberLastPage && cfg.UI.LastPage > 0 && cfg.UI.LastPage < len(pages) {
		m.initialPage = cfg.UI.LastPage
	}
	m.layout = m.computeLayout()

	return m, nil
}

// coordinatorOptions maps the config file onto carousel options
func coordinatorOptions(cfg *config.Config, titles []string, debug bool) coordinator.Options {
	menu := cfg.Menu
	return coordinator.Options{
		PageCount:       len(titles),
		Titles:          titles,
		Layout:          menu.LayoutMode(),
		ItemWidth:       menu.ItemWidth,
		Measurer:        coordinator.RuneWidthMeasurer,
		Margin:          menu.Margin,
		MenuHeight:      float64(menu.Height + menu.IndicatorHeight),
		IndicatorHeight: float64(menu.IndicatorHeight),
		SelectedColor:   menu.SelectedColor,
		UnselectedColor: menu.UnselectedColor,
		IndicatorColor:  menu.IndicatorColor,
		Separator: coordinator.SeparatorConfig{
			Enabled: menu.Separators,
			Width:   1,
			Color:   menu.SeparatorColor,
		},
		AnimationDuration: time.Duration(menu.AnimationMS) * time.Millisecond,
		IndicatorFPS:      60,
		Bounce:            menu.Bounce,
		Centered:          menu.Centered,
		Debug:             debug,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Coordinator exposes the carousel engine
func (m *Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, m.flush(cmd)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return nil

	case frameMsg:
		m.frameScheduled = false
		if m.inPagerMode {
			return nil
		}
		m.stepFrame()
		return nil

	case transitionDoneMsg:
		if msg.generation != m.armed {
			return nil
		}
		m.armed = 0
		m.coord.OnTransitionTimer(msg.generation)
		return nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed for %s: %v", msg.path, msg.err)
			return m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case clearStatusMsg:
		if m.statusMessage == msg.text {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return nil
	}
	return nil
}

// queue adds a command to the batch returned from the current Update
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// flush batches queued commands and keeps the frame loop alive while
// anything is animating
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.cmds, cmd)
	m.cmds = nil
	if !m.frameScheduled && !m.inPagerMode && m.animating() {
		m.frameScheduled = true
		cmds = append(cmds, tea.Tick(m.coord.Indicator.FrameInterval(), func(time.Time) tea.Msg {
			return frameMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) animating() bool {
	return m.anim.Active() || m.coord.Indicator.Animating()
}

// stepFrame advances the content track and the indicator by one frame
func (m *Model) stepFrame() {
	if m.anim.Active() {
		offset, running := m.anim.Step()
		m.contentOffset = offset
		m.coord.OnScrollPositionChanged(domain.TrackContent, offset)
		if !running && m.decelerating {
			m.decelerating = false
			m.coord.OnDecelerationEnded(domain.TrackContent)
		}
	}
	m.coord.Indicator.Step()
}

func (m *Model) setContentOffset(offset float64, animated bool) {
	if animated && m.ready {
		m.decelerating = false
		m.anim.Start(m.contentOffset, offset)
		return
	}
	m.anim.Stop()
	m.contentOffset = offset
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.layout = m.computeLayout()
	m.pages.Resize(width, m.layout.ContentRows)

	orientation := domain.OrientationPortrait
	if width >= 2*height {
		orientation = domain.OrientationLandscape
	}
	m.coord.OnViewportGeometryChanged(float64(width), float64(m.layout.ContentRows), orientation)

	if !m.ready {
		m.ready = true
		if m.initialPage > 0 {
			m.coord.MoveToPage(m.initialPage)
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.AppReadyEvent{Pages: m.coord.PageCount()})
		}
	}
}

func (m *Model) computeLayout() views.Layout {
	return views.ComputeLayout(m.height, m.config.Menu.Height, m.config.Menu.IndicatorHeight,
		m.config.Menu.Hairline, m.config.Menu.AtBottom(), helpRows)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp || m.showInfo {
		switch msg.String() {
		case "esc", "?", "i", "q":
			m.showHelp = false
			m.showInfo = false
			return nil
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	current := m.coord.CurrentPageIndex()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.coord.MoveToPage(current - 1)
	case key.Matches(msg, m.keys.Next):
		m.coord.MoveToPage(current + 1)
	case key.Matches(msg, m.keys.First):
		m.coord.MoveToPage(0)
	case key.Matches(msg, m.keys.Last):
		m.coord.MoveToPage(m.coord.PageCount() - 1)
	case key.Matches(msg, m.keys.Jump):
		m.coord.MoveToPage(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Up):
		m.scrollBody(func(vp *viewport.Model) { vp.LineUp(1) })
	case key.Matches(msg, m.keys.Down):
		m.scrollBody(func(vp *viewport.Model) { vp.LineDown(1) })
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBody(func(vp *viewport.Model) { vp.PageUp() })
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBody(func(vp *viewport.Model) { vp.PageDown() })
	case key.Matches(msg, m.keys.Open):
		return m.openCurrentInPager()
	case key.Matches(msg, m.keys.Info):
		m.showInfo = true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return nil
}

// scrollBody applies fn to the body of the current page, if loaded
func (m *Model) scrollBody(fn func(*viewport.Model)) {
	if vp, ok := m.pages.Viewport(m.coord.CurrentPageIndex()); ok {
		fn(vp)
	}
}

func (m *Model) openCurrentInPager() tea.Cmd {
	page, ok := m.pages.Page(m.coord.CurrentPageIndex())
	if !ok || page.Source == "" {
		return m.setStatus("Nothing to open", true)
	}
	if m.program == nil {
		return m.setStatus("Pager unavailable", true)
	}
	return m.openPagerCmd(page.Source)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.layout.InMenu(msg.Y) {
			m.coord.OnTapAt(float64(msg.X)+m.menuOffset, float64(m.menuLocalY(msg.Y)))
			return
		}
		if m.layout.InContent(msg.Y) {
			m.beginDrag(msg.X)
		}

	case msg.Action == tea.MouseActionMotion && m.dragging:
		offset := m.coord.ClampContentOffset(m.dragStartOffset - float64(msg.X-m.dragStartX))
		if offset != m.contentOffset {
			m.contentOffset = offset
			m.coord.OnScrollPositionChanged(domain.TrackContent, offset)
		}

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.endDrag()

	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.scrollBody(func(vp *viewport.Model) { vp.LineUp(3) })

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.scrollBody(func(vp *viewport.Model) { vp.LineDown(3) })

	case msg.Button == tea.MouseButtonWheelLeft && msg.Action == tea.MouseActionPress:
		m.coord.MoveToPage(m.coord.CurrentPageIndex() - 1)

	case msg.Button == tea.MouseButtonWheelRight && msg.Action == tea.MouseActionPress:
		m.coord.MoveToPage(m.coord.CurrentPageIndex() + 1)
	}
}

// menuLocalY converts a screen row to menu track coordinates, where the
// label rows come first and the indicator rows last
func (m *Model) menuLocalY(y int) int {
	local := y - m.layout.MenuTop
	if m.config.Menu.AtBottom() {
		// bottom bar is drawn upside down: hairline, indicator, labels
		local -= m.layout.HairlineRows
		if local < 0 {
			return m.layout.LabelRows + m.layout.IndicatorRows
		}
		if local < m.layout.IndicatorRows {
			return m.layout.LabelRows + local
		}
		return local - m.layout.IndicatorRows
	}
	return local
}

func (m *Model) beginDrag(x int) {
	m.anim.Stop()
	m.decelerating = false
	m.dragging = true
	m.dragStartX = x
	m.dragStartOffset = m.contentOffset
	m.coord.OnDragStarted(domain.TrackContent)
}

// endDrag releases the content track and lets it settle on the nearest page
func (m *Model) endDrag() {
	m.dragging = false
	m.coord.OnDragEnded(domain.TrackContent)

	target := m.coord.SnapTarget(m.contentOffset)
	if target == m.contentOffset {
		m.coord.OnDecelerationEnded(domain.TrackContent)
		return
	}
	m.decelerating = true
	m.anim.Start(m.contentOffset, target)
}

func (m *Model) willMoveToPage(index int) {
	if m.debug {
		log.Printf("Will move to page %d", index)
	}
}

func (m *Model) didMoveToPage(index int) {
	log.Printf("Moved to page %d (%s)", index, m.coord.Title(index))
	if m.bus == nil {
		return
	}
	m.bus.Publish(eventbus.DidMoveToPageEvent{Index: index})
	if m.config.UI.RememberLastPage {
		m.bus.Publish(eventbus.ConfigChangedEvent{LastPage: index})
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		log.Printf("Error: %s: %v", e.Message, e.Err)
		return m.setStatus(e.Message, true)
	case eventbus.ConfigSavedEvent:
		if m.debug {
			return m.setStatus("Saved "+e.Path, false)
		}
	}
	return nil
}

// setStatus shows a transient status line message
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{text: text}
	})
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	c := m.coord
	g := c.Geometry()
	labels := c.Labels()

	rects := make([]domain.Rect, len(labels))
	colors := make([]string, len(labels))
	for i := range labels {
		rects[i] = g.ItemRect(i)
		colors[i] = c.Indicator.LabelColor(i)
	}

	bodies := make([]string, c.PageCount())
	loaded := make([]bool, c.PageCount())
	for i := range bodies {
		bodies[i], loaded[i] = m.pages.View(i)
	}

	current := c.CurrentPageIndex()
	return views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Layout:         m.layout,
		Labels:         labels,
		LabelRects:     rects,
		LabelColors:    colors,
		Indicator:      c.Indicator.Rect(),
		MenuOffset:     m.menuOffset,
		MenuTrackWidth: g.ContentWidth(),
		Separators:     m.config.Menu.Separators && g.Mode == domain.LayoutSegmented,
		Hairline:       m.config.Menu.Hairline,
		ContentOffset:  m.contentOffset,
		PageBodies:     bodies,
		Loaded:         loaded,
		Title:          c.Title(current),
		CurrentPage:    current,
		PageCount:      c.PageCount(),
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		HelpModel:      m.help,
		KeyMap:         m.keys,
		ShowHelp:       m.showHelp,
		ShowInfo:       m.showInfo,
		InfoContent:    m.infoContent(),
	}
}

// infoContent describes the current page and the lazy window
func (m *Model) infoContent() string {
	if !m.showInfo {
		return ""
	}
	current := m.coord.CurrentPageIndex()
	page, _ := m.pages.Page(current)
	styles := m.renderer.Styles()

	var b strings.Builder
	b.WriteString(styles.PopupTitle.Render(m.coord.Title(current)))
	b.WriteString("\n")
	source := page.Source
	if source == "" {
		source = "(none)"
	}
	fmt.Fprintf(&b, "%s %s\n", styles.PopupKey.Render("source "), source)
	fmt.Fprintf(&b, "%s %d of %d\n", styles.PopupKey.Render("page   "), current+1, m.coord.PageCount())
	fmt.Fprintf(&b, "%s %v\n", styles.PopupKey.Render("loaded "), m.coord.Window.Indices())
	fmt.Fprintf(&b, "%s %s\n", styles.PopupKey.Render("layout "), m.coord.Geometry().Mode)
	if err := m.pages.Err(current); err != nil {
		fmt.Fprintf(&b, "%s %v\n", styles.PopupKey.Render("error  "), err)
	}
	fmt.Fprintf(&b, "%s", styles.Dim.Render(m.coord.String()))
	return b.String()
}
