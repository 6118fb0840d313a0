package tui

import (
	"strings"
	"time"

	"console-shell/internal/layout"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	toggleCols     = 3
	sidebarHeadRow = 0
	firstNavRow    = 2
)

// Options configures the console.
type Options struct {
	Prefs         layout.Preferences
	Logger        *zap.Logger
	Metrics       layout.Metrics
	NavCloseDelay time.Duration
	// CellWidthPx is how many px one terminal column stands for.
	CellWidthPx float64
}

type appModel struct {
	ctl   *layout.Controller
	sched *teaScheduler
	log   *zap.Logger

	sidebar *sidebarPane
	content *contentPane
	body    *bodyMarkers

	keys keyMap
	help help.Model

	cellWidth float64
	width     int
	height    int
	started   bool

	cursor int
	active int
}

func newAppModel(opts Options) appModel {
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = 8
	}
	if opts.Metrics == (layout.Metrics{}) {
		opts.Metrics = layout.DefaultMetrics()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := appModel{
		sched:     newTeaScheduler(),
		log:       logger,
		sidebar:   &sidebarPane{},
		content:   &contentPane{},
		body:      &bodyMarkers{},
		keys:      defaultKeyMap(),
		help:      help.New(),
		cellWidth: opts.CellWidthPx,
	}
	m.ctl = layout.NewController(
		layout.Surfaces{Sidebar: m.sidebar, Content: m.content, Body: m.body},
		opts.Prefs,
		m.sched,
		layout.WithLogger(logger),
		layout.WithMetrics(opts.Metrics),
		layout.WithNavCloseDelay(opts.NavCloseDelay),
	)
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) viewportPx(cols int) float64 {
	return float64(cols) * m.cellWidth
}

func (m appModel) viewport() layout.ViewportClass {
	if st := m.ctl.State(); st != nil {
		return st.Viewport()
	}
	return layout.Classify(m.viewportPx(m.width))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		px := m.viewportPx(msg.Width)
		// The first size report is the page load.
		if !m.started {
			m.started = true
			m.ctl.Initialize(px)
		} else {
			m.ctl.HandleResize(px)
		}
		return m, m.sched.drain()

	case scheduledTaskMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Close):
		m.ctl.CloseMobile()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(consoleSections)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		m.activate(m.cursor)
	}
	return m, m.sched.drain()
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	g := m.geometry()
	onToggle := msg.Y == sidebarHeadRow && msg.X < toggleCols
	insideSidebar := g.sidebarCols > 0 && msg.X < g.sidebarCols

	// Every pointer interaction is offered to the drawer first; it ignores
	// the call unless it is open on mobile.
	m.ctl.HandleOutsideInteraction(insideSidebar, onToggle)

	switch {
	case onToggle:
		m.toggle()
	case insideSidebar:
		if idx := msg.Y - firstNavRow; idx >= 0 && idx < len(consoleSections) {
			m.cursor = idx
			m.activate(idx)
		}
	}
	return m, m.sched.drain()
}

// toggle is the single toggle control: it collapses the rail on desktop and
// opens/closes the drawer on mobile.
func (m *appModel) toggle() {
	if m.viewport() == layout.Desktop {
		m.ctl.ToggleDesktop()
		return
	}
	m.ctl.ToggleMobile()
}

func (m *appModel) activate(idx int) {
	if idx < 0 || idx >= len(consoleSections) {
		return
	}
	m.active = idx
	m.log.Debug("console: section opened", zap.String("section", consoleSections[idx].id))
	m.ctl.HandleNavigationActivated()
}

func (m appModel) View() string {
	if !m.started || m.width <= 0 || m.height <= 0 {
		return "Loading…"
	}
	g := m.geometry()

	if g.overlay {
		base := m.renderContent(m.width, m.height)
		drawer := m.renderSidebar(g.sidebarCols, m.height)
		return overlayLeft(base, drawer, g.sidebarCols)
	}
	if g.sidebarCols == 0 {
		return m.renderContent(m.width, m.height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(g.sidebarCols, m.height),
		m.renderContent(g.contentCols, m.height),
	)
}

func (m appModel) renderSidebar(width, height int) string {
	if width <= 0 {
		return ""
	}
	rail := m.sidebar.view.Collapsed
	lines := make([]string, 0, height)

	head := styleToggle().Render(" " + glyphToggle() + " ")
	if !rail {
		head += styleSidebarHeader().Render(fitLine(" Console", max(width-toggleCols, 0)))
	}
	lines = append(lines, fitLine(head, width))
	lines = append(lines, styleSidebar().Render(strings.Repeat(glyphHRule(), width)))

	for i, s := range consoleSections {
		label := " " + s.glyph()
		if !rail {
			label += "  " + s.label
		}
		bar := " "
		if i == m.active {
			bar = glyphActiveBar()
		}
		row := fitLine(bar+label, width)
		switch {
		case i == m.active:
			row = styleSidebarActive().Render(row)
		case i == m.cursor:
			row = styleSidebarCursor().Render(row)
		default:
			row = styleSidebar().Render(row)
		}
		lines = append(lines, row)
	}
	for len(lines) < height {
		lines = append(lines, styleSidebar().Render(strings.Repeat(" ", width)))
	}
	return normalizePane(strings.Join(lines, "\n"), width, height)
}

func (m appModel) renderContent(width, height int) string {
	if width <= 0 {
		return ""
	}
	sec := consoleSections[m.active]
	g := m.geometry()

	header := " " + "Console " + glyphBreadcrumbSep() + " " + sec.label
	// The toggle control sits at the far left of the frame. When the sidebar
	// is visible its header carries it instead.
	if g.sidebarCols == 0 {
		header = styleToggle().Render(" "+glyphToggle()+" ") + header
	}
	status := m.ctl.State()
	if status != nil {
		header = fitLine(header, max(width-len(status.String())-1, 0)) + styleMuted().Render(status.String()) + " "
	}

	lines := []string{
		styleHeader().Render(fitLine(header, width)),
		styleMuted().Render(strings.Repeat(glyphHRule(), width)),
	}

	bodyHeight := max(height-len(lines)-1, 0)
	var body string
	if m.body.view.SidebarOpen {
		// Drawer overlay: dim the page underneath.
		body = styleMuted().Render(strings.TrimSpace(sec.body))
	} else {
		body = renderMarkdown(sec.body, max(width-2, 10))
	}
	lines = append(lines, normalizePane(indent(body, 1), width, bodyHeight))
	lines = append(lines, fitLine(m.help.View(m.keys), width))

	return normalizePane(strings.Join(lines, "\n"), width, height)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
