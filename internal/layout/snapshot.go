package layout

// Metrics holds the sidebar geometry, in px.
type Metrics struct {
	SidebarWidth   float64
	CollapsedWidth float64

	// TabletWidth replaces SidebarWidth for Desktop widths below TabletMax.
	TabletWidth float64
	TabletMax   float64
}

func DefaultMetrics() Metrics {
	return Metrics{
		SidebarWidth:   280,
		CollapsedWidth: 60,
		TabletWidth:    220,
		TabletMax:      992,
	}
}

// expandedWidth is the full sidebar width at a given viewport width.
func (m Metrics) expandedWidth(width float64) float64 {
	if m.TabletWidth > 0 && width >= Breakpoint && width < m.TabletMax {
		return m.TabletWidth
	}
	return m.SidebarWidth
}

// SidebarView is what the sidebar target renders.
type SidebarView struct {
	Width  float64 `json:"width"`
	Offset float64 `json:"offset"`

	Collapsed bool `json:"collapsed"`
	Shown     bool `json:"shown"`

	// InlineSizing is true when the controller pins the width explicitly
	// (Desktop). On Mobile it is false and the breakpoint rules govern.
	InlineSizing bool `json:"inlineSizing"`
}

// ContentView is what the content target renders.
type ContentView struct {
	Width        float64 `json:"width"`
	Margin       float64 `json:"margin"`
	InlineSizing bool    `json:"inlineSizing"`
}

// BodyView carries the page-level markers.
type BodyView struct {
	SidebarCollapsed bool `json:"sidebarCollapsed"`
	SidebarOpen      bool `json:"sidebarOpen"`
}

// Snapshot is the rendered consequence of the current state. It is never
// stored; Compute derives it.
type Snapshot struct {
	ViewportWidth float64       `json:"viewportWidth"`
	Viewport      ViewportClass `json:"viewport"`
	State         string        `json:"state"`

	Sidebar SidebarView `json:"sidebar"`
	Content ContentView `json:"content"`
	Body    BodyView    `json:"body"`
}

// Compute derives the snapshot for a state at a viewport width.
func Compute(width float64, st State, m Metrics) Snapshot {
	if width < 0 {
		width = 0
	}
	if st == nil {
		st = initialState(Classify(width))
	}
	snap := Snapshot{
		ViewportWidth: width,
		Viewport:      st.Viewport(),
		State:         st.String(),
	}

	switch s := st.(type) {
	case DesktopState:
		w := m.expandedWidth(width)
		collapsed := s.Collapse == Collapsed
		if collapsed {
			w = m.CollapsedWidth
		}
		snap.Sidebar = SidebarView{
			Width:        w,
			Collapsed:    collapsed,
			InlineSizing: true,
		}
		snap.Content = ContentView{
			Width:        max(width-w, 0),
			Margin:       w,
			InlineSizing: true,
		}
		snap.Body.SidebarCollapsed = collapsed

	case MobileState:
		w := m.SidebarWidth
		shown := s.Drawer == Shown
		snap.Sidebar = SidebarView{Width: w, Offset: -w}
		if shown {
			snap.Sidebar.Offset = 0
			snap.Sidebar.Shown = true
		}
		// The drawer overlays the content; content keeps the full width.
		snap.Content = ContentView{Width: width}
		snap.Body.SidebarOpen = shown
	}
	return snap
}
