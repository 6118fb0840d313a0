package tui

import "console-shell/internal/layout"

// sidebarPane, contentPane and bodyMarkers are the render targets the layout
// controller applies snapshots to. View reads them back to draw the frame.

type sidebarPane struct {
	view    layout.SidebarView
	applied bool
}

func (p *sidebarPane) ApplySidebar(v layout.SidebarView) {
	p.view = v
	p.applied = true
}

type contentPane struct {
	view    layout.ContentView
	applied bool
}

func (p *contentPane) ApplyContent(v layout.ContentView) {
	p.view = v
	p.applied = true
}

type bodyMarkers struct {
	view layout.BodyView
}

func (b *bodyMarkers) ApplyBody(v layout.BodyView) { b.view = v }

// geometry is the frame split in terminal cells.
type geometry struct {
	// sidebarCols is the width of the visible sidebar; 0 when it is off-canvas.
	sidebarCols int
	// overlay is true when the sidebar is a drawer drawn over the content.
	overlay bool

	contentX    int
	contentCols int
}

func (m appModel) geometry() geometry {
	g := geometry{contentCols: m.width}
	if !m.sidebar.applied || !m.content.applied {
		return g
	}
	sb := m.sidebar.view
	if sb.InlineSizing {
		g.sidebarCols = min(pxToCols(sb.Width, m.cellWidth), m.width)
		g.contentX = min(pxToCols(m.content.view.Margin, m.cellWidth), m.width)
		g.contentCols = max(m.width-g.contentX, 0)
		return g
	}
	if sb.Shown && sb.Offset >= 0 {
		g.sidebarCols = min(pxToCols(sb.Width, m.cellWidth), m.width)
		g.overlay = true
	}
	return g
}
