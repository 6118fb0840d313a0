package layout

import "fmt"

// StorageKey is the durable preference key holding the desktop collapse state.
const StorageKey = "sidebarState"

// CollapseState is the desktop-only dimension. It survives reloads.
type CollapseState int

const (
	Expanded CollapseState = iota
	Collapsed
)

func (c CollapseState) String() string {
	if c == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

func (c CollapseState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c CollapseState) Toggle() CollapseState {
	if c == Collapsed {
		return Expanded
	}
	return Collapsed
}

// ParseCollapseState recognizes exactly the two persisted values.
// Anything else reports ok=false and callers treat it as absent.
func ParseCollapseState(s string) (CollapseState, bool) {
	switch s {
	case "collapsed":
		return Collapsed, true
	case "expanded":
		return Expanded, true
	default:
		return Expanded, false
	}
}

// DrawerState is the mobile-only dimension. It is never persisted.
type DrawerState int

const (
	Hidden DrawerState = iota
	Shown
)

func (d DrawerState) String() string {
	if d == Shown {
		return "shown"
	}
	return "hidden"
}

func (d DrawerState) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d DrawerState) Toggle() DrawerState {
	if d == Shown {
		return Hidden
	}
	return Shown
}

// State is the active layout dimension. Its concrete type is selected by the
// viewport class, so a collapsed sidebar with an open drawer cannot be expressed.
type State interface {
	Viewport() ViewportClass
	fmt.Stringer
	isState()
}

// DesktopState governs the layout while the viewport is Desktop.
type DesktopState struct {
	Collapse CollapseState
}

func (DesktopState) Viewport() ViewportClass { return Desktop }
func (s DesktopState) String() string       { return "desktop/" + s.Collapse.String() }
func (DesktopState) isState()               {}

// MobileState governs the layout while the viewport is Mobile.
type MobileState struct {
	Drawer DrawerState
}

func (MobileState) Viewport() ViewportClass { return Mobile }
func (s MobileState) String() string       { return "mobile/" + s.Drawer.String() }
func (MobileState) isState()               {}

// initialState is the state a fresh load (or a breakpoint crossing) lands in
// for the given class, before any persisted preference is consulted.
func initialState(vc ViewportClass) State {
	if vc == Desktop {
		return DesktopState{Collapse: Expanded}
	}
	return MobileState{Drawer: Hidden}
}
