// Package layout is the responsive layout state machine behind the console
// shell: it decides whether the sidebar is expanded, collapsed, shown as a
// drawer or hidden, from the viewport width, user actions and the persisted
// preference, and pushes the resulting Snapshot to its render targets.
//
// A Controller is driven from a single event loop and is not safe for
// concurrent use.
package layout

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultNavCloseDelay = 100 * time.Millisecond
	defaultStoreTimeout  = 2 * time.Second
)

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithNavCloseDelay sets how long the drawer stays open after a navigation
// link is activated. Zero still defers the close to the scheduler.
func WithNavCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.navDelay = d
		}
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.storeTimeout = d
		}
	}
}

type Controller struct {
	surfaces Surfaces
	prefs    Preferences
	sched    Scheduler

	log          *zap.Logger
	metrics      Metrics
	navDelay     time.Duration
	storeTimeout time.Duration

	initialized bool
	width       float64
	state       State

	pendingClose Task

	applied bool
	last    Snapshot
}

// NewController wires a controller to its render targets, durable preference
// storage and scheduler. prefs and sched may be nil: without prefs nothing is
// persisted, without sched navigation never closes the drawer. Without a
// sidebar or content target the controller never leaves its zero state.
func NewController(surfaces Surfaces, prefs Preferences, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		surfaces:     surfaces,
		prefs:        prefs,
		sched:        sched,
		log:          zap.NewNop(),
		metrics:      DefaultMetrics(),
		navDelay:     DefaultNavCloseDelay,
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the active state, or nil before Initialize.
func (c *Controller) State() State { return c.state }

func (c *Controller) Width() float64 { return c.width }

// Snapshot returns the last snapshot pushed to the targets.
func (c *Controller) Snapshot() (Snapshot, bool) { return c.last, c.applied }

// CloseScheduled reports whether a deferred drawer close is pending.
func (c *Controller) CloseScheduled() bool { return c.pendingClose != nil }

// Close drops any pending deferred work, e.g. when the page goes away.
func (c *Controller) Close() {
	c.cancelPendingClose()
}

// Initialize derives the state for a fresh page load. It is meant to run once;
// a repeated call re-derives everything from scratch.
func (c *Controller) Initialize(width float64) {
	if c.targetMissing("initialize") {
		return
	}
	if c.initialized {
		c.log.Warn("layout: initialize called again", zap.Float64("width", width))
	}
	c.initialized = true
	c.width = width
	c.cancelPendingClose()

	vc := Classify(width)
	switch vc {
	case Desktop:
		c.state = DesktopState{Collapse: c.loadCollapse()}
	default:
		// The persisted desktop preference is left in storage untouched.
		c.state = MobileState{Drawer: Hidden}
	}
	c.log.Debug("layout: initialized",
		zap.Float64("width", width),
		zap.Stringer("state", c.state),
	)
	c.apply(true)
}

// ToggleDesktop flips collapsed/expanded and persists the result before
// returning. Outside Desktop it does nothing.
func (c *Controller) ToggleDesktop() {
	if c.targetMissing("toggle desktop") {
		return
	}
	ds, ok := c.state.(DesktopState)
	if !ok {
		c.log.Debug("layout: desktop toggle ignored", zap.Stringer("state", c.state))
		return
	}
	ds.Collapse = ds.Collapse.Toggle()
	c.state = ds
	c.apply(true)
	c.saveCollapse(ds.Collapse)
}

// ToggleMobile flips the drawer. It never touches storage and has no effect
// while the viewport is Desktop.
func (c *Controller) ToggleMobile() {
	if c.targetMissing("toggle mobile") {
		return
	}
	ms, ok := c.state.(MobileState)
	if !ok {
		return
	}
	ms.Drawer = ms.Drawer.Toggle()
	c.state = ms
	c.apply(true)
}

// CloseMobile hides the drawer. Calling it while already hidden changes nothing.
func (c *Controller) CloseMobile() {
	if c.targetMissing("close mobile") {
		return
	}
	ms, ok := c.state.(MobileState)
	if !ok || ms.Drawer == Hidden {
		return
	}
	c.state = MobileState{Drawer: Hidden}
	c.apply(true)
}

// HandleOutsideInteraction dismisses an open drawer when a pointer interaction
// lands outside both the sidebar and its toggle control.
func (c *Controller) HandleOutsideInteraction(insideSidebar, onToggle bool) {
	if c.targetMissing("outside interaction") {
		return
	}
	ms, ok := c.state.(MobileState)
	if !ok || ms.Drawer != Shown {
		return
	}
	if insideSidebar || onToggle {
		return
	}
	c.CloseMobile()
}

// HandleNavigationActivated schedules the drawer to close after the
// navigation delay. A newer activation replaces a pending one.
func (c *Controller) HandleNavigationActivated() {
	if c.targetMissing("navigation") {
		return
	}
	if _, ok := c.state.(MobileState); !ok {
		return
	}
	if c.sched == nil {
		c.log.Debug("layout: no scheduler; navigation close skipped")
		return
	}
	c.cancelPendingClose()
	var task Task
	task = c.sched.Schedule(c.navDelay, func() {
		if c.pendingClose == task {
			c.pendingClose = nil
		}
		c.CloseMobile()
	})
	c.pendingClose = task
}

// HandleResize reclassifies the viewport. Crossing the breakpoint resets the
// drawer and re-reads the desktop preference; staying in the same class keeps
// the state and only refreshes the geometry.
func (c *Controller) HandleResize(width float64) {
	if c.targetMissing("resize") {
		return
	}
	if !c.initialized || c.state == nil {
		c.Initialize(width)
		return
	}
	prev := c.state.Viewport()
	next := Classify(width)
	c.width = width

	if prev == next {
		c.apply(false)
		return
	}

	c.cancelPendingClose()
	switch next {
	case Desktop:
		c.state = DesktopState{Collapse: c.loadCollapse()}
	default:
		c.state = MobileState{Drawer: Hidden}
	}
	c.log.Debug("layout: breakpoint crossed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Float64("width", width),
		zap.Stringer("state", c.state),
	)
	c.apply(true)
}

// targetMissing reports, and logs, an operation dropped because the sidebar
// or content target is absent. State, storage and timers stay untouched.
func (c *Controller) targetMissing(op string) bool {
	if c.surfaces.ready() {
		return false
	}
	c.log.Debug("layout: render target missing; operation skipped", zap.String("op", op))
	return true
}

// apply pushes the current snapshot. Unless force is set, an unchanged
// snapshot is not re-applied.
func (c *Controller) apply(force bool) {
	snap := Compute(c.width, c.state, c.metrics)
	if !force && c.applied && snap == c.last {
		return
	}
	c.surfaces.Sidebar.ApplySidebar(snap.Sidebar)
	c.surfaces.Content.ApplyContent(snap.Content)
	if c.surfaces.Body != nil {
		c.surfaces.Body.ApplyBody(snap.Body)
	}
	c.last = snap
	c.applied = true
}

func (c *Controller) cancelPendingClose() {
	if c.pendingClose == nil {
		return
	}
	c.pendingClose.Stop()
	c.pendingClose = nil
}

func (c *Controller) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.storeTimeout)
}

// loadCollapse reads the persisted preference. Missing storage, read errors
// and unrecognized values all fall back to Expanded.
func (c *Controller) loadCollapse() CollapseState {
	if c.prefs == nil {
		return Expanded
	}
	ctx, cancel := c.storeContext()
	defer cancel()

	v, ok, err := c.prefs.Get(ctx, StorageKey)
	if err != nil {
		c.log.Warn("layout: read sidebar preference", zap.Error(err))
		return Expanded
	}
	if !ok {
		return Expanded
	}
	st, ok := ParseCollapseState(v)
	if !ok {
		c.log.Debug("layout: ignoring unrecognized sidebar preference", zap.String("value", v))
		return Expanded
	}
	return st
}

func (c *Controller) saveCollapse(st CollapseState) {
	if c.prefs == nil {
		return
	}
	ctx, cancel := c.storeContext()
	defer cancel()

	if err := c.prefs.Set(ctx, StorageKey, st.String()); err != nil {
		c.log.Warn("layout: persist sidebar preference",
			zap.String("value", st.String()),
			zap.Error(err),
		)
	}
}
