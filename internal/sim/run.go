package sim

import (
	"context"
	"fmt"
	"time"

	"console-shell/internal/layout"

	"go.uber.org/zap"
)

// Result is the outcome of one step.
type Result struct {
	Index    int             `json:"index"`
	Step     string          `json:"step"`
	At       string          `json:"at"`
	Fired    int             `json:"fired,omitempty"`
	State    string          `json:"state"`
	Snapshot layout.Snapshot `json:"snapshot"`
	Pending  bool            `json:"closePending,omitempty"`
}

// Runner drives a fresh controller per page load over shared preferences and
// a shared virtual clock.
type Runner struct {
	Prefs   layout.Preferences
	Metrics layout.Metrics
	// NavCloseDelay overrides layout.DefaultNavCloseDelay when set; zero is a
	// valid delay.
	NavCloseDelay *time.Duration
	Logger        *zap.Logger

	navDelay time.Duration
	clock    *layout.VirtualClock
	rec   *layout.Recorder
	ctl   *layout.Controller
}

func (r *Runner) load(width float64) {
	if r.ctl != nil {
		r.ctl.Close()
	}
	r.rec = &layout.Recorder{}
	r.ctl = layout.NewController(r.rec.Surfaces(), r.Prefs, r.clock,
		layout.WithLogger(r.Logger),
		layout.WithMetrics(r.Metrics),
		layout.WithNavCloseDelay(r.navDelay),
	)
	r.ctl.Initialize(width)
}

// Run executes every step and returns one result per step.
func (r *Runner) Run(ctx context.Context, sc *Script) ([]Result, error) {
	if sc == nil {
		return nil, fmt.Errorf("nil script")
	}
	if r.Metrics == (layout.Metrics{}) {
		r.Metrics = layout.DefaultMetrics()
	}
	r.navDelay = layout.DefaultNavCloseDelay
	if r.NavCloseDelay != nil {
		r.navDelay = *r.NavCloseDelay
	}
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	r.clock = layout.NewVirtualClock()
	r.ctl = nil

	if sc.Persisted != "" && r.Prefs != nil {
		if err := r.Prefs.Set(ctx, layout.StorageKey, sc.Persisted); err != nil {
			return nil, fmt.Errorf("seed preference: %w", err)
		}
	}

	out := make([]Result, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if r.ctl == nil && st.Op != OpInit && st.Op != OpReload {
			return out, fmt.Errorf("step %d: %s before init", i+1, st.Op)
		}
		fired := 0
		switch st.Op {
		case OpInit, OpReload:
			r.load(st.Width)
		case OpResize:
			r.ctl.HandleResize(st.Width)
		case OpToggleDesktop:
			r.ctl.ToggleDesktop()
		case OpToggleMobile:
			r.ctl.ToggleMobile()
		case OpCloseMobile:
			r.ctl.CloseMobile()
		case OpOutside:
			r.ctl.HandleOutsideInteraction(st.InsideSidebar, st.OnToggle)
		case OpNavigate:
			r.ctl.HandleNavigationActivated()
		case OpAdvance:
			fired = r.clock.Advance(st.Duration)
		default:
			return out, fmt.Errorf("step %d: unknown op %q", i+1, st.Op)
		}

		snap, _ := r.ctl.Snapshot()
		out = append(out, Result{
			Index:    i + 1,
			Step:     st.String(),
			At:       r.clock.Now().String(),
			Fired:    fired,
			State:    r.ctl.State().String(),
			Snapshot: snap,
			Pending:  r.ctl.CloseScheduled(),
		})
	}
	return out, nil
}
