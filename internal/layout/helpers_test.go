package layout

import (
	"context"
	"errors"
	"testing"
)

type mapPrefs struct {
	m      map[string]string
	writes int
}

func newMapPrefs() *mapPrefs { return &mapPrefs{m: map[string]string{}} }

func (p *mapPrefs) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := p.m[key]
	return v, ok, nil
}

func (p *mapPrefs) Set(_ context.Context, key, value string) error {
	p.m[key] = value
	p.writes++
	return nil
}

var errStorageDisabled = errors.New("storage disabled")

type brokenPrefs struct{}

func (brokenPrefs) Get(context.Context, string) (string, bool, error) {
	return "", false, errStorageDisabled
}

func (brokenPrefs) Set(context.Context, string, string) error { return errStorageDisabled }

type harness struct {
	rec   *Recorder
	prefs Preferences
	clock *VirtualClock
	c     *Controller
}

// load simulates a page load: fresh targets and controller, shared storage.
func load(t *testing.T, prefs Preferences, width float64, opts ...Option) *harness {
	t.Helper()
	h := &harness{rec: &Recorder{}, prefs: prefs, clock: NewVirtualClock()}
	h.c = NewController(h.rec.Surfaces(), prefs, h.clock, opts...)
	h.c.Initialize(width)
	return h
}

func mustDesktop(t *testing.T, c *Controller) DesktopState {
	t.Helper()
	ds, ok := c.State().(DesktopState)
	if !ok {
		t.Fatalf("expected desktop state; got %v", c.State())
	}
	return ds
}

func mustMobile(t *testing.T, c *Controller) MobileState {
	t.Helper()
	ms, ok := c.State().(MobileState)
	if !ok {
		t.Fatalf("expected mobile state; got %v", c.State())
	}
	return ms
}
