package layout

import (
	"testing"
	"time"
)

func TestVirtualClock_FiresInOrder(t *testing.T) {
	t.Parallel()

	c := NewVirtualClock()
	var got []string
	c.Schedule(30*time.Millisecond, func() { got = append(got, "c") })
	c.Schedule(10*time.Millisecond, func() { got = append(got, "a") })
	c.Schedule(10*time.Millisecond, func() { got = append(got, "b") })

	if n := c.Advance(20 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 fired; got %d", n)
	}
	if n := c.Advance(10 * time.Millisecond); n != 1 {
		t.Fatalf("expected 1 fired; got %d", n)
	}
	if want := "abc"; got[0]+got[1]+got[2] != want {
		t.Fatalf("order=%v; want %s", got, want)
	}
	if c.Now() != 30*time.Millisecond {
		t.Fatalf("now=%v", c.Now())
	}
}

func TestVirtualClock_Stop(t *testing.T) {
	t.Parallel()

	c := NewVirtualClock()
	fired := false
	task := c.Schedule(time.Millisecond, func() { fired = true })
	if !task.Stop() {
		t.Fatalf("first Stop should report true")
	}
	if task.Stop() {
		t.Fatalf("second Stop should report false")
	}
	c.Advance(time.Second)
	if fired {
		t.Fatalf("stopped task fired")
	}

	done := c.Schedule(0, func() {})
	c.Advance(0)
	if done.Stop() {
		t.Fatalf("Stop after firing should report false")
	}
}

func TestVirtualClock_NestedScheduleWithinWindow(t *testing.T) {
	t.Parallel()

	c := NewVirtualClock()
	count := 0
	c.Schedule(10*time.Millisecond, func() {
		count++
		c.Schedule(10*time.Millisecond, func() { count++ })
	})
	c.Advance(25 * time.Millisecond)
	if count != 2 {
		t.Fatalf("expected nested task to fire within window; count=%d", count)
	}
	if c.Pending() != 0 {
		t.Fatalf("pending=%d", c.Pending())
	}
}
