package layout

import (
	"slices"
	"time"
)

// Task is a scheduled callback. Stop reports whether it prevented the call.
type Task interface {
	Stop() bool
}

// Scheduler defers a callback. Implementations must run fn on the same event
// loop that drives the controller.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// VirtualClock is a Scheduler driven by explicit Advance calls.
// Nothing runs until time is advanced past a task's due time.
type VirtualClock struct {
	now   time.Duration
	seq   uint64
	tasks []*virtualTask
}

type virtualTask struct {
	clock *VirtualClock
	at    time.Duration
	seq   uint64
	fn    func()
	done  bool
}

func NewVirtualClock() *VirtualClock { return &VirtualClock{} }

// Now is the elapsed virtual time.
func (c *VirtualClock) Now() time.Duration { return c.now }

// Pending is the number of tasks that have neither fired nor been stopped.
func (c *VirtualClock) Pending() int { return len(c.tasks) }

func (c *VirtualClock) Schedule(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &virtualTask{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

// Advance moves time forward by d, firing due tasks in (due time, schedule
// order). Tasks scheduled by a firing callback run too if they fall due
// within the window. It returns the number of callbacks run.
func (c *VirtualClock) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := c.now + d
	fired := 0
	for {
		i := c.nextDue(target)
		if i < 0 {
			break
		}
		t := c.tasks[i]
		c.tasks = slices.Delete(c.tasks, i, i+1)
		c.now = t.at
		t.done = true
		if t.fn != nil {
			t.fn()
		}
		fired++
	}
	c.now = target
	return fired
}

func (c *VirtualClock) nextDue(target time.Duration) int {
	best := -1
	for i, t := range c.tasks {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < c.tasks[best].at || (t.at == c.tasks[best].at && t.seq < c.tasks[best].seq) {
			best = i
		}
	}
	return best
}

func (t *virtualTask) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	c := t.clock
	if i := slices.Index(c.tasks, t); i >= 0 {
		c.tasks = slices.Delete(c.tasks, i, i+1)
	}
	return true
}
