package tui

import (
	"time"

	"console-shell/internal/layout"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduledTaskMsg delivers a deferred layout callback back into Update, so it
// runs on the same loop as every other event.
type scheduledTaskMsg struct{ id uint64 }

// teaScheduler implements layout.Scheduler on top of tea.Tick. Schedule only
// queues a command; Update drains the queue into its return value.
type teaScheduler struct {
	seq    uint64
	tasks  map[uint64]*teaTask
	queued []tea.Cmd
}

type teaTask struct {
	s    *teaScheduler
	id   uint64
	fn   func()
	done bool
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: map[uint64]*teaTask{}}
}

func (s *teaScheduler) Schedule(d time.Duration, fn func()) layout.Task {
	s.seq++
	id := s.seq
	t := &teaTask{s: s, id: id, fn: fn}
	s.tasks[id] = t
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg { return scheduledTaskMsg{id: id} }))
	return t
}

// fire runs the task for id. Stopped or unknown ids are ignored.
func (s *teaScheduler) fire(id uint64) {
	t := s.tasks[id]
	if t == nil {
		return
	}
	delete(s.tasks, id)
	t.done = true
	if t.fn != nil {
		t.fn()
	}
}

func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (t *teaTask) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.s.tasks, t.id)
	return true
}
