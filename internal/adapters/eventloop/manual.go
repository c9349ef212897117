package eventloop

import (
	"time"

	"github.com/bnema/alignment-console/internal/ports"
)

// Manual is a virtual-time scheduler for tests. Nothing runs until the test
// calls Flush, Advance or Resolve, and all of it runs on the test goroutine.
type Manual struct {
	now     time.Time
	seq     uint64
	timers  []*manualTimer
	queue   []func()
	pending []func() func()
}

var (
	_ ports.Scheduler = (*Manual)(nil)
	_ ports.Clock     = (*Manual)(nil)
)

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) Post(fn func()) {
	if fn != nil {
		m.queue = append(m.queue, fn)
	}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Go(work func() func()) {
	m.pending = append(m.pending, work)
}

// Flush runs queued callbacks, including any they queue in turn.
func (m *Manual) Flush() {
	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue = m.queue[1:]
		fn()
	}
}

// Advance moves virtual time forward, firing due timers in deadline order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	m.Flush()
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.fired = true
		next.fn()
		m.Flush()
	}
	m.now = target
	m.compact()
}

// Resolve completes every request pending at the time of the call.
func (m *Manual) Resolve() {
	for n := len(m.pending); n > 0; n-- {
		m.ResolveNext()
	}
}

// ResolveNext completes the oldest pending request and runs its continuation.
func (m *Manual) ResolveNext() bool {
	if len(m.pending) == 0 {
		return false
	}
	work := m.pending[0]
	m.pending = m.pending[1:]
	m.Post(work())
	m.Flush()
	return true
}

// ResolveLast completes the newest pending request, for out-of-order tests.
func (m *Manual) ResolveLast() bool {
	if len(m.pending) == 0 {
		return false
	}
	last := len(m.pending) - 1
	work := m.pending[last]
	m.pending = m.pending[:last]
	m.Post(work())
	m.Flush()
	return true
}

func (m *Manual) Pending() int {
	return len(m.pending)
}

// ActiveTimers counts timers that are neither fired nor stopped.
func (m *Manual) ActiveTimers() int {
	active := 0
	for _, t := range m.timers {
		if t.active() {
			active++
		}
	}
	return active
}

func (m *Manual) nextDue(limit time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if !t.active() || t.due.After(limit) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) compact() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if t.active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = kept
}

type manualTimer struct {
	due     time.Time
	seq     uint64
	fn      func()
	fired   bool
	stopped bool
}

func (t *manualTimer) active() bool {
	return !t.fired && !t.stopped
}

func (t *manualTimer) Stop() bool {
	if !t.active() {
		return false
	}
	t.stopped = true
	return true
}
