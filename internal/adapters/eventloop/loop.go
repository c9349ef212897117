package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/alignment-console/internal/ports"
)

var ErrClosed = errors.New("event loop closed")

// Loop is an unbounded FIFO of callbacks drained by exactly one goroutine,
// either through Run or by an owner pulling with Next.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

var _ ports.Scheduler = (*Loop)(nil)

func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	l.signal()
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) ports.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.done {
				return
			}
			t.done = true
			fn()
		})
	})
	return t
}

func (l *Loop) Go(work func() func()) {
	go func() {
		if next := work(); next != nil {
			l.Post(next)
		}
	}()
}

// Next blocks until a callback is queued, the loop is closed or ctx ends.
func (l *Loop) Next(ctx context.Context) (func(), error) {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()
			return fn, nil
		}
		closed := l.closed
		l.mu.Unlock()

		if closed {
			return nil, ErrClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.wake:
		}
	}
}

// Run drains the loop on the calling goroutine until ctx ends or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		fn, err := l.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
		fn()
	}
}

// Close drops queued callbacks and rejects new ones.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()

	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// done is only touched on the loop goroutine.
type loopTimer struct {
	timer *time.Timer
	done  bool
}

func (t *loopTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}
