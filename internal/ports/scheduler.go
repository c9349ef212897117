package ports

import "time"

// Timer is a scoped timer. After Stop returns, the callback will not run,
// even if the deadline already passed and the callback is queued.
type Timer interface {
	Stop() bool
}

// Scheduler serializes every engine callback onto a single loop goroutine.
// All methods must be called from that goroutine.
type Scheduler interface {
	// Post queues fn to run on the loop.
	Post(fn func())
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Go runs work off the loop and posts the continuation it returns.
	// A nil continuation is skipped.
	Go(work func() func())
}
