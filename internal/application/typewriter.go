package application

import (
	"time"

	"github.com/bnema/alignment-console/internal/ports"
)

// Typewriter reveals a source string one rune per tick. Starting a new
// source cancels the reveal in flight.
type Typewriter struct {
	sched  ports.Scheduler
	delay  time.Duration
	source []rune
	shown  int
	gen    uint64
	timer  ports.Timer
}

func NewTypewriter(sched ports.Scheduler, delay time.Duration) *Typewriter {
	if delay <= 0 {
		delay = DefaultTypewriterDelay
	}
	return &Typewriter{sched: sched, delay: delay}
}

func (t *Typewriter) Start(source string) {
	t.Cancel()
	t.source = []rune(source)
	t.shown = 0
	t.schedule()
}

// Cancel stops the reveal; the displayed prefix is kept as is.
func (t *Typewriter) Cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

func (t *Typewriter) Displayed() string {
	return string(t.source[:t.shown])
}

func (t *Typewriter) Source() string {
	return string(t.source)
}

func (t *Typewriter) Complete() bool {
	return t.shown == len(t.source)
}

func (t *Typewriter) Running() bool {
	return t.timer != nil
}

func (t *Typewriter) schedule() {
	if t.shown >= len(t.source) {
		return
	}
	gen := t.gen
	t.timer = t.sched.AfterFunc(t.delay, func() { t.tick(gen) })
}

func (t *Typewriter) tick(gen uint64) {
	if gen != t.gen {
		return
	}
	t.timer = nil
	if t.shown >= len(t.source) {
		return
	}
	t.shown++
	t.schedule()
}
