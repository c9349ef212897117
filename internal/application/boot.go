package application

import (
	"math/rand/v2"
	"time"

	"github.com/bnema/alignment-console/internal/ports"
)

var BootScript = []string{
	"INITIALIZING KERNEL...",
	"LOADING NEURAL NETWORKS...",
	"CHECKING BIO-SIGNATURES...",
	"CONNECTING TO SATELLITE UPLINK...",
	"ENCRYPTING CONNECTION...",
	"ESTABLISHING SECURE HANDSHAKE...",
	"ACCESS GRANTED.",
	"WELCOME, SYSADMIN.",
}

type BootState int

const (
	BootIdle BootState = iota
	BootRunning
	BootComplete
)

// BootSequence reveals whole script lines at cumulative randomized offsets
// and signals completion once, a settle delay after the last line.
type BootSequence struct {
	sched    ports.Scheduler
	rng      *rand.Rand
	minDelay time.Duration
	jitter   time.Duration
	settle   time.Duration
	script   []string

	state      BootState
	lines      []string
	timers     []ports.Timer
	onComplete func()
}

func NewBootSequence(sched ports.Scheduler, rng *rand.Rand, settings Settings, script []string) *BootSequence {
	settings = settings.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if script == nil {
		script = BootScript
	}

	return &BootSequence{
		sched:    sched,
		rng:      rng,
		minDelay: settings.BootMinDelay,
		jitter:   settings.BootJitter,
		settle:   settings.BootSettle,
		script:   append([]string(nil), script...),
	}
}

// Start is single-shot; it reports false when the sequence already ran.
func (b *BootSequence) Start(onComplete func()) bool {
	if b.state != BootIdle {
		return false
	}
	b.state = BootRunning
	b.onComplete = onComplete

	if len(b.script) == 0 {
		b.track(b.sched.AfterFunc(b.settle, b.complete))
		return true
	}

	var offset time.Duration
	for i := range b.script {
		offset += b.nextDelay()
		b.track(b.sched.AfterFunc(offset, func() { b.reveal(i) }))
	}
	return true
}

func (b *BootSequence) Cancel() {
	for _, timer := range b.timers {
		timer.Stop()
	}
	b.timers = nil
}

func (b *BootSequence) State() BootState {
	return b.state
}

func (b *BootSequence) Lines() []string {
	return append([]string(nil), b.lines...)
}

func (b *BootSequence) reveal(i int) {
	b.lines = append(b.lines, b.script[i])
	if i == len(b.script)-1 {
		b.track(b.sched.AfterFunc(b.settle, b.complete))
	}
}

func (b *BootSequence) complete() {
	if b.state == BootComplete {
		return
	}
	b.state = BootComplete
	b.timers = nil
	if b.onComplete != nil {
		b.onComplete()
	}
}

func (b *BootSequence) nextDelay() time.Duration {
	if b.jitter <= 0 {
		return b.minDelay
	}
	return b.minDelay + time.Duration(b.rng.Int64N(int64(b.jitter)))
}

func (b *BootSequence) track(timer ports.Timer) {
	b.timers = append(b.timers, timer)
}
