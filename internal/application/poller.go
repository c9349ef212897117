package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/ports"
)

type PhaseSource interface {
	Phase() domain.SessionPhase
}

// Poller pulls the authoritative snapshot on a fixed cadence while the
// session is active. Failures never change the cadence and never reach the
// operator log; responses older than the last applied one are discarded.
type Poller struct {
	sched    ports.Scheduler
	client   ports.MothershipClient
	world    *WorldStore
	phase    PhaseSource
	interval time.Duration
	logger   *slog.Logger
	onApply  func(domain.WorldSnapshot)

	ctx     context.Context
	cancel  context.CancelFunc
	timer   ports.Timer
	running bool
	issued  uint64
	applied uint64
}

func NewPoller(sched ports.Scheduler, client ports.MothershipClient, world *WorldStore, phase PhaseSource, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Poller{
		sched:    sched,
		client:   client,
		world:    world,
		phase:    phase,
		interval: interval,
		logger:   loggerOrDiscard(logger),
	}
}

func (p *Poller) OnApply(fn func(domain.WorldSnapshot)) {
	p.onApply = fn
}

// Start issues one request immediately and then one per interval.
func (p *Poller) Start(ctx context.Context) {
	if p.running {
		return
	}
	p.running = true
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.poll()
	p.arm()
}

// Stop cancels the recurring timer and in-flight requests; late responses
// are dropped.
func (p *Poller) Stop() {
	if !p.running {
		return
	}
	p.running = false

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.cancel()
}

func (p *Poller) Running() bool {
	return p.running
}

func (p *Poller) arm() {
	p.timer = p.sched.AfterFunc(p.interval, func() {
		p.timer = nil
		if !p.running {
			return
		}
		p.poll()
		p.arm()
	})
}

func (p *Poller) poll() {
	if p.phase.Phase() != domain.PhaseActive {
		return
	}

	p.issued++
	seq := p.issued
	ctx := p.ctx
	client := p.client
	p.sched.Go(func() func() {
		snapshot, err := client.FetchStatus(ctx)
		return func() { p.complete(seq, snapshot, err) }
	})
}

func (p *Poller) complete(seq uint64, snapshot domain.WorldSnapshot, err error) {
	if !p.running {
		return
	}
	if err != nil {
		p.logger.Warn("status poll failed", "seq", seq, "error", err)
		return
	}
	if seq <= p.applied {
		p.logger.Debug("discarding stale status response", "seq", seq, "applied", p.applied)
		return
	}

	p.applied = seq
	p.world.Replace(snapshot)
	if p.onApply != nil {
		p.onApply(p.world.Current())
	}
}
