package application

import (
	"context"
	"log/slog"

	"github.com/bnema/alignment-console/internal/ports"
)

const (
	BriefingPlaceholder = "FETCHING MISSION DATA FROM MOTHER..."
	BriefingFallback    = "[ERROR: MOTHER OFFLINE] Manual Start Required."
)

type BriefingState int

const (
	BriefingIdle BriefingState = iota
	BriefingFetching
	BriefingRevealing
	BriefingDismissed
)

// Briefing composes two independently cancellable tasks: the one-shot fetch
// and the typewriter reveal of whatever text it produced.
type Briefing struct {
	sched      ports.Scheduler
	client     ports.MothershipClient
	typewriter *Typewriter
	logger     *slog.Logger

	state       BriefingState
	degraded    bool
	closed      bool
	cancelFetch context.CancelFunc
	onComplete  func()
}

func NewBriefing(sched ports.Scheduler, client ports.MothershipClient, typewriter *Typewriter, logger *slog.Logger) *Briefing {
	return &Briefing{
		sched:      sched,
		client:     client,
		typewriter: typewriter,
		logger:     loggerOrDiscard(logger),
	}
}

func (b *Briefing) Start(ctx context.Context, onComplete func()) bool {
	if b.state != BriefingIdle {
		return false
	}
	b.state = BriefingFetching
	b.onComplete = onComplete

	fetchCtx, cancel := context.WithCancel(ctx)
	b.cancelFetch = cancel
	client := b.client
	b.sched.Go(func() func() {
		text, err := client.FetchBriefing(fetchCtx)
		return func() { b.reveal(text, err) }
	})
	return true
}

// Dismiss ends the briefing whatever the reveal progress and signals
// completion exactly once.
func (b *Briefing) Dismiss() {
	if b.closed || b.state == BriefingIdle || b.state == BriefingDismissed {
		return
	}
	b.stop()
	b.state = BriefingDismissed

	if done := b.onComplete; done != nil {
		b.onComplete = nil
		done()
	}
}

// Cancel tears the briefing down without signalling completion.
func (b *Briefing) Cancel() {
	b.closed = true
	b.stop()
}

func (b *Briefing) State() BriefingState {
	return b.state
}

func (b *Briefing) Text() string {
	if b.state == BriefingFetching {
		return BriefingPlaceholder
	}
	return b.typewriter.Displayed()
}

func (b *Briefing) RevealComplete() bool {
	return b.state == BriefingRevealing && b.typewriter.Complete()
}

func (b *Briefing) Degraded() bool {
	return b.degraded
}

func (b *Briefing) reveal(text string, err error) {
	if b.closed || b.state != BriefingFetching {
		return
	}
	b.cancelFetch()

	if err != nil {
		b.logger.Warn("briefing fetch failed, using fallback", "error", err)
		text = BriefingFallback
		b.degraded = true
	}

	b.state = BriefingRevealing
	b.typewriter.Start(text)
}

func (b *Briefing) stop() {
	if b.cancelFetch != nil {
		b.cancelFetch()
	}
	b.typewriter.Cancel()
}
