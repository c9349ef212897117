package application

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/ports"
)

type SessionDeps struct {
	Scheduler ports.Scheduler
	Client    ports.MothershipClient
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Rand      *rand.Rand
	Logger    *slog.Logger
	Settings  Settings
}

// Session sequences Booting -> Briefing -> Active and owns every component,
// so teardown reaches every timer and request they started.
type Session struct {
	logger *slog.Logger

	phase   domain.SessionPhase
	started bool
	ended   bool
	ctx     context.Context
	cancel  context.CancelFunc
	onPhase []func(domain.SessionPhase)

	world      *WorldStore
	local      *LocalLog
	reconciler *Reconciler
	boot       *BootSequence
	briefing   *Briefing
	poller     *Poller
	dispatcher *Dispatcher
}

func NewSession(deps SessionDeps) (*Session, error) {
	if deps.Scheduler == nil {
		return nil, errors.New("scheduler is required")
	}
	if deps.Client == nil {
		return nil, errors.New("mothership client is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	settings := deps.Settings.withDefaults()
	logger := loggerOrDiscard(deps.Logger)

	s := &Session{
		logger: logger.With("component", "session"),
		phase:  domain.PhaseBooting,
		world:  NewWorldStore(InitialSnapshot()),
		local:  NewLocalLog(),
	}
	s.reconciler = NewReconciler(s.world, s.local)
	s.boot = NewBootSequence(deps.Scheduler, deps.Rand, settings, BootScript)
	s.briefing = NewBriefing(
		deps.Scheduler,
		deps.Client,
		NewTypewriter(deps.Scheduler, settings.TypewriterDelay),
		logger.With("component", "briefing"),
	)
	s.poller = NewPoller(deps.Scheduler, deps.Client, s.world, s, settings.PollInterval, logger.With("component", "poller"))
	s.dispatcher = NewDispatcher(deps.Scheduler, deps.Client, s.local, deps.Clock, deps.IDs, s, logger.With("component", "dispatcher"))

	return s, nil
}

// Start must run on the scheduler's loop.
func (s *Session) Start(ctx context.Context) {
	if s.started {
		return
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.logger.Info("session started", "phase", s.phase)
	s.boot.Start(s.enterBriefing)
}

// Teardown cancels every timer and in-flight request. It is idempotent.
func (s *Session) Teardown() {
	if s.ended {
		return
	}
	s.ended = true

	s.boot.Cancel()
	s.briefing.Cancel()
	s.poller.Stop()
	s.dispatcher.Close()
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info("session ended", "phase", s.phase)
}

func (s *Session) OnPhaseChange(fn func(domain.SessionPhase)) {
	s.onPhase = append(s.onPhase, fn)
}

func (s *Session) OnSnapshot(fn func(domain.WorldSnapshot)) {
	s.poller.OnApply(fn)
}

func (s *Session) Phase() domain.SessionPhase {
	return s.phase
}

func (s *Session) Ended() bool {
	return s.ended
}

func (s *Session) DismissBriefing() {
	if s.phase != domain.PhaseBriefing {
		return
	}
	s.briefing.Dismiss()
}

func (s *Session) Submit(raw string) (SubmitOutcome, error) {
	return s.dispatcher.Submit(raw)
}

func (s *Session) Processing() bool {
	return s.dispatcher.Processing()
}

func (s *Session) BootLines() []string {
	return s.boot.Lines()
}

func (s *Session) BriefingText() string {
	return s.briefing.Text()
}

func (s *Session) BriefingRevealed() bool {
	return s.briefing.RevealComplete()
}

func (s *Session) World() domain.WorldSnapshot {
	return s.world.Current()
}

func (s *Session) LocalEntries() []domain.LogEntry {
	return s.local.Entries()
}

// LogView is the reconciled display sequence.
func (s *Session) LogView() []domain.LogEntry {
	return s.reconciler.Entries()
}

func (s *Session) enterBriefing() {
	if s.ended || s.phase != domain.PhaseBooting {
		return
	}
	s.setPhase(domain.PhaseBriefing)
	s.briefing.Start(s.ctx, s.enterActive)
}

func (s *Session) enterActive() {
	if s.ended || s.phase != domain.PhaseBriefing {
		return
	}
	s.setPhase(domain.PhaseActive)
	s.dispatcher.Start(s.ctx)
	s.poller.Start(s.ctx)
}

func (s *Session) setPhase(phase domain.SessionPhase) {
	s.logger.Info("session phase changed", "from", s.phase, "to", phase)
	s.phase = phase
	for _, fn := range s.onPhase {
		fn(phase)
	}
}
