package application

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/bnema/alignment-console/internal/adapters/eventloop"
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bootDuration covers eight fixed 200ms lines plus the settle delay.
const bootDuration = 8*200*time.Millisecond + time.Second

type sessionFixture struct {
	sched   *eventloop.Manual
	client  *mocks.MockMothershipClient
	ids     *mocks.MockIDGenerator
	session *Session
	phases  []domain.SessionPhase
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	settings := DefaultSettings()
	settings.BootJitter = 0

	f := &sessionFixture{
		sched:  newManual(),
		client: mocks.NewMockMothershipClient(t),
		ids:    mocks.NewMockIDGenerator(t),
	}
	session, err := NewSession(SessionDeps{
		Scheduler: f.sched,
		Client:    f.client,
		Clock:     f.sched,
		IDs:       f.ids,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Settings:  settings,
	})
	require.NoError(t, err)
	session.OnPhaseChange(func(phase domain.SessionPhase) { f.phases = append(f.phases, phase) })
	f.session = session
	return f
}

// activate drives the session through boot and briefing into Active with
// the first poll resolved.
func (f *sessionFixture) activate(t *testing.T, first domain.WorldSnapshot) {
	t.Helper()

	f.client.EXPECT().FetchBriefing(mockAnyContext()).Return("ALIGN THE CREW", nil).Once()
	f.client.EXPECT().FetchStatus(mockAnyContext()).Return(first, nil).Once()

	f.session.Start(context.Background())
	f.sched.Advance(bootDuration)
	require.Equal(t, domain.PhaseBriefing, f.session.Phase())

	f.sched.Resolve()
	f.session.DismissBriefing()
	require.Equal(t, domain.PhaseActive, f.session.Phase())

	f.sched.Resolve()
}

func TestNewSessionRequiresSchedulerAndClient(t *testing.T) {
	_, err := NewSession(SessionDeps{Client: mocks.NewMockMothershipClient(t)})
	assert.EqualError(t, err, "scheduler is required")

	_, err = NewSession(SessionDeps{Scheduler: newManual()})
	assert.EqualError(t, err, "mothership client is required")
}

func TestSessionBootsThenBriefsThenActivates(t *testing.T) {
	f := newSessionFixture(t)
	f.client.EXPECT().FetchBriefing(mockAnyContext()).Return("ALIGN THE CREW", nil).Once()
	f.client.EXPECT().FetchStatus(mockAnyContext()).Return(snapshotWithLog("Red entered Reactor"), nil).Once()

	f.session.Start(context.Background())
	assert.Equal(t, domain.PhaseBooting, f.session.Phase())
	assert.Equal(t, InitialSnapshot(), f.session.World())

	f.sched.Advance(bootDuration - time.Millisecond)
	assert.Equal(t, domain.PhaseBooting, f.session.Phase())
	assert.Equal(t, BootScript, f.session.BootLines())

	f.sched.Advance(time.Millisecond)
	assert.Equal(t, domain.PhaseBriefing, f.session.Phase())
	assert.Equal(t, BriefingPlaceholder, f.session.BriefingText())

	// Submissions before Active are ignored.
	outcome, err := f.session.Submit("@Red hi")
	assert.ErrorIs(t, err, domain.ErrSessionInactive)
	assert.Equal(t, SubmitIgnored, outcome)

	f.sched.Resolve()
	f.sched.Advance(time.Second)
	assert.Equal(t, "ALIGN THE CREW", f.session.BriefingText())
	assert.True(t, f.session.BriefingRevealed())

	f.session.DismissBriefing()
	assert.Equal(t, domain.PhaseActive, f.session.Phase())
	assert.Equal(t, 1, f.sched.Pending())

	var observed []domain.WorldSnapshot
	f.session.OnSnapshot(func(snapshot domain.WorldSnapshot) { observed = append(observed, snapshot) })
	f.sched.Resolve()

	require.Len(t, observed, 1)
	assert.Equal(t, []string{"Red entered Reactor"}, messages(f.session.LogView()))
	assert.Equal(t, 1, domain.CountAlive(f.session.World().Crew))
	assert.Equal(t, []domain.SessionPhase{domain.PhaseBriefing, domain.PhaseActive}, f.phases)
}

func TestSessionDismissBeforeRevealCompletes(t *testing.T) {
	f := newSessionFixture(t)
	f.client.EXPECT().FetchBriefing(mockAnyContext()).Return("LONG BRIEFING TEXT", nil).Once()
	f.client.EXPECT().FetchStatus(mockAnyContext()).Return(snapshotWithLog(), nil).Maybe()

	f.session.Start(context.Background())
	f.sched.Advance(bootDuration)
	f.sched.Resolve()
	f.sched.Advance(2 * tick)
	require.False(t, f.session.BriefingRevealed())

	f.session.DismissBriefing()
	assert.Equal(t, domain.PhaseActive, f.session.Phase())
	assert.Equal(t, "LO", f.session.BriefingText())
}

func TestSessionFailedTransmissionScenario(t *testing.T) {
	f := newSessionFixture(t)
	f.activate(t, snapshotWithLog("Red entered Reactor"))

	f.ids.EXPECT().NewID().Return("corr-1").Once()
	f.client.EXPECT().SendChat(mockAnyContext(), mockAnyCommand()).
		Return(errors.New("send chat: unexpected status 404")).Once()

	outcome, err := f.session.Submit("@Blue status?")
	require.NoError(t, err)
	assert.True(t, outcome.ClearsInput())
	assert.True(t, f.session.Processing())

	f.sched.Resolve()
	assert.False(t, f.session.Processing())
	assert.Equal(t, []string{
		"Red entered Reactor",
		"[Private to Blue]: status?",
		"ERROR: TRANSMISSION FAILED - send chat: unexpected status 404",
	}, messages(f.session.LogView()))
	assert.Len(t, f.session.LocalEntries(), 2)
}

func TestSessionSyntaxErrorScenario(t *testing.T) {
	f := newSessionFixture(t)
	f.activate(t, snapshotWithLog())

	outcome, err := f.session.Submit("no at sign")

	assert.ErrorIs(t, err, domain.ErrInvalidSyntax)
	assert.Equal(t, SubmitRejected, outcome)
	assert.Equal(t, []string{InvalidSyntaxMessage}, messages(f.session.LogView()))
	assert.Equal(t, 0, f.sched.Pending())
}

func TestSessionLocalEntriesSurviveAuthoritativeReplacement(t *testing.T) {
	f := newSessionFixture(t)
	f.activate(t, snapshotWithLog("a"))

	f.session.Submit("bad input")
	f.client.EXPECT().FetchStatus(mockAnyContext()).Return(snapshotWithLog("a", "b", "c"), nil).Once()
	f.sched.Advance(2 * time.Second)
	f.sched.Resolve()

	assert.Equal(t, []string{"a", "b", "c", InvalidSyntaxMessage}, messages(f.session.LogView()))
}

func TestSessionTeardownDuringBoot(t *testing.T) {
	f := newSessionFixture(t)
	f.session.Start(context.Background())
	f.sched.Advance(500 * time.Millisecond)

	f.session.Teardown()
	f.session.Teardown()
	f.sched.Advance(time.Minute)

	assert.True(t, f.session.Ended())
	assert.Equal(t, domain.PhaseBooting, f.session.Phase())
	assert.Equal(t, 0, f.sched.ActiveTimers())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Empty(t, f.phases)
}

func TestSessionTeardownDuringBriefingFetch(t *testing.T) {
	f := newSessionFixture(t)
	f.client.EXPECT().FetchBriefing(mockAnyContext()).RunAndReturn(func(ctx context.Context) (string, error) {
		return "", ctx.Err()
	}).Once()

	f.session.Start(context.Background())
	f.sched.Advance(bootDuration)
	f.session.Teardown()
	f.sched.Resolve()
	f.sched.Advance(time.Minute)

	assert.Equal(t, domain.PhaseBriefing, f.session.Phase())
	assert.Equal(t, 0, f.sched.ActiveTimers())
	f.session.DismissBriefing()
	assert.Equal(t, domain.PhaseBriefing, f.session.Phase())
}

func TestSessionTeardownWhileActive(t *testing.T) {
	f := newSessionFixture(t)
	f.activate(t, snapshotWithLog("a"))

	f.ids.EXPECT().NewID().Return("corr-2").Once()
	f.client.EXPECT().SendChat(mockAnyContext(), mockAnyCommand()).RunAndReturn(func(ctx context.Context, _ domain.CommandEnvelope) error {
		return ctx.Err()
	}).Once()
	_, err := f.session.Submit("@Red hi")
	require.NoError(t, err)

	f.session.Teardown()
	f.sched.Resolve()
	f.sched.Advance(time.Minute)

	assert.Equal(t, 0, f.sched.ActiveTimers())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Equal(t, []string{"a", "[Private to Red]: hi"}, messages(f.session.LogView()))
}
