package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/alignment-console/internal/adapters/eventloop"
	"github.com/bnema/alignment-console/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBriefing(t *testing.T) (*Briefing, *mocks.MockMothershipClient, *eventloop.Manual) {
	t.Helper()

	sched := newManual()
	client := mocks.NewMockMothershipClient(t)
	return NewBriefing(sched, client, NewTypewriter(sched, tick), nil), client, sched
}

func TestBriefingRevealsFetchedTextAndCompletesOnDismiss(t *testing.T) {
	briefing, client, sched := newTestBriefing(t)
	client.EXPECT().FetchBriefing(mockAnyContext()).Return("TRUST NO ONE", nil).Once()

	completions := 0
	require.True(t, briefing.Start(context.Background(), func() { completions++ }))
	assert.Equal(t, BriefingFetching, briefing.State())
	assert.Equal(t, BriefingPlaceholder, briefing.Text())

	sched.Resolve()
	assert.Equal(t, BriefingRevealing, briefing.State())
	assert.Equal(t, "", briefing.Text())

	sched.Advance(5 * tick)
	assert.Equal(t, "TRUST", briefing.Text())
	assert.False(t, briefing.RevealComplete())

	sched.Advance(time.Second)
	assert.Equal(t, "TRUST NO ONE", briefing.Text())
	assert.True(t, briefing.RevealComplete())
	assert.False(t, briefing.Degraded())

	briefing.Dismiss()
	briefing.Dismiss()
	assert.Equal(t, BriefingDismissed, briefing.State())
	assert.Equal(t, 1, completions)
}

func TestBriefingFailureDegradesToFallbackText(t *testing.T) {
	briefing, client, sched := newTestBriefing(t)
	client.EXPECT().FetchBriefing(mockAnyContext()).Return("", errors.New("fetch briefing: unexpected status 500")).Once()

	briefing.Start(context.Background(), func() {})
	sched.Resolve()
	sched.Advance(time.Duration(len(BriefingFallback)) * tick)

	assert.True(t, briefing.Degraded())
	assert.Equal(t, BriefingFallback, briefing.Text())
	assert.True(t, briefing.RevealComplete())
}

func TestBriefingDismissDuringFetchCancelsRequest(t *testing.T) {
	briefing, client, sched := newTestBriefing(t)
	client.EXPECT().FetchBriefing(mockAnyContext()).RunAndReturn(func(ctx context.Context) (string, error) {
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		return "", ctx.Err()
	}).Once()

	completions := 0
	briefing.Start(context.Background(), func() { completions++ })
	briefing.Dismiss()
	assert.Equal(t, 1, completions)
	assert.Equal(t, BriefingDismissed, briefing.State())

	sched.Resolve()
	sched.Advance(time.Minute)

	assert.Equal(t, BriefingDismissed, briefing.State())
	assert.Equal(t, "", briefing.Text())
	assert.Equal(t, 0, sched.ActiveTimers())
	assert.Equal(t, 1, completions)
}

func TestBriefingDismissMidRevealStopsTicks(t *testing.T) {
	briefing, client, sched := newTestBriefing(t)
	client.EXPECT().FetchBriefing(mockAnyContext()).Return("ABCDEFGHIJ", nil).Once()

	briefing.Start(context.Background(), func() {})
	sched.Resolve()
	sched.Advance(3 * tick)
	briefing.Dismiss()
	sched.Advance(time.Second)

	assert.Equal(t, "ABC", briefing.Text())
	assert.Equal(t, 0, sched.ActiveTimers())
}

func TestBriefingCancelDoesNotSignalCompletion(t *testing.T) {
	briefing, client, sched := newTestBriefing(t)
	client.EXPECT().FetchBriefing(mockAnyContext()).Return("late text", nil).Once()

	completed := false
	briefing.Start(context.Background(), func() { completed = true })
	briefing.Cancel()
	sched.Resolve()
	briefing.Dismiss()
	sched.Advance(time.Second)

	assert.False(t, completed)
	assert.Equal(t, BriefingFetching, briefing.State())
	assert.Equal(t, 0, sched.ActiveTimers())
}
