package application

import (
	"testing"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectOrdersAuthoritativeBeforeLocal(t *testing.T) {
	authoritative := []domain.LogEntry{
		{Timestamp: "21:00:00", Source: "SYSTEM", Message: "reboot complete"},
		{Timestamp: "21:00:05", Source: "Red", Message: "To SysAdmin: in Reactor"},
	}
	local := []domain.LogEntry{
		{Timestamp: "21:00:03", Source: "SYSADMIN", Message: "[Private to Red]: where?"},
	}

	projected := Project(authoritative, local)

	require.Len(t, projected, 3)
	assert.Equal(t, "reboot complete", projected[0].Message)
	assert.Equal(t, "To SysAdmin: in Reactor", projected[1].Message)
	assert.Equal(t, "[Private to Red]: where?", projected[2].Message)
	assert.False(t, projected[0].Local())
	assert.False(t, projected[1].Local())
	assert.True(t, projected[2].Local())
}

func TestProjectNeverDeduplicatesEchoedCommands(t *testing.T) {
	echo := domain.LogEntry{Timestamp: "21:00:03", Source: "SYSADMIN", Message: "[Private to Red]: where?"}

	projected := Project([]domain.LogEntry{echo}, []domain.LogEntry{echo})

	require.Len(t, projected, 2)
	assert.False(t, projected[0].Local())
	assert.True(t, projected[1].Local())
}

func TestReconcilerLengthIsSumOfSourcesAcrossUpdates(t *testing.T) {
	world := NewWorldStore(InitialSnapshot())
	local := NewLocalLog()
	reconciler := NewReconciler(world, local)

	assert.Len(t, reconciler.Entries(), 1)

	local.Append(domain.LogEntry{Source: "SYSTEM", Message: "local-1"})
	assert.Len(t, reconciler.Entries(), 2)

	world.Replace(snapshotWithLog("a", "b", "c"))
	assert.Len(t, reconciler.Entries(), 4)

	world.Replace(snapshotWithLog("a", "b", "c"))
	entries := reconciler.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, []string{"a", "b", "c", "local-1"}, messages(entries))
}

func TestWorldStoreReplaceIsIsolatedFromCallerMutation(t *testing.T) {
	world := NewWorldStore(InitialSnapshot())
	snapshot := snapshotWithLog("original")

	world.Replace(snapshot)
	snapshot.Logs[0].Message = "mutated"
	snapshot.Crew[0].Status = domain.AgentStatusDead

	current := world.Current()
	assert.Equal(t, "original", current.Logs[0].Message)
	assert.Equal(t, domain.AgentStatusAlive, current.Crew[0].Status)
}

func TestInitialSnapshotShowsConnectingLine(t *testing.T) {
	snapshot := InitialSnapshot()

	assert.Empty(t, snapshot.Crew)
	require.Len(t, snapshot.Logs, 1)
	assert.Equal(t, "CONNECTING TO MAINFRAME...", snapshot.Logs[0].Message)
	assert.Equal(t, "None", snapshot.ActiveAlert)
}

func messages(entries []domain.LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Message)
	}
	return out
}
