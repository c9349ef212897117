package application

import (
	"context"
	"time"

	"github.com/bnema/alignment-console/internal/adapters/eventloop"
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/stretchr/testify/mock"
)

var testStart = time.Date(2026, 3, 1, 21, 4, 5, 0, time.UTC)

func newManual() *eventloop.Manual {
	return eventloop.NewManual(testStart)
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

type phaseVar struct {
	phase domain.SessionPhase
}

func (p *phaseVar) Phase() domain.SessionPhase {
	return p.phase
}

func activePhase() *phaseVar {
	return &phaseVar{phase: domain.PhaseActive}
}

func snapshotWithLog(messages ...string) domain.WorldSnapshot {
	logs := make([]domain.LogEntry, 0, len(messages))
	for _, message := range messages {
		logs = append(logs, domain.LogEntry{Timestamp: "21:00:00", Source: domain.SourceSystem, Message: message})
	}

	return domain.WorldSnapshot{
		Crew: []domain.Agent{
			{ID: "Red", Status: domain.AgentStatusAlive, Location: "Reactor"},
			{ID: "Blue", Status: domain.AgentStatusDead},
		},
		Logs:        logs,
		ActiveAlert: domain.NoActiveAlert,
	}
}

func mockAnyCommand() interface{} {
	return mock.MatchedBy(func(domain.CommandEnvelope) bool { return true })
}
