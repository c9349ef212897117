package domain

import "strings"

type AgentID string

type AgentStatus string

const (
	AgentStatusAlive AgentStatus = "Alive"
	AgentStatusDead  AgentStatus = "Dead"
)

// Agent is one crew member as reported by the mothership. Location is empty
// when the service reports none.
type Agent struct {
	ID       AgentID
	Status   AgentStatus
	Location string
}

func (a Agent) Alive() bool {
	return a.Status == AgentStatusAlive
}

func (a Agent) LocationLabel() string {
	trimmed := strings.TrimSpace(a.Location)
	if trimmed == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(trimmed)
}

func CountAlive(crew []Agent) int {
	alive := 0
	for _, agent := range crew {
		if agent.Alive() {
			alive++
		}
	}
	return alive
}
