package domain

const NoActiveAlert = "None"

// WorldSnapshot is one atomic copy of the authoritative world state.
type WorldSnapshot struct {
	Crew        []Agent
	Logs        []LogEntry
	ActiveAlert string
}

// Clone returns a snapshot that shares no backing arrays with s.
func (s WorldSnapshot) Clone() WorldSnapshot {
	clone := WorldSnapshot{ActiveAlert: s.ActiveAlert}
	if s.Crew != nil {
		clone.Crew = append(make([]Agent, 0, len(s.Crew)), s.Crew...)
	}
	if s.Logs != nil {
		clone.Logs = append(make([]LogEntry, 0, len(s.Logs)), s.Logs...)
	}
	return clone
}

func (s WorldSnapshot) HasAlert() bool {
	return s.ActiveAlert != "" && s.ActiveAlert != NoActiveAlert
}

func (s WorldSnapshot) Agent(id AgentID) (Agent, bool) {
	for _, agent := range s.Crew {
		if agent.ID == id {
			return agent, true
		}
	}
	return Agent{}, false
}
