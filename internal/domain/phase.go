package domain

type SessionPhase int

const (
	PhaseBooting SessionPhase = iota
	PhaseBriefing
	PhaseActive
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseBriefing:
		return "briefing"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}
