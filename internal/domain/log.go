package domain

import "time"

const (
	SourceSystem   = "SYSTEM"
	SourceSysadmin = "SYSADMIN"

	LogTimestampLayout = "15:04:05"
)

type Provenance int

const (
	ProvenanceAuthoritative Provenance = iota
	ProvenanceLocal
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceAuthoritative:
		return "authoritative"
	case ProvenanceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// LogEntry is a single line of the ship log. CorrelationID is only set on
// local entries produced for a dispatched command.
type LogEntry struct {
	Timestamp     string
	Source        string
	Message       string
	Provenance    Provenance
	CorrelationID string
}

func NewLocalEntry(at time.Time, source, message string) LogEntry {
	return LogEntry{
		Timestamp:  at.Format(LogTimestampLayout),
		Source:     source,
		Message:    message,
		Provenance: ProvenanceLocal,
	}
}

func (e LogEntry) Local() bool {
	return e.Provenance == ProvenanceLocal
}
