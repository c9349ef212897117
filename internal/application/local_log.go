package application

import (
	"slices"

	"github.com/bnema/alignment-console/internal/domain"
)

// LocalLog is the append-only overlay of client-originated entries.
type LocalLog struct {
	entries []domain.LogEntry
}

func NewLocalLog() *LocalLog {
	return &LocalLog{}
}

func (l *LocalLog) Append(entry domain.LogEntry) {
	entry.Provenance = domain.ProvenanceLocal
	l.entries = append(l.entries, entry)
}

func (l *LocalLog) Entries() []domain.LogEntry {
	return slices.Clip(l.entries)
}

func (l *LocalLog) Len() int {
	return len(l.entries)
}
