package application

import (
	"sync/atomic"

	"github.com/bnema/alignment-console/internal/domain"
)

const connectingMessage = "CONNECTING TO MAINFRAME..."

// InitialSnapshot is what the console shows until the first successful poll.
func InitialSnapshot() domain.WorldSnapshot {
	return domain.WorldSnapshot{
		Crew: []domain.Agent{},
		Logs: []domain.LogEntry{{
			Timestamp:  "00:00:00",
			Source:     domain.SourceSystem,
			Message:    connectingMessage,
			Provenance: domain.ProvenanceAuthoritative,
		}},
		ActiveAlert: domain.NoActiveAlert,
	}
}

// WorldStore holds the authoritative snapshot. The poller is its only
// writer; readers always observe one complete snapshot and must not mutate
// the slices they are handed.
type WorldStore struct {
	current atomic.Pointer[domain.WorldSnapshot]
}

func NewWorldStore(initial domain.WorldSnapshot) *WorldStore {
	store := &WorldStore{}
	store.Replace(initial)
	return store
}

func (s *WorldStore) Replace(snapshot domain.WorldSnapshot) {
	clone := snapshot.Clone()
	s.current.Store(&clone)
}

func (s *WorldStore) Current() domain.WorldSnapshot {
	return *s.current.Load()
}
