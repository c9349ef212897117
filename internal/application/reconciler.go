package application

import "github.com/bnema/alignment-console/internal/domain"

type worldReader interface {
	Current() domain.WorldSnapshot
}

type localReader interface {
	Entries() []domain.LogEntry
}

// Reconciler projects the authoritative log followed by the local overlay.
// It keeps no state of its own and re-projects on every call.
type Reconciler struct {
	world worldReader
	local localReader
}

func NewReconciler(world worldReader, local localReader) *Reconciler {
	return &Reconciler{world: world, local: local}
}

func (r *Reconciler) Entries() []domain.LogEntry {
	return Project(r.world.Current().Logs, r.local.Entries())
}

// Project never drops or deduplicates: len(result) == len(authoritative)+len(local).
func Project(authoritative, local []domain.LogEntry) []domain.LogEntry {
	projected := make([]domain.LogEntry, 0, len(authoritative)+len(local))
	for _, entry := range authoritative {
		entry.Provenance = domain.ProvenanceAuthoritative
		projected = append(projected, entry)
	}
	for _, entry := range local {
		entry.Provenance = domain.ProvenanceLocal
		projected = append(projected, entry)
	}
	return projected
}
