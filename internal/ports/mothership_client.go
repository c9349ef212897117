package ports

import (
	"context"

	"github.com/bnema/alignment-console/internal/domain"
)

// MothershipClient is the wire boundary to the remote game service. Any
// transport or non-success status failure is reported as an error wrapping
// domain.ErrRequestFailed.
type MothershipClient interface {
	FetchStatus(ctx context.Context) (domain.WorldSnapshot, error)
	SendChat(ctx context.Context, cmd domain.CommandEnvelope) error
	FetchBriefing(ctx context.Context) (string, error)
}
