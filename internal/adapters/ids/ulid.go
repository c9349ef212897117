package ids

import (
	"io"
	"math/rand"
	"sync"

	"github.com/bnema/alignment-console/internal/ports"
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues lexically sortable ids. Monotonic entropy is not safe
// for concurrent use, hence the mutex.
type ULIDGenerator struct {
	mu      sync.Mutex
	clock   ports.Clock
	entropy io.Reader
}

var _ ports.IDGenerator = (*ULIDGenerator)(nil)

func NewULIDGenerator(clock ports.Clock) *ULIDGenerator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ULIDGenerator{
		clock:   clock,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(clock.Now().UnixNano())), 0),
	}
}

func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy).String()
}
