package application

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/ports"
)

const (
	InvalidSyntaxMessage     = "ERROR: INVALID SYNTAX. USE: @[AgentID] [Message]"
	transmissionFailedFormat = "ERROR: TRANSMISSION FAILED - %s"
)

// The separator class is \s widened to vertical tab and Unicode spaces, so
// "@Red\u00a0hi" parses the same as "@Red hi".
var commandPattern = regexp.MustCompile(`^@(\w+)[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+(.+)$`)

// TransmissionFailedMessage is the operator-visible text for a failed send.
func TransmissionFailedMessage(err error) string {
	return fmt.Sprintf(transmissionFailedFormat, err)
}

func ParseCommand(raw string) (domain.CommandEnvelope, error) {
	match := commandPattern.FindStringSubmatch(raw)
	if match == nil {
		return domain.CommandEnvelope{}, fmt.Errorf("%w: %q", domain.ErrInvalidSyntax, raw)
	}

	return domain.CommandEnvelope{
		AgentID: domain.AgentID(match[1]),
		Message: match[2],
	}, nil
}

type SubmitOutcome int

const (
	// SubmitIgnored leaves the input untouched.
	SubmitIgnored SubmitOutcome = iota
	// SubmitRejected means a syntax error was logged locally; clear the input.
	SubmitRejected
	// SubmitSent means the command was echoed and is in flight; clear the input.
	SubmitSent
)

func (o SubmitOutcome) ClearsInput() bool {
	return o != SubmitIgnored
}

// Dispatcher is the single writer of the local log.
type Dispatcher struct {
	sched  ports.Scheduler
	client ports.MothershipClient
	local  *LocalLog
	clock  ports.Clock
	ids    ports.IDGenerator
	phase  PhaseSource
	logger *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	processing bool
	closed     bool
}

func NewDispatcher(sched ports.Scheduler, client ports.MothershipClient, local *LocalLog, clock ports.Clock, ids ports.IDGenerator, phase PhaseSource, logger *slog.Logger) *Dispatcher {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Dispatcher{
		sched:  sched,
		client: client,
		local:  local,
		clock:  clock,
		ids:    ids,
		phase:  phase,
		logger: loggerOrDiscard(logger),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	if d.ctx != nil || d.closed {
		return
	}
	d.ctx, d.cancel = context.WithCancel(ctx)
}

func (d *Dispatcher) Submit(raw string) (SubmitOutcome, error) {
	if strings.TrimSpace(raw) == "" {
		return SubmitIgnored, nil
	}
	if d.closed || d.ctx == nil || d.phase.Phase() != domain.PhaseActive {
		return SubmitIgnored, domain.ErrSessionInactive
	}
	if d.processing {
		return SubmitIgnored, domain.ErrDispatchBusy
	}

	cmd, err := ParseCommand(raw)
	if err != nil {
		d.local.Append(domain.NewLocalEntry(d.clock.Now(), domain.SourceSystem, InvalidSyntaxMessage))
		return SubmitRejected, err
	}
	if d.ids != nil {
		cmd.CorrelationID = d.ids.NewID()
	}

	echo := domain.NewLocalEntry(d.clock.Now(), domain.SourceSysadmin, cmd.EchoMessage())
	echo.CorrelationID = cmd.CorrelationID
	d.local.Append(echo)
	d.processing = true

	ctx := d.ctx
	client := d.client
	d.sched.Go(func() func() {
		err := client.SendChat(ctx, cmd)
		return func() { d.resolve(cmd, err) }
	})
	return SubmitSent, nil
}

func (d *Dispatcher) Processing() bool {
	return d.processing
}

// Close cancels the in-flight transmission and stops accepting input.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.processing = false
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Dispatcher) resolve(cmd domain.CommandEnvelope, err error) {
	if d.closed {
		return
	}
	d.processing = false
	if err == nil {
		return
	}

	d.logger.Warn("command transmission failed",
		"agent_id", cmd.AgentID,
		"correlation_id", cmd.CorrelationID,
		"error", err,
	)
	entry := domain.NewLocalEntry(d.clock.Now(), domain.SourceSystem, TransmissionFailedMessage(err))
	entry.CorrelationID = cmd.CorrelationID
	d.local.Append(entry)
}
