package plain

import (
	"bufio"
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/bnema/alignment-console/internal/adapters/eventloop"
	"github.com/bnema/alignment-console/internal/application"
	"github.com/bnema/alignment-console/internal/domain"
)

type Engine interface {
	Start(ctx context.Context)
	Teardown()
	Phase() domain.SessionPhase
	DismissBriefing()
	Submit(raw string) (application.SubmitOutcome, error)
	BootLines() []string
	BriefingText() string
	BriefingRevealed() bool
	World() domain.WorldSnapshot
	LogView() []domain.LogEntry
}

type Loop interface {
	Post(fn func())
	Next(ctx context.Context) (func(), error)
	Close()
}

// Console drives a session in line mode: it prints what changed after every
// engine callback and feeds stdin lines back through the loop.
type Console struct {
	engine  Engine
	loop    Loop
	printer *Printer

	bootShown     int
	briefingShown string
	briefingDone  bool
	alert         string
	printed       []domain.LogEntry
	localShown    int
}

var _ Engine = (*application.Session)(nil)

func NewConsole(engine Engine, loop Loop, out io.Writer) *Console {
	return &Console{
		engine:  engine,
		loop:    loop,
		printer: NewPrinter(out),
	}
}

// Run returns when input ends, ctx is cancelled or the loop is closed. If in
// is an io.Closer it is closed on return so the input reader stops.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if closer, ok := in.(io.Closer); ok {
		defer closer.Close()
	}
	defer c.engine.Teardown()

	c.loop.Post(func() { c.engine.Start(ctx) })
	go c.readInput(in)

	for {
		fn, err := c.loop.Next(ctx)
		if err != nil {
			if errors.Is(err, eventloop.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		fn()
		c.flush()
	}
}

func (c *Console) readInput(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		c.loop.Post(func() { c.HandleLine(line) })
	}
	c.loop.Post(func() {
		c.engine.Teardown()
		c.loop.Close()
	})
}

// HandleLine dismisses the briefing or submits a command, depending on the
// session phase.
func (c *Console) HandleLine(line string) {
	switch c.engine.Phase() {
	case domain.PhaseBriefing:
		c.engine.DismissBriefing()
	case domain.PhaseActive:
		_, err := c.engine.Submit(line)
		switch {
		case errors.Is(err, domain.ErrDispatchBusy):
			c.printer.Notice("(transmission in progress, input ignored)")
		case errors.Is(err, domain.ErrSessionInactive):
			c.printer.Notice("(console offline, input ignored)")
		}
	}
}

func (c *Console) flush() {
	lines := c.engine.BootLines()
	for ; c.bootShown < len(lines); c.bootShown++ {
		c.printer.BootLine(lines[c.bootShown])
	}

	switch c.engine.Phase() {
	case domain.PhaseBriefing:
		c.flushBriefing()
	case domain.PhaseActive:
		if !c.briefingDone {
			c.finishBriefing()
		}
		c.flushWorld()
	}
}

func (c *Console) flushBriefing() {
	text := c.engine.BriefingText()
	if text == c.briefingShown {
		if c.engine.BriefingRevealed() && !c.briefingDone {
			c.finishBriefing()
		}
		return
	}

	if strings.HasPrefix(text, c.briefingShown) {
		c.printer.Text(text[len(c.briefingShown):])
	} else {
		if c.briefingShown != "" {
			c.printer.Text("\n")
		}
		c.printer.Text(text)
	}
	c.briefingShown = text
}

func (c *Console) finishBriefing() {
	c.briefingDone = true
	c.printer.Text("\n")
	if c.engine.Phase() == domain.PhaseBriefing {
		c.printer.Notice("[ENTER] ACKNOWLEDGE")
	}
}

func (c *Console) flushWorld() {
	world := c.engine.World()
	if world.ActiveAlert != c.alert {
		c.alert = world.ActiveAlert
		c.printer.Alert(world)
	}

	var authoritative, local []domain.LogEntry
	for _, entry := range c.engine.LogView() {
		if entry.Local() {
			local = append(local, entry)
		} else {
			authoritative = append(authoritative, entry)
		}
	}

	for _, entry := range unseenEntries(c.printed, authoritative) {
		c.printer.LogEntry(entry)
	}
	c.printed = authoritative

	for ; c.localShown < len(local); c.localShown++ {
		c.printer.LogEntry(local[c.localShown])
	}
}

// unseenEntries returns the tail of current that follows the longest suffix
// of previous it starts with. The service returns a sliding window of recent
// logs, so the window may drop old entries from the front between polls and
// identical entries are counted, not collapsed.
func unseenEntries(previous, current []domain.LogEntry) []domain.LogEntry {
	for start := max(0, len(previous)-len(current)); start < len(previous); start++ {
		overlap := len(previous) - start
		if slices.EqualFunc(previous[start:], current[:overlap], sameEntry) {
			return current[overlap:]
		}
	}
	return current
}

func sameEntry(a, b domain.LogEntry) bool {
	return a.Timestamp == b.Timestamp && a.Source == b.Source && a.Message == b.Message
}
