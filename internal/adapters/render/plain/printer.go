package plain

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	amber = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	cyan  = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
	red   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

// Printer writes session output as plain lines, coloured when the terminal
// supports it.
type Printer struct {
	Out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out}
}

func (p *Printer) BootLine(line string) {
	fmt.Fprintf(p.Out, "%s\n", green("> "+line))
}

func (p *Printer) Notice(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s\n", faint(fmt.Sprintf(format, a...)))
}

func (p *Printer) Text(text string) {
	fmt.Fprint(p.Out, text)
}

func (p *Printer) LogEntry(entry domain.LogEntry) {
	fmt.Fprintln(p.Out, FormatLogEntry(entry))
}

// FormatLogEntry renders one log line; local entries carry a leading marker.
func FormatLogEntry(entry domain.LogEntry) string {
	marker := " "
	source := cyan(entry.Source + ":")
	switch {
	case entry.Local():
		marker = "*"
		source = green(entry.Source + ":")
	case entry.Source == domain.SourceSystem:
		source = amber(entry.Source + ":")
	}

	return fmt.Sprintf("%s [%s] %s %s", marker, entry.Timestamp, source, entry.Message)
}

func (p *Printer) Alert(snapshot domain.WorldSnapshot) {
	if !snapshot.HasAlert() {
		fmt.Fprintf(p.Out, "%s\n", faint("ALERT: NONE"))
		return
	}
	fmt.Fprintf(p.Out, "%s\n", red("!! ALERT: "+strings.ToUpper(snapshot.ActiveAlert)+" !!"))
}

func (p *Printer) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(p.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Crew prints the manifest table followed by the personnel summary.
func (p *Printer) Crew(crew []domain.Agent) error {
	table := p.Table([]string{"ID", "STATUS", "LOCATION"})
	for _, agent := range crew {
		if err := table.Append([]string{string(agent.ID), string(agent.Status), agent.LocationLabel()}); err != nil {
			return fmt.Errorf("render crew table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render crew table: %w", err)
	}

	fmt.Fprintf(p.Out, "\nTOTAL PERSONNEL: %d // ACTIVE: %d\n", len(crew), domain.CountAlive(crew))
	return nil
}

// Snapshot prints the crew, the alert and the newest limit log entries.
// A limit of zero or less prints every entry.
func (p *Printer) Snapshot(snapshot domain.WorldSnapshot, limit int) error {
	if err := p.Crew(snapshot.Crew); err != nil {
		return err
	}
	p.Alert(snapshot)

	logs := snapshot.Logs
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	if len(logs) == 0 {
		return nil
	}

	fmt.Fprintln(p.Out)
	for _, entry := range logs {
		p.LogEntry(entry)
	}
	return nil
}
