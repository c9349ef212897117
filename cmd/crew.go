package cmd

import (
	"encoding/json"

	"github.com/bnema/alignment-console/internal/adapters/render/plain"
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/spf13/cobra"
)

type crewOutput struct {
	Crew        []crewMember `json:"crew"`
	ActiveAlert string       `json:"active_alert"`
	Logs        []logLine    `json:"logs"`
}

type crewMember struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

type logLine struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Message   string `json:"message"`
}

func newCrewCmd(opts *rootOptions) *cobra.Command {
	var (
		logs   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Show the crew manifest, alert and latest ship log once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := commandContext(cmd)
			var snapshot domain.WorldSnapshot
			if asJSON {
				snapshot, err = app.client.FetchStatus(ctx)
			} else {
				snapshot, err = fetchCrewStatus(ctx, cmd.ErrOrStderr(), app.config.BaseURL, app.client.FetchStatus)
			}
			if err != nil {
				app.logger.Warn("crew fetch failed", "error", err)
				return err
			}

			if asJSON {
				return writeCrewJSON(cmd, snapshot, logs)
			}
			return plain.NewPrinter(cmd.OutOrStdout()).Snapshot(snapshot, logs)
		},
	}

	cmd.Flags().IntVar(&logs, "logs", 10, "number of latest log entries to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")

	return cmd
}

func writeCrewJSON(cmd *cobra.Command, snapshot domain.WorldSnapshot, limit int) error {
	out := crewOutput{
		Crew:        make([]crewMember, 0, len(snapshot.Crew)),
		ActiveAlert: snapshot.ActiveAlert,
		Logs:        make([]logLine, 0, len(snapshot.Logs)),
	}
	for _, agent := range snapshot.Crew {
		out.Crew = append(out.Crew, crewMember{ID: string(agent.ID), Status: string(agent.Status), Location: agent.Location})
	}

	entries := snapshot.Logs
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	for _, entry := range entries {
		out.Logs = append(out.Logs, logLine{Timestamp: entry.Timestamp, Source: entry.Source, Message: entry.Message})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
