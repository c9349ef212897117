package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/alignment-console/internal/adapters/render/plain"
	"github.com/bnema/alignment-console/internal/application"
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/spf13/cobra"
)

func newSayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "say @AgentID message",
		Short: "Send one private command to an agent",
		Example: `  tap say "@Red report your location"
  tap say @Blue status?`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := wireApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			printer := plain.NewPrinter(cmd.OutOrStdout())
			envelope, err := application.ParseCommand(strings.Join(args, " "))
			if err != nil {
				printer.LogEntry(domain.NewLocalEntry(app.clock.Now(), domain.SourceSystem, application.InvalidSyntaxMessage))
				return err
			}
			envelope.CorrelationID = app.ids.NewID()

			echo := domain.NewLocalEntry(app.clock.Now(), domain.SourceSysadmin, envelope.EchoMessage())
			echo.CorrelationID = envelope.CorrelationID
			printer.LogEntry(echo)

			if err := app.client.SendChat(commandContext(cmd), envelope); err != nil {
				app.logger.Warn("command transmission failed",
					"agent_id", envelope.AgentID,
					"correlation_id", envelope.CorrelationID,
					"error", err,
				)
				printer.LogEntry(domain.NewLocalEntry(app.clock.Now(), domain.SourceSystem, application.TransmissionFailedMessage(err)))
				return fmt.Errorf("transmission to %s failed: %w", envelope.AgentID, err)
			}

			return nil
		},
	}
}
