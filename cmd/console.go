package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/alignment-console/internal/adapters/render/console"
	"github.com/bnema/alignment-console/internal/adapters/render/plain"
	"github.com/spf13/cobra"
)

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	var plainMode bool

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the operator console",
		Long:  "Open the operator console. With --plain the session prints updates line by line and reads commands from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts, plainMode)
		},
	}
	cmd.Flags().BoolVar(&plainMode, "plain", false, "line mode without the full-screen interface")

	return cmd
}

func runConsole(cmd *cobra.Command, opts *rootOptions, plainMode bool) error {
	app, err := wireApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	session, loop, err := app.newSession()
	if err != nil {
		return err
	}
	defer loop.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("console opened", "base_url", app.config.BaseURL, "plain", plainMode)
	if plainMode {
		return plain.NewConsole(session, loop, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
	}

	return console.Run(ctx, session, loop, console.Options{
		Input:     customInput(cmd.InOrStdin()),
		Output:    customOutput(cmd.OutOrStdout()),
		AltScreen: true,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// customInput and customOutput leave the process terminal to bubbletea's
// own detection.
func customInput(in io.Reader) io.Reader {
	if in == os.Stdin {
		return nil
	}
	return in
}

func customOutput(out io.Writer) io.Writer {
	if out == os.Stdout {
		return nil
	}
	return out
}
