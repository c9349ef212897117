package console

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

type Options struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run owns the terminal until the operator quits or ctx ends. The engine is
// torn down before Run returns.
func Run(ctx context.Context, engine Engine, queue Queue, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer engine.Teardown()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	finalModel, err := tea.NewProgram(newModel(ctx, engine, queue), programOpts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	final, ok := finalModel.(model)
	if !ok {
		return ErrUnexpectedModel
	}
	return final.err
}
