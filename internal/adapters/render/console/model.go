package console

import (
	"context"
	"errors"

	"github.com/bnema/alignment-console/internal/application"
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	inputLimit    = 280
)

// Engine is the session surface the console drives. Every method is called
// from the bubbletea update goroutine.
type Engine interface {
	Start(ctx context.Context)
	Teardown()
	Phase() domain.SessionPhase
	DismissBriefing()
	Submit(raw string) (application.SubmitOutcome, error)
	Processing() bool
	BootLines() []string
	BriefingText() string
	BriefingRevealed() bool
	World() domain.WorldSnapshot
	LogView() []domain.LogEntry
}

// Queue hands out engine callbacks one at a time.
type Queue interface {
	Next(ctx context.Context) (func(), error)
}

var _ Engine = (*application.Session)(nil)

type startMsg struct{}

type loopTaskMsg struct {
	fn func()
}

type loopDoneMsg struct {
	err error
}

type model struct {
	ctx    context.Context
	engine Engine
	queue  Queue
	styles styles

	input   textinput.Model
	logs    viewport.Model
	spinner spinner.Model

	width  int
	height int
	err    error
}

func newModel(ctx context.Context, engine Engine, queue Queue) model {
	s := newStyles()

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = s.prompt
	input.Placeholder = "@AgentID message"
	input.CharLimit = inputLimit

	m := model{
		ctx:     ctx,
		engine:  engine,
		queue:   queue,
		styles:  s,
		input:   input,
		logs:    viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.processing)),
	}
	return m.resize(defaultWidth, defaultHeight)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		m.waitForTask(),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.engine.Start(m.ctx)
		return m.refresh(), nil
	case loopTaskMsg:
		msg.fn()
		return m.refresh(), m.waitForTask()
	case loopDoneMsg:
		if !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		m.engine.Teardown()
		return m, tea.Quit
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height).refresh(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.engine.Teardown()
		return m, tea.Quit
	}

	switch m.engine.Phase() {
	case domain.PhaseBriefing:
		switch msg.String() {
		case "enter", "esc":
			m.engine.DismissBriefing()
			return m.refresh(), nil
		}
		return m, nil
	case domain.PhaseActive:
		return m.handleActiveKey(msg)
	}
	return m, nil
}

func (m model) handleActiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	case "enter":
		outcome, _ := m.engine.Submit(m.input.Value())
		if outcome.ClearsInput() {
			m.input.Reset()
		}
		return m.refresh(), nil
	}

	if m.engine.Processing() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	switch m.engine.Phase() {
	case domain.PhaseBooting:
		return renderBoot(m.engine.BootLines(), m.styles)
	case domain.PhaseBriefing:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			renderBriefing(m.engine.BriefingText(), m.engine.BriefingRevealed(), m.width, m.styles))
	}

	world := m.engine.World()
	side := lipgloss.JoinVertical(lipgloss.Left, renderCrew(world.Crew, m.styles), renderShipGrid(world.Crew, m.styles))

	status := m.input.View()
	if m.engine.Processing() {
		status = m.spinner.View() + " " + m.styles.processing.Render(processingText)
	}
	pane := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("/BIN/BASH -- SYSADMIN_CONSOLE"),
		renderAlert(world, m.styles),
		m.logs.View(),
		status,
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, side, " ", pane)
}

func (m model) waitForTask() tea.Cmd {
	ctx := m.ctx
	queue := m.queue
	return func() tea.Msg {
		fn, err := queue.Next(ctx)
		if err != nil {
			return loopDoneMsg{err: err}
		}
		return loopTaskMsg{fn: fn}
	}
}

// refresh syncs the widgets with engine state after every engine callback.
func (m model) refresh() model {
	if m.engine.Phase() != domain.PhaseActive {
		return m
	}

	if m.engine.Processing() {
		m.input.Blur()
	} else if !m.input.Focused() {
		m.input.Focus()
	}

	atBottom := m.logs.AtBottom()
	m.logs.SetContent(renderLog(m.engine.LogView(), m.styles))
	if atBottom {
		m.logs.GotoBottom()
	}
	return m
}

func (m model) resize(width, height int) model {
	m.width = width
	m.height = height

	logWidth := width - crewPanelWidth - 4
	if logWidth < 20 {
		logWidth = 20
	}
	logHeight := height - 4
	if logHeight < 3 {
		logHeight = 3
	}
	m.logs.Width = logWidth
	m.logs.Height = logHeight
	m.input.Width = logWidth - 4
	return m
}
