package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type linkState int

const (
	linkContacting linkState = iota
	linkOnline
	linkUnreachable
)

type statusFetchedMsg struct {
	snapshot domain.WorldSnapshot
	err      error
}

// crewLinkModel shows the link to MOTHER while one status snapshot is fetched.
type crewLinkModel struct {
	spinner  spinner.Model
	online   lipgloss.Style
	offline  lipgloss.Style
	target   string
	fetch    tea.Cmd
	state    linkState
	waited   time.Duration
	snapshot domain.WorldSnapshot
	err      error
}

func newCrewLinkModel(target string, fetch tea.Cmd) crewLinkModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("46"))),
	)

	return crewLinkModel{
		spinner: s,
		online:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		offline: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		target:  target,
		fetch:   fetch,
	}
}

func (m crewLinkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m crewLinkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != linkContacting {
			return m, nil
		}
		m.waited += m.spinner.Spinner.FPS
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case statusFetchedMsg:
		m.snapshot = msg.snapshot
		m.err = msg.err
		if msg.err != nil {
			m.state = linkUnreachable
		} else {
			m.state = linkOnline
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m crewLinkModel) View() string {
	switch m.state {
	case linkOnline:
		return m.online.Render(fmt.Sprintf("MOTHER ONLINE @ %s // %d CREW ON MANIFEST", m.target, len(m.snapshot.Crew))) + "\n"
	case linkUnreachable:
		return m.offline.Render(fmt.Sprintf("MOTHER UNREACHABLE @ %s", m.target)) + "\n"
	}

	line := fmt.Sprintf("%s CONTACTING MOTHER @ %s", m.spinner.View(), m.target)
	if m.waited >= time.Second {
		line += fmt.Sprintf(" (%ds)", int(m.waited/time.Second))
	}
	return line
}

// fetchCrewStatus fetches one snapshot while the link state is drawn on output.
func fetchCrewStatus(ctx context.Context, output io.Writer, baseURL string, fetch func(context.Context) (domain.WorldSnapshot, error)) (domain.WorldSnapshot, error) {
	fetchCmd := func() tea.Msg {
		snapshot, err := fetch(ctx)
		return statusFetchedMsg{snapshot: snapshot, err: err}
	}

	p := tea.NewProgram(
		newCrewLinkModel(linkTarget(baseURL), fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.WorldSnapshot{}, err
	}

	result, ok := finalModel.(crewLinkModel)
	if !ok {
		return domain.WorldSnapshot{}, fmt.Errorf("unexpected final link model type %T", finalModel)
	}

	return result.snapshot, result.err
}

func linkTarget(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return baseURL
	}
	return parsed.Host
}
