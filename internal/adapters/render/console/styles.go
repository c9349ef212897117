package console

import (
	"github.com/bnema/alignment-console/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	boot       lipgloss.Style
	cursor     lipgloss.Style
	briefing   lipgloss.Style
	hint       lipgloss.Style
	panel      lipgloss.Style
	detail     lipgloss.Style
	location   lipgloss.Style
	dead       lipgloss.Style
	alert      lipgloss.Style
	calm       lipgloss.Style
	timestamp  lipgloss.Style
	system     lipgloss.Style
	source     lipgloss.Style
	local      lipgloss.Style
	message    lipgloss.Style
	processing lipgloss.Style
	prompt     lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	agents     map[domain.AgentID]lipgloss.Style
	agentOther lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		boot:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		cursor:     lipgloss.NewStyle().Blink(true).Foreground(lipgloss.Color("46")),
		briefing:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("46")).Padding(1, 2),
		hint:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		panel:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("28")).Padding(0, 1),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		location:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		dead:       lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("160")),
		alert:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		calm:       lipgloss.NewStyle().Faint(true),
		timestamp:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		system:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		source:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		local:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		message:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		processing: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		prompt:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		agents: map[domain.AgentID]lipgloss.Style{
			"Red":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			"Blue":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
			"Green":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),
			"Yellow": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
			"Purple": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("129")),
		},
		agentOther: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
	}
}

func (s styles) agent(a domain.Agent) lipgloss.Style {
	if !a.Alive() {
		return s.dead
	}
	if style, ok := s.agents[a.ID]; ok {
		return style
	}
	return s.agentOther
}
