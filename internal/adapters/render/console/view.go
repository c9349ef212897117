package console

import (
	"fmt"
	"strings"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	crewPanelWidth = 34
	vitalBarWidth  = 10
	processingText = "> PROCESSING NEURAL LINK..."
	acknowledgeKey = "[ENTER] ACKNOWLEDGE"
)

func renderBoot(lines []string, s styles) string {
	rendered := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		rendered = append(rendered, s.boot.Render("> "+line))
	}
	rendered = append(rendered, s.cursor.Render("_"))
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderBriefing(text string, revealed bool, width int, s styles) string {
	boxWidth := width - 8
	if boxWidth < 20 {
		boxWidth = 20
	}
	if boxWidth > 72 {
		boxWidth = 72
	}

	parts := []string{
		s.title.Render("INCOMING TRANSMISSION // MOTHER"),
		"",
		s.message.Render(text),
	}
	if revealed {
		parts = append(parts, "", s.hint.Render(acknowledgeKey))
	} else {
		parts = append(parts, "", s.calm.Render("[ESC] SKIP"))
	}

	return s.briefing.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderCrew(crew []domain.Agent, s styles) string {
	lines := []string{s.title.Render("CREW MANIFEST")}
	if len(crew) == 0 {
		lines = append(lines, s.calm.Render("NO SIGNAL"))
	}

	for _, agent := range crew {
		name := s.agent(agent).Render(strings.ToUpper(string(agent.ID)))
		state := s.detail.Render("ALIVE")
		if !agent.Alive() {
			state = s.dead.Render(strings.ToUpper(string(agent.Status)))
		}
		lines = append(lines,
			name+" "+state,
			s.detail.Render("VITAL: ")+vitalBar(agent.Alive(), vitalBarWidth, s),
			s.location.Render("LOC: "+agent.LocationLabel()),
		)
	}

	lines = append(lines, "", s.header.Render(fmt.Sprintf("TOTAL PERSONNEL: %d // ACTIVE: %d", len(crew), domain.CountAlive(crew))))
	return s.panel.Width(crewPanelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderShipGrid(crew []domain.Agent, s styles) string {
	lines := []string{s.title.Render("SHIP GRID")}
	for _, room := range domain.ShipLocations {
		occupants := domain.Occupants(crew, room)
		names := make([]string, 0, len(occupants))
		for _, id := range occupants {
			names = append(names, s.agent(domain.Agent{ID: id, Status: domain.AgentStatusAlive}).Render(string(id)))
		}
		label := s.location.Render(fmt.Sprintf("%-10s", strings.ToUpper(room)))
		if len(names) == 0 {
			lines = append(lines, label+" "+s.calm.Render("-"))
			continue
		}
		lines = append(lines, label+" "+strings.Join(names, " "))
	}
	return s.panel.Width(crewPanelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// vitalBar is full for living agents and empty otherwise.
func vitalBar(alive bool, width int, s styles) string {
	filled := 0
	if alive {
		filled = width
	}
	return "[" + s.barFill.Render(strings.Repeat("|", filled)) + s.barEmpty.Render(strings.Repeat(" ", width-filled)) + "]"
}

func renderAlert(snapshot domain.WorldSnapshot, s styles) string {
	if !snapshot.HasAlert() {
		return s.calm.Render("ALERT: NONE")
	}
	return s.alert.Render("!! ALERT: " + strings.ToUpper(snapshot.ActiveAlert) + " !!")
}

func renderLog(entries []domain.LogEntry, s styles) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, renderLogEntry(entry, s))
	}
	return strings.Join(lines, "\n")
}

func renderLogEntry(entry domain.LogEntry, s styles) string {
	source := s.source
	marker := "  "
	switch {
	case entry.Local():
		source = s.local
		marker = "* "
	case entry.Source == domain.SourceSystem:
		source = s.system
	}

	return marker +
		s.timestamp.Render("["+entry.Timestamp+"]") + " " +
		source.Render(entry.Source+":") + " " +
		s.message.Render(entry.Message)
}
