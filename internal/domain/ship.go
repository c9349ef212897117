package domain

import "strings"

// ShipLocations are the rooms of the ship grid, in display order.
var ShipLocations = []string{"Bridge", "MedBay", "Admin", "O2", "Electrical", "Storage", "Reactor"}

// Occupants returns the living agents reported in the named room. Location
// matching ignores case; agents in unknown rooms are not returned.
func Occupants(crew []Agent, location string) []AgentID {
	var ids []AgentID
	for _, agent := range crew {
		if agent.Alive() && strings.EqualFold(strings.TrimSpace(agent.Location), location) {
			ids = append(ids, agent.ID)
		}
	}
	return ids
}
