package domain

import "fmt"

type CommandEnvelope struct {
	AgentID       AgentID
	Message       string
	CorrelationID string
}

func (c CommandEnvelope) EchoMessage() string {
	return fmt.Sprintf("[Private to %s]: %s", c.AgentID, c.Message)
}
