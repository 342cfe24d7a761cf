package domain

import "fmt"

type AgentID string

const (
	AgentLifestyle AgentID = "lifestyle"
	AgentAccess    AgentID = "access"
	AgentTech      AgentID = "tech"
	AgentWellness  AgentID = "wellness"
	AgentConcierge AgentID = "concierge"
)

var agentIDs = [...]AgentID{
	AgentLifestyle,
	AgentAccess,
	AgentTech,
	AgentWellness,
	AgentConcierge,
}

// AgentIDs returns the fixed agent roster in display order.
func AgentIDs() []AgentID {
	ids := make([]AgentID, len(agentIDs))
	copy(ids, agentIDs[:])
	return ids
}

func (id AgentID) Valid() bool {
	return id.index() >= 0
}

func (id AgentID) index() int {
	for i, candidate := range agentIDs {
		if candidate == id {
			return i
		}
	}
	return -1
}

func ParseAgentID(raw string) (AgentID, error) {
	id := AgentID(raw)
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAgent, raw)
	}
	return id, nil
}

type AgentStatus string

const (
	AgentIdle    AgentStatus = "idle"
	AgentWorking AgentStatus = "working"
	AgentDone    AgentStatus = "done"
)

type Agent struct {
	ID     AgentID
	Status AgentStatus
	Log    string
}

type StatusCounts struct {
	Idle    int
	Working int
	Done    int
}

func (c StatusCounts) Total() int {
	return c.Idle + c.Working + c.Done
}
