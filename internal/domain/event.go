package domain

import "time"

type EventKind string

const (
	EventMessagePosted    EventKind = "message_posted"
	EventAgentStatus      EventKind = "agent_status"
	EventTaskAdded        EventKind = "task_added"
	EventMemoryProposed   EventKind = "memory_proposed"
	EventMemoryAccepted   EventKind = "memory_accepted"
	EventMemoryRejected   EventKind = "memory_rejected"
	EventViewChanged      EventKind = "view_changed"
	EventScenarioStarted  EventKind = "scenario_started"
	EventScenarioFinished EventKind = "scenario_finished"
	EventSessionReset     EventKind = "session_reset"
)

// Event describes one applied session mutation. Only the fields relevant to
// Kind are populated.
type Event struct {
	Kind      EventKind
	SessionID string
	At        time.Time
	Scenario  Scenario
	Agent     AgentID
	Status    AgentStatus
	Log       string
	Message   *Message
	Task      *TaskItem
	Memory    *Memory
	View      *View
}
