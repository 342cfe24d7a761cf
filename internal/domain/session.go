package domain

import (
	"fmt"
	"time"
)

// SessionSeed carries the locale-dependent values a fresh session starts from.
type SessionSeed struct {
	Destination    string
	Duration       string
	IdleLog        string
	InitialMessage string
	Memories       []Memory
	CreatedAt      time.Time
}

// Session is the whole in-memory state of one console session. It is rebuilt,
// never patched, when the locale changes.
type Session struct {
	ID       string
	Locale   Locale
	Agents   []Agent
	Form     FormData
	Memories []Memory
	Pending  []Memory
	Messages []Message
	View     View

	lastMemoryID MemoryID
}

func NewSession(id string, locale Locale, seed SessionSeed) Session {
	s := Session{
		ID:     id,
		Locale: locale,
		Agents: make([]Agent, 0, len(agentIDs)),
		Form: FormData{
			Destination: seed.Destination,
			Duration:    seed.Duration,
			Sections:    map[AgentID][]TaskItem{},
		},
		Memories: make([]Memory, 0, len(seed.Memories)),
		Pending:  []Memory{},
		View:     View{ActiveTab: TabProfile},
	}

	for _, id := range agentIDs {
		s.Agents = append(s.Agents, Agent{ID: id, Status: AgentIdle, Log: seed.IdleLog})
	}

	for i, memory := range seed.Memories {
		memory.ID = MemoryID(i + 1)
		s.Memories = append(s.Memories, memory)
	}
	s.lastMemoryID = MemoryID(len(seed.Memories))

	if seed.InitialMessage != "" {
		s.Messages = append(s.Messages, Message{Role: RoleAI, Text: seed.InitialMessage, Timestamp: seed.CreatedAt})
	}

	return s
}

func (s Session) Agent(id AgentID) Agent {
	return s.Agents[s.mustIndex(id)]
}

// SetAgentStatus overwrites one agent's entry. An id outside the roster is a
// programming error and panics.
func (s *Session) SetAgentStatus(id AgentID, status AgentStatus, log string) {
	s.Agents[s.mustIndex(id)] = Agent{ID: id, Status: status, Log: log}
}

func (s Session) mustIndex(id AgentID) int {
	i := id.index()
	if i < 0 || i >= len(s.Agents) {
		panic(fmt.Sprintf("domain: %v: %q", ErrUnknownAgent, id))
	}
	return i
}

func (s Session) AgentCounts() StatusCounts {
	var counts StatusCounts
	for _, agent := range s.Agents {
		switch agent.Status {
		case AgentIdle:
			counts.Idle++
		case AgentWorking:
			counts.Working++
		case AgentDone:
			counts.Done++
		}
	}
	return counts
}

func (s *Session) AddTask(id AgentID, item TaskItem) {
	s.mustIndex(id)
	if s.Form.Sections == nil {
		s.Form.Sections = map[AgentID][]TaskItem{}
	}
	s.Form.Sections[id] = append(s.Form.Sections[id], item)
}

func (s *Session) Post(role Role, text string, at time.Time) Message {
	msg := Message{Role: role, Text: text, Timestamp: at}
	s.Messages = append(s.Messages, msg)
	return msg
}

// ProposeMemory assigns the next id from the session sequence and puts the
// memory at the front of the pending queue. Duplicate content is kept.
func (s *Session) ProposeMemory(memory Memory) Memory {
	s.lastMemoryID++
	memory.ID = s.lastMemoryID
	s.Pending = prependMemory(s.Pending, memory)
	return memory
}

// AcceptMemory moves a pending memory to the front of the accepted list. It
// reports false and leaves the session untouched when id is not pending.
func (s *Session) AcceptMemory(id MemoryID) (Memory, bool) {
	i := indexOfMemory(s.Pending, id)
	if i < 0 {
		return Memory{}, false
	}

	memory := s.Pending[i]
	s.Pending = removeMemoryAt(s.Pending, i)
	s.Memories = prependMemory(s.Memories, memory)
	return memory, true
}

func (s *Session) RejectMemory(id MemoryID) (Memory, bool) {
	i := indexOfMemory(s.Pending, id)
	if i < 0 {
		return Memory{}, false
	}

	memory := s.Pending[i]
	s.Pending = removeMemoryAt(s.Pending, i)
	return memory, true
}

func (s *Session) PendingMemory(id MemoryID) (Memory, bool) {
	i := indexOfMemory(s.Pending, id)
	if i < 0 {
		return Memory{}, false
	}
	return s.Pending[i], true
}

// Clone returns a deep copy safe to hand to readers outside the owner.
func (s Session) Clone() Session {
	out := s
	out.Agents = append([]Agent(nil), s.Agents...)
	out.Form = s.Form.clone()
	out.Memories = append([]Memory{}, s.Memories...)
	out.Pending = append([]Memory{}, s.Pending...)
	out.Messages = append([]Message{}, s.Messages...)
	return out
}
