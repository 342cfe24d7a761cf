package application

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/concierge/internal/domain"
)

type AgentOverview struct {
	ID     domain.AgentID
	Name   string
	Status domain.AgentStatus
	Log    string
	Tasks  []domain.TaskItem
}

// Overview is the status panel projection of a session.
type Overview struct {
	SessionID       string
	Locale          domain.Locale
	Destination     string
	Duration        string
	Counts          domain.StatusCounts
	ProgressPercent int
	TotalTasks      int
	CompletedTasks  int
	HasTasks        bool
	MemoriesActive  int
	PendingReview   int
	Agents          []AgentOverview
	GeneratedAt     time.Time
}

type AgentDoc struct {
	ID          domain.AgentID
	Name        string
	Role        string
	Skills      []string
	Instruction string
}

type ActivityEntry struct {
	Time   string
	Event  string
	Status string
}

func (d *Director) Overview() Overview {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.overviewLocked()
}

func (d *Director) overviewLocked() Overview {
	s := d.session
	counts := s.AgentCounts()

	overview := Overview{
		SessionID:      s.ID,
		Locale:         s.Locale,
		Destination:    s.Form.Destination,
		Duration:       s.Form.Duration,
		Counts:         counts,
		TotalTasks:     s.Form.TotalTasks(),
		CompletedTasks: s.Form.CompletedTasks(),
		HasTasks:       s.Form.HasTasks(),
		MemoriesActive: len(s.Memories),
		PendingReview:  len(s.Pending),
		Agents:         make([]AgentOverview, 0, len(s.Agents)),
		GeneratedAt:    d.clock.Now(),
	}
	if total := counts.Total(); total > 0 {
		overview.ProgressPercent = int(math.Round(float64(counts.Done) / float64(total) * 100))
	}

	for _, agent := range s.Agents {
		overview.Agents = append(overview.Agents, AgentOverview{
			ID:     agent.ID,
			Name:   d.t("agents." + string(agent.ID)),
			Status: agent.Status,
			Log:    agent.Log,
			Tasks:  append([]domain.TaskItem(nil), s.Form.Tasks(agent.ID)...),
		})
	}

	return overview
}

func (d *Director) AgentDoc(id domain.AgentID) (AgentDoc, error) {
	if !id.Valid() {
		return AgentDoc{}, fmt.Errorf("agent doc: %w: %q", domain.ErrUnknownAgent, id)
	}

	prefix := "agentDocs." + string(id) + "."
	return AgentDoc{
		ID:          id,
		Name:        d.t("agents." + string(id)),
		Role:        d.t(prefix + "role"),
		Skills:      lookupStrings(d.translator, prefix+"skills"),
		Instruction: d.t(prefix + "instruction"),
	}, nil
}

// ActivityLog returns the canned activity feed shown in an agent's log tab.
func (d *Director) ActivityLog() []ActivityEntry {
	return []ActivityEntry{
		{Time: "Now", Event: d.t("logs.monitoring"), Status: "working"},
		{Time: "09:00 AM", Event: d.t("logs.scanning"), Status: "success"},
		{Time: "06:45 AM", Event: d.t("logs.securityUpdate"), Status: "info"},
		{Time: "04:30 AM", Event: d.t("logs.dataSync"), Status: "success"},
		{Time: "02:15 AM", Event: d.t("logs.systemCheck"), Status: "success"},
	}
}
