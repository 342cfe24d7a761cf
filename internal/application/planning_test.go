package application

import (
	"testing"
	"time"

	"github.com/bnema/concierge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPlanningRunsToCompletion(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.director.StartPlanning())
	assert.True(t, rig.director.Running(domain.ScenarioPlanning))
	assert.True(t, rig.director.Snapshot().View.Processing)

	rig.drain()

	s := rig.director.Snapshot()
	assert.False(t, rig.director.Running(domain.ScenarioPlanning))
	assert.False(t, s.View.Processing)
	require.Len(t, s.Form.Sections, 5)

	want := map[domain.AgentID]string{
		domain.AgentLifestyle: "Kaiseki dinner booked, no shellfish",
		domain.AgentAccess:    "Aisle seat and lounge access confirmed",
		domain.AgentTech:      "Preferences applied from dossier",
		domain.AgentWellness:  "Preferences applied from dossier",
		domain.AgentConcierge: "Preferences applied from dossier",
	}
	for id, label := range want {
		items := s.Form.Tasks(id)
		require.Len(t, items, 1, id)
		assert.Equal(t, domain.TaskItem{Kind: domain.TaskCheckbox, Label: label, Checked: true}, items[0])

		agent := s.Agent(id)
		assert.Equal(t, domain.AgentDone, agent.Status)
		assert.Equal(t, "Matched with long-term memory", agent.Log)
	}

	assert.Equal(t, []string{
		"ai: Good evening. Your Kyoto itinerary is ready for review whenever you are.",
		"user: Confirm the trip to Kyoto.",
		"ai: Reading your long-term dossier and briefing the team...",
	}, transcript(s))
	assert.Equal(t, 1, rig.countEvents(domain.EventScenarioFinished))
	assert.Equal(t, 5, rig.countEvents(domain.EventTaskAdded))
}

func TestStartPlanningStaggersAgents(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())

	rig.advance(499 * time.Millisecond)
	assert.Len(t, rig.director.Snapshot().Messages, 2)

	rig.advance(time.Millisecond)
	s := rig.director.Snapshot()
	assert.Len(t, s.Messages, 3)
	assert.Equal(t, domain.AgentDone, s.Agent(domain.AgentLifestyle).Status)
	assert.Equal(t, domain.AgentIdle, s.Agent(domain.AgentAccess).Status)

	rig.advance(800 * time.Millisecond)
	s = rig.director.Snapshot()
	assert.Equal(t, domain.AgentDone, s.Agent(domain.AgentAccess).Status)
	assert.Equal(t, domain.AgentIdle, s.Agent(domain.AgentTech).Status)
	assert.Equal(t, domain.StatusCounts{Idle: 3, Done: 2}, s.AgentCounts())

	rig.advance(3 * 800 * time.Millisecond)
	assert.False(t, rig.director.Running(domain.ScenarioPlanning))
	assert.True(t, rig.director.Idle())
}

func TestStartPlanningAgentStartsFollowIndexOrderUnderJitter(t *testing.T) {
	jitters := []time.Duration{499 * time.Millisecond, 0, 499 * time.Millisecond, 0, 250 * time.Millisecond}
	next := 0
	rig := newTestRig(t, WithJitter(func(max time.Duration) time.Duration {
		j := jitters[next%len(jitters)]
		next++
		return j
	}))

	require.NoError(t, rig.director.StartPlanning())
	rig.drain()

	var order []domain.AgentID
	for _, e := range *rig.events {
		if e.Kind == domain.EventAgentStatus && e.Status == domain.AgentWorking {
			order = append(order, e.Agent)
		}
	}
	assert.Equal(t, domain.AgentIDs(), order)
}

func TestStartPlanningWithRandomJitterAlwaysCompletes(t *testing.T) {
	for i := 0; i < 20; i++ {
		rig := newTestRig(t, WithJitter(randomJitter))
		require.NoError(t, rig.director.StartPlanning())
		rig.drain()

		s := rig.director.Snapshot()
		assert.Equal(t, domain.StatusCounts{Done: 5}, s.AgentCounts())
		assert.Equal(t, 5, s.Form.TotalTasks())
	}
}

func TestStartPlanningRejectsConcurrentRun(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.director.StartPlanning())
	err := rig.director.StartPlanning()
	require.ErrorIs(t, err, domain.ErrScenarioRunning)

	rig.drain()
	assert.Len(t, rig.director.Snapshot().Messages, 3, "rejected start must not post")

	require.NoError(t, rig.director.StartPlanning())
	rig.drain()
	assert.Len(t, rig.director.Snapshot().Form.Tasks(domain.AgentTech), 2)
}

func TestStartPlanningUsesDestinationOverride(t *testing.T) {
	rig := newTestRig(t, WithDestination("  Lisbon "))

	require.NoError(t, rig.director.StartPlanning())

	s := rig.director.Snapshot()
	assert.Equal(t, "Lisbon", s.Form.Destination)
	assert.Equal(t, "user: Confirm the trip to Lisbon.", transcript(s)[1])
}
