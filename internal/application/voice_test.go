package application

import (
	"testing"
	"time"

	"github.com/bnema/concierge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartVoiceDemoRunsToCompletion(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.director.StartVoiceDemo())
	rig.drain()

	s := rig.director.Snapshot()
	assert.False(t, rig.director.Running(domain.ScenarioVoice))
	assert.False(t, rig.director.Running(domain.ScenarioAlert))

	require.Len(t, s.Form.Tasks(domain.AgentLifestyle), 1)
	assert.Equal(t, domain.TaskItem{
		Kind:    domain.TaskAlert,
		Label:   "All dining reservations switched to plant-based menus",
		Checked: true,
	}, s.Form.Tasks(domain.AgentLifestyle)[0])

	require.Len(t, s.Form.Tasks(domain.AgentAccess), 1)
	assert.Equal(t, domain.TaskAlert, s.Form.Tasks(domain.AgentAccess)[0].Kind)
	assert.Equal(t, "Rebooked on an earlier flight, same seat preference", s.Form.Tasks(domain.AgentAccess)[0].Label)

	require.Len(t, s.Pending, 1)
	assert.Equal(t, domain.Memory{
		ID:           4,
		Type:         "habit",
		Content:      "Client follows a plant-based diet",
		SourceAgent:  domain.AgentLifestyle,
		CreatedLabel: "Just now",
		IsNew:        true,
	}, s.Pending[0])

	assert.Equal(t, []string{
		"ai: Good evening. Your Kyoto itinerary is ready for review whenever you are.",
		"user: I have started a plant-based diet this month, please adjust everything.",
		"ai: Understood. Every reservation now reflects your plant-based diet. I noted this for your dossier, pending your approval.",
		"ai: Here is a summary of where every agent stands.",
		"system: Proactive alert: Your outbound flight has been rescheduled by the airline.",
	}, transcript(s))

	assert.Equal(t, domain.View{ActiveTab: domain.TabMemory, ShowAlert: true}, s.View)
	assert.Equal(t, domain.Agent{ID: domain.AgentAccess, Status: domain.AgentDone, Log: "Resolved before you noticed"}, s.Agent(domain.AgentAccess))
	assert.Equal(t, domain.Agent{ID: domain.AgentLifestyle, Status: domain.AgentDone, Log: "Update complete"}, s.Agent(domain.AgentLifestyle))
}

func TestStartVoiceDemoTimeline(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartVoiceDemo())

	s := rig.director.Snapshot()
	assert.True(t, s.View.Listening)
	assert.Len(t, s.Messages, 1)

	rig.advance(2 * time.Second)
	s = rig.director.Snapshot()
	assert.False(t, s.View.Listening)
	assert.True(t, s.View.Processing)
	assert.Equal(t, domain.AgentWorking, s.Agent(domain.AgentLifestyle).Status)
	assert.Equal(t, "Analyzing dietary change", s.Agent(domain.AgentLifestyle).Log)
	assert.Len(t, s.Messages, 2)

	rig.advance(time.Second)
	s = rig.director.Snapshot()
	assert.False(t, s.View.Processing)
	assert.Equal(t, domain.AgentDone, s.Agent(domain.AgentLifestyle).Status)
	assert.Len(t, s.Pending, 1)
	assert.Len(t, s.Messages, 3)

	rig.advance(1500 * time.Millisecond)
	s = rig.director.Snapshot()
	assert.Equal(t, domain.AgentLifestyle, s.View.SelectedAgent)
	assert.Equal(t, domain.TabMemory, s.View.ActiveTab)

	rig.advance(6500 * time.Millisecond)
	s = rig.director.Snapshot()
	assert.Empty(t, s.View.SelectedAgent)
	assert.False(t, s.View.ShowOverview)
	assert.Len(t, s.Messages, 4)

	rig.advance(500 * time.Millisecond)
	assert.True(t, rig.director.Snapshot().View.ShowOverview)

	rig.advance(5500 * time.Millisecond)
	s = rig.director.Snapshot()
	assert.False(t, s.View.ShowOverview)
	assert.True(t, s.View.ShowAlert)
	assert.Equal(t, domain.AgentWorking, s.Agent(domain.AgentAccess).Status)
	assert.Equal(t, "Rebooking outbound flight", s.Agent(domain.AgentAccess).Log)
	assert.True(t, rig.director.Running(domain.ScenarioAlert))

	rig.advance(2500 * time.Millisecond)
	s = rig.director.Snapshot()
	assert.Equal(t, domain.AgentDone, s.Agent(domain.AgentAccess).Status)
	assert.False(t, rig.director.Running(domain.ScenarioVoice))
	assert.True(t, rig.director.Idle())
}

func TestStartVoiceDemoRejectsWhileRunning(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartVoiceDemo())

	require.ErrorIs(t, rig.director.StartVoiceDemo(), domain.ErrScenarioRunning)

	rig.advance(2500 * time.Millisecond)
	require.False(t, rig.director.Snapshot().View.Listening)
	require.ErrorIs(t, rig.director.StartVoiceDemo(), domain.ErrScenarioRunning, "guard outlives the listening window")

	rig.advance(7500 * time.Second)
	require.ErrorIs(t, rig.director.StartVoiceDemo(), domain.ErrScenarioRunning, "guard covers the whole chain")

	rig.drain()
	require.NoError(t, rig.director.StartVoiceDemo())
}

func TestAlertBannerStaysUntilDismissed(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartVoiceDemo())
	rig.drain()

	rig.advance(time.Hour)
	assert.True(t, rig.director.Snapshot().View.ShowAlert)

	rig.director.DismissAlert()
	assert.False(t, rig.director.Snapshot().View.ShowAlert)
}

func TestPlanningAndVoiceInterleave(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())
	require.NoError(t, rig.director.StartVoiceDemo())

	rig.drain()

	s := rig.director.Snapshot()
	assert.Len(t, s.Form.Tasks(domain.AgentLifestyle), 2)
	assert.Len(t, s.Form.Tasks(domain.AgentAccess), 2)
	assert.Len(t, s.Form.Tasks(domain.AgentTech), 1)
	assert.Equal(t, domain.StatusCounts{Done: 5}, s.AgentCounts())
}
