package application

import (
	"testing"
	"time"

	"github.com/bnema/concierge/internal/adapters/scheduler"
	"github.com/bnema/concierge/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leakyQueue never drops anything on Clear, leaving stale steps to the
// director's generation check.
type leakyQueue struct {
	*scheduler.Queue
}

func (leakyQueue) Clear() int { return 0 }

func TestNewDirectorSeedsSession(t *testing.T) {
	rig := newTestRig(t)
	s := rig.director.Snapshot()

	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, domain.LocaleEN, s.Locale)
	assert.Equal(t, "Kyoto", s.Form.Destination)
	assert.Equal(t, "5 days, 4 nights", s.Form.Duration)
	assert.Equal(t, domain.StatusCounts{Idle: 5}, s.AgentCounts())
	assert.Len(t, s.Memories, 3)
	assert.Empty(t, s.Pending)
	assert.Equal(t, domain.View{ActiveTab: domain.TabProfile}, s.View)
	assert.True(t, rig.director.Idle())
}

func TestSetLocaleCancelsScheduledSteps(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())
	require.NoError(t, rig.director.StartVoiceDemo())
	rig.advance(time.Second)

	require.NoError(t, rig.director.SetLocale(domain.LocaleZH))
	assert.True(t, rig.director.Idle())
	assert.False(t, rig.director.Running(domain.ScenarioPlanning))
	assert.False(t, rig.director.Running(domain.ScenarioVoice))

	rig.advance(time.Minute)

	s := rig.director.Snapshot()
	assert.Equal(t, "session-2", s.ID)
	assert.Equal(t, domain.LocaleZH, s.Locale)
	assert.Equal(t, domain.StatusCounts{Idle: 5}, s.AgentCounts())
	assert.False(t, s.Form.HasTasks())
	assert.Len(t, s.Messages, 1)
	assert.Empty(t, s.Pending)
	assert.Equal(t, domain.View{ActiveTab: domain.TabProfile}, s.View)
	assert.Equal(t, 1, rig.countEvents(domain.EventSessionReset))
}

func TestStaleStepsAreDroppedAfterReset(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testEpoch)
	rig := newTestRigWithQueue(t, clock, leakyQueue{scheduler.NewQueue(clock)})

	require.NoError(t, rig.director.StartPlanning())
	require.NoError(t, rig.director.StartVoiceDemo())
	rig.director.Reset()
	assert.False(t, rig.director.Idle(), "leaky queue keeps the old steps")

	*rig.events = nil
	fired := rig.drain()
	assert.Positive(t, fired)

	s := rig.director.Snapshot()
	assert.Equal(t, domain.StatusCounts{Idle: 5}, s.AgentCounts())
	assert.False(t, s.Form.HasTasks())
	assert.Len(t, s.Messages, 1)
	assert.Empty(t, *rig.events)
}

func TestScenarioRestartsAfterLocaleSwitch(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())
	require.NoError(t, rig.director.SetLocale(domain.LocaleZH))

	require.NoError(t, rig.director.StartPlanning())
	rig.drain()

	s := rig.director.Snapshot()
	assert.Equal(t, domain.StatusCounts{Done: 5}, s.AgentCounts())
	assert.Equal(t, rig.resolver.Resolve("demo.memoryMatched"), s.Agent(domain.AgentTech).Log)
}

func TestSetLocaleRejectsUnknownLocale(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())

	err := rig.director.SetLocale("fr")
	require.ErrorIs(t, err, domain.ErrUnsupportedLocale)
	assert.Equal(t, domain.LocaleEN, rig.director.Locale())
	assert.True(t, rig.director.Running(domain.ScenarioPlanning))
}

func TestToggleLocale(t *testing.T) {
	rig := newTestRig(t)

	assert.Equal(t, domain.LocaleZH, rig.director.ToggleLocale())
	assert.Equal(t, domain.LocaleZH, rig.director.Snapshot().Locale)
	assert.Equal(t, domain.LocaleEN, rig.director.ToggleLocale())
	assert.Equal(t, "Kyoto", rig.director.Snapshot().Form.Destination)
	assert.Equal(t, 2, rig.countEvents(domain.EventSessionReset))
}

func TestAcceptMemory(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartVoiceDemo())
	rig.advance(3 * time.Second)

	pending := rig.director.Snapshot().Pending
	require.Len(t, pending, 1)
	id := pending[0].ID

	require.True(t, rig.director.AcceptMemory(id))
	s := rig.director.Snapshot()
	assert.Empty(t, s.Pending)
	require.Len(t, s.Memories, 4)
	assert.Equal(t, "Client follows a plant-based diet", s.Memories[0].Content)
	assert.Equal(t, "system: Memory updated: Client follows a plant-based diet", transcript(s)[len(s.Messages)-1])

	assert.False(t, rig.director.AcceptMemory(id))
	assert.False(t, rig.director.RejectMemory(id))
	s = rig.director.Snapshot()
	assert.Len(t, s.Memories, 4)
	assert.Equal(t, 1, rig.countEvents(domain.EventMemoryAccepted))
}

func TestRejectMemory(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartVoiceDemo())
	rig.advance(3 * time.Second)

	id := rig.director.Snapshot().Pending[0].ID
	before := len(rig.director.Snapshot().Messages)

	require.True(t, rig.director.RejectMemory(id))
	s := rig.director.Snapshot()
	assert.Empty(t, s.Pending)
	assert.Len(t, s.Memories, 3)
	assert.Len(t, s.Messages, before)

	assert.False(t, rig.director.RejectMemory(id))
	assert.False(t, rig.director.AcceptMemory(domain.MemoryID(99)))
}

func TestPostUserMessage(t *testing.T) {
	rig := newTestRig(t)

	assert.False(t, rig.director.PostUserMessage("   "))
	assert.True(t, rig.director.PostUserMessage("  Please book a tea ceremony. "))

	s := rig.director.Snapshot()
	require.Len(t, s.Messages, 2)
	assert.Equal(t, domain.Message{Role: domain.RoleUser, Text: "Please book a tea ceremony.", Timestamp: testEpoch}, s.Messages[1])
}

func TestSelectAgent(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.director.SelectAgent(domain.AgentWellness, domain.TabLogs))
	assert.Equal(t, domain.View{SelectedAgent: domain.AgentWellness, ActiveTab: domain.TabLogs}, rig.director.Snapshot().View)

	require.NoError(t, rig.director.SelectAgent(domain.AgentTech, "bogus"))
	assert.Equal(t, domain.TabProfile, rig.director.Snapshot().View.ActiveTab)

	err := rig.director.SelectAgent("butler", domain.TabProfile)
	require.ErrorIs(t, err, domain.ErrUnknownAgent)
	assert.Equal(t, domain.AgentTech, rig.director.Snapshot().View.SelectedAgent)

	rig.director.CloseAgent()
	assert.Empty(t, rig.director.Snapshot().View.SelectedAgent)
}

func TestViewChangesEmitOnlyOnChange(t *testing.T) {
	rig := newTestRig(t)

	rig.director.ShowOverview(true)
	rig.director.ShowOverview(true)
	rig.director.DismissAlert()
	rig.director.ShowOverview(false)

	assert.Equal(t, 2, rig.countEvents(domain.EventViewChanged))
}

func TestListenersSeeEventsInOrder(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.director.StartPlanning())
	rig.drain()

	events := *rig.events
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventScenarioStarted, events[0].Kind)
	assert.Equal(t, domain.ScenarioPlanning, events[0].Scenario)
	assert.Equal(t, domain.EventScenarioFinished, events[len(events)-1].Kind)

	for i, e := range events {
		assert.Equal(t, "session-1", e.SessionID, i)
		if i > 0 {
			assert.False(t, e.At.Before(events[i-1].At), i)
		}
	}
}

func TestListenerMayReadDirector(t *testing.T) {
	rig := newTestRig(t)

	var seen []int
	rig.director.Subscribe(func(e domain.Event) {
		if e.Kind == domain.EventTaskAdded {
			seen = append(seen, rig.director.Overview().TotalTasks)
		}
	})

	require.NoError(t, rig.director.StartPlanning())
	rig.drain()

	assert.Len(t, seen, 5)
	assert.Equal(t, 5, seen[len(seen)-1])
}
