package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/bnema/concierge/internal/adapters/i18n"
	"github.com/bnema/concierge/internal/adapters/scheduler"
	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

type testRig struct {
	director *Director
	clock    clockwork.FakeClock
	resolver *i18n.Resolver
	events   *[]domain.Event
}

func newTestResolver(t *testing.T, locale domain.Locale) *i18n.Resolver {
	t.Helper()

	catalog, err := i18n.LoadCatalog()
	require.NoError(t, err)
	resolver, err := i18n.NewResolver(catalog, locale)
	require.NoError(t, err)
	return resolver
}

func newTestRig(t *testing.T, opts ...Option) testRig {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testEpoch)
	return newTestRigWithQueue(t, clock, scheduler.NewQueue(clock), opts...)
}

func newTestRigWithQueue(t *testing.T, clock clockwork.FakeClock, queue ports.Scheduler, opts ...Option) testRig {
	t.Helper()

	resolver := newTestResolver(t, domain.LocaleEN)
	ids := 0
	base := []Option{
		WithClock(clock),
		WithJitter(func(time.Duration) time.Duration { return 0 }),
		WithSessionIDs(func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		}),
	}

	d := NewDirector(resolver, queue, append(base, opts...)...)
	events := &[]domain.Event{}
	d.Subscribe(func(e domain.Event) { *events = append(*events, e) })

	return testRig{director: d, clock: clock, resolver: resolver, events: events}
}

func (r testRig) advance(d time.Duration) {
	r.clock.Advance(d)
	r.director.RunPending()
}

func (r testRig) drain() int {
	return Drain(r.director, r.clock)
}

func (r testRig) countEvents(kind domain.EventKind) int {
	n := 0
	for _, e := range *r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func transcript(s domain.Session) []string {
	lines := make([]string, 0, len(s.Messages))
	for _, msg := range s.Messages {
		lines = append(lines, string(msg.Role)+": "+msg.Text)
	}
	return lines
}
