package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bnema/concierge/internal/domain"
	"github.com/bnema/concierge/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listener receives every applied session mutation. Listeners run on the
// goroutine that caused the mutation, after the director lock is released.
type Listener func(domain.Event)

type Option func(*Director)

func WithClock(clock ports.Clock) Option {
	return func(d *Director) { d.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Director) { d.logger = logger }
}

func WithTimings(timings Timings) Option {
	return func(d *Director) { d.timings = timings }
}

// WithJitter replaces the random start jitter of planning agents. fn receives
// the configured maximum and must return a value in [0, max).
func WithJitter(fn func(max time.Duration) time.Duration) Option {
	return func(d *Director) { d.jitter = fn }
}

// WithDestination overrides the locale's default trip destination.
func WithDestination(destination string) Option {
	return func(d *Director) { d.destination = strings.TrimSpace(destination) }
}

func WithSessionIDs(fn func() string) Option {
	return func(d *Director) { d.newSessionID = fn }
}

// Director owns the session state and runs the scripted scenarios against
// it. All state access is serialized by one mutex; scheduled steps fire from
// RunPending or Run.
type Director struct {
	translator   ports.Translator
	clock        ports.Clock
	logger       *zap.Logger
	timings      Timings
	jitter       func(time.Duration) time.Duration
	destination  string
	newSessionID func() string

	mu         sync.Mutex
	queue      ports.Scheduler
	session    domain.Session
	generation ports.RunToken
	running    map[domain.Scenario]bool
	pending    []domain.Event

	listenersMu sync.RWMutex
	listeners   []Listener

	wake chan struct{}
}

func NewDirector(translator ports.Translator, queue ports.Scheduler, opts ...Option) *Director {
	d := &Director{
		translator:   translator,
		queue:        queue,
		clock:        ports.SystemClock(),
		logger:       zap.NewNop(),
		timings:      DefaultTimings(),
		jitter:       randomJitter,
		newSessionID: func() string { return uuid.NewString() },
		running:      map[domain.Scenario]bool{},
		wake:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.generation = 1
	d.session = d.buildSession()
	return d
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

func (d *Director) Subscribe(listener Listener) {
	d.listenersMu.Lock()
	defer d.listenersMu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Snapshot returns a deep copy of the current session.
func (d *Director) Snapshot() domain.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Clone()
}

func (d *Director) Locale() domain.Locale {
	return d.translator.Locale()
}

func (d *Director) Running(scenario domain.Scenario) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running[scenario]
}

// Idle reports whether nothing is scheduled.
func (d *Director) Idle() bool {
	_, ok := d.NextDue()
	return !ok
}

func (d *Director) NextDue() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Next()
}

// RunPending fires every scheduled step that is due by the clock's now.
func (d *Director) RunPending() int {
	var fired int
	d.do(func() {
		fired = d.queue.RunDue(d.clock.Now())
	})
	return fired
}

// Run drives scheduled steps in real time until ctx is done.
func (d *Director) Run(ctx context.Context) error {
	for {
		due, ok := d.NextDue()
		var fire <-chan time.Time
		var stop func() bool
		if ok {
			wait := due.Sub(d.clock.Now())
			if wait <= 0 {
				d.RunPending()
				continue
			}
			timer := d.clock.NewTimer(wait)
			fire, stop = timer.Chan(), timer.Stop
		}

		select {
		case <-ctx.Done():
			if stop != nil {
				stop()
			}
			return nil
		case <-d.wake:
			if stop != nil {
				stop()
			}
		case <-fire:
			d.RunPending()
		}
	}
}

func (d *Director) SetLocale(locale domain.Locale) error {
	var err error
	d.do(func() {
		if setErr := d.translator.SetLocale(locale); setErr != nil {
			err = fmt.Errorf("set locale: %w", setErr)
			return
		}
		d.resetLocked()
	})
	return err
}

func (d *Director) ToggleLocale() domain.Locale {
	var locale domain.Locale
	d.do(func() {
		locale = d.translator.Locale().Other()
		if err := d.translator.SetLocale(locale); err != nil {
			d.logger.Error("toggle locale", zap.Error(err))
			locale = d.translator.Locale()
			return
		}
		d.resetLocked()
	})
	return locale
}

// Reset discards the session and every scheduled step and starts over in the
// active locale.
func (d *Director) Reset() {
	d.do(d.resetLocked)
}

func (d *Director) resetLocked() {
	dropped := d.queue.Clear()
	d.generation++
	d.running = map[domain.Scenario]bool{}
	d.session = d.buildSession()

	d.logger.Info("session reset",
		zap.String("session_id", d.session.ID),
		zap.String("locale", string(d.session.Locale)),
		zap.Int("cancelled_steps", dropped),
	)
	d.emit(domain.Event{Kind: domain.EventSessionReset})
}

func (d *Director) buildSession() domain.Session {
	destination := d.destination
	if destination == "" {
		destination = d.t("demo.destination")
	}

	return domain.NewSession(d.newSessionID(), d.translator.Locale(), domain.SessionSeed{
		Destination:    destination,
		Duration:       d.t("demo.duration"),
		IdleLog:        d.t("agents.idle"),
		InitialMessage: d.t("demo.initialMessage"),
		Memories:       seedMemories(d.translator),
		CreatedAt:      d.clock.Now(),
	})
}

// AcceptMemory moves a pending memory into the accepted store and records
// the change in the transcript. Unknown ids are ignored.
func (d *Director) AcceptMemory(id domain.MemoryID) bool {
	var ok bool
	d.do(func() {
		var memory domain.Memory
		memory, ok = d.session.AcceptMemory(id)
		if !ok {
			return
		}
		d.emit(domain.Event{Kind: domain.EventMemoryAccepted, Agent: memory.SourceAgent, Memory: &memory})
		d.post(domain.RoleSystem, format(d.t("demo.memoryTuning"), map[string]string{"content": memory.Content}))
	})
	return ok
}

func (d *Director) RejectMemory(id domain.MemoryID) bool {
	var ok bool
	d.do(func() {
		var memory domain.Memory
		memory, ok = d.session.RejectMemory(id)
		if ok {
			d.emit(domain.Event{Kind: domain.EventMemoryRejected, Agent: memory.SourceAgent, Memory: &memory})
		}
	})
	return ok
}

// PostUserMessage appends free text typed by the client. Blank input is
// dropped.
func (d *Director) PostUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	d.do(func() { d.post(domain.RoleUser, text) })
	return true
}

func (d *Director) SelectAgent(id domain.AgentID, tab domain.Tab) error {
	if !id.Valid() {
		return fmt.Errorf("select agent: %w: %q", domain.ErrUnknownAgent, id)
	}
	if !tab.Valid() {
		tab = domain.TabProfile
	}
	d.do(func() {
		d.updateView(func(v *domain.View) {
			v.SelectedAgent = id
			v.ActiveTab = tab
		})
	})
	return nil
}

func (d *Director) CloseAgent() {
	d.do(func() {
		d.updateView(func(v *domain.View) { v.SelectedAgent = "" })
	})
}

func (d *Director) ShowOverview(show bool) {
	d.do(func() {
		d.updateView(func(v *domain.View) { v.ShowOverview = show })
	})
}

// DismissAlert closes the proactive alert banner. The banner never closes on
// its own.
func (d *Director) DismissAlert() {
	d.do(func() {
		d.updateView(func(v *domain.View) { v.ShowAlert = false })
	})
}

// do runs fn under the lock and publishes the events it produced once the
// lock is released.
func (d *Director) do(fn func()) {
	d.mu.Lock()
	fn()
	events := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.publish(events)
}

func (d *Director) publish(events []domain.Event) {
	if len(events) == 0 {
		return
	}

	d.listenersMu.RLock()
	listeners := append([]Listener(nil), d.listeners...)
	d.listenersMu.RUnlock()

	for _, event := range events {
		for _, listener := range listeners {
			listener(event)
		}
	}
}

func (d *Director) emit(event domain.Event) {
	event.SessionID = d.session.ID
	if event.At.IsZero() {
		event.At = d.clock.Now()
	}
	d.pending = append(d.pending, event)
}

// schedule queues step under the current run generation. A step whose
// generation was superseded by a reset is dropped when it fires.
func (d *Director) schedule(gen ports.RunToken, delay time.Duration, step func()) {
	d.queue.Schedule(gen, delay, func() {
		if gen != d.generation {
			return
		}
		step()
	})

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Director) t(key string) string {
	return d.translator.Resolve(key)
}

func (d *Director) post(role domain.Role, text string) {
	msg := d.session.Post(role, text, d.clock.Now())
	d.emit(domain.Event{Kind: domain.EventMessagePosted, Message: &msg})
}

func (d *Director) setAgent(id domain.AgentID, status domain.AgentStatus, log string) {
	d.session.SetAgentStatus(id, status, log)
	d.logger.Debug("agent status",
		zap.String("session_id", d.session.ID),
		zap.String("agent", string(id)),
		zap.String("status", string(status)),
	)
	d.emit(domain.Event{Kind: domain.EventAgentStatus, Agent: id, Status: status, Log: log})
}

func (d *Director) addTask(id domain.AgentID, item domain.TaskItem) {
	d.session.AddTask(id, item)
	d.emit(domain.Event{Kind: domain.EventTaskAdded, Agent: id, Task: &item})
}

func (d *Director) proposeMemory(memory domain.Memory) {
	memory = d.session.ProposeMemory(memory)
	d.emit(domain.Event{Kind: domain.EventMemoryProposed, Agent: memory.SourceAgent, Memory: &memory})
}

func (d *Director) updateView(mutate func(*domain.View)) {
	before := d.session.View
	mutate(&d.session.View)
	if d.session.View == before {
		return
	}
	view := d.session.View
	d.emit(domain.Event{Kind: domain.EventViewChanged, View: &view})
}

func (d *Director) begin(scenario domain.Scenario) {
	d.running[scenario] = true
	d.logger.Info("scenario started",
		zap.String("session_id", d.session.ID),
		zap.String("scenario", string(scenario)),
	)
	d.emit(domain.Event{Kind: domain.EventScenarioStarted, Scenario: scenario})
}

func (d *Director) finish(scenario domain.Scenario) {
	delete(d.running, scenario)
	d.logger.Info("scenario finished",
		zap.String("session_id", d.session.ID),
		zap.String("scenario", string(scenario)),
	)
	d.emit(domain.Event{Kind: domain.EventScenarioFinished, Scenario: scenario})
}

func (d *Director) rejectStart(scenario domain.Scenario) error {
	d.logger.Info("scenario start rejected",
		zap.String("session_id", d.session.ID),
		zap.String("scenario", string(scenario)),
	)
	return fmt.Errorf("start %s: %w", scenario, domain.ErrScenarioRunning)
}

func format(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
