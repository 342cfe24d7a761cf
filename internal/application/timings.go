package application

import "time"

// Timings are the scripted scenario delays. Each one is measured from the
// step that schedules it.
type Timings struct {
	ReadDelay      time.Duration
	AgentStep      time.Duration
	AgentJitter    time.Duration
	ListenDuration time.Duration
	AnalyzeDelay   time.Duration
	ReviewDelay    time.Duration
	SummaryDelay   time.Duration
	OverviewDelay  time.Duration
	AlertDelay     time.Duration
	ResolveDelay   time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ReadDelay:      500 * time.Millisecond,
		AgentStep:      800 * time.Millisecond,
		AgentJitter:    500 * time.Millisecond,
		ListenDuration: 2 * time.Second,
		AnalyzeDelay:   time.Second,
		ReviewDelay:    1500 * time.Millisecond,
		SummaryDelay:   8 * time.Second,
		OverviewDelay:  500 * time.Millisecond,
		AlertDelay:     6 * time.Second,
		ResolveDelay:   2500 * time.Millisecond,
	}
}

// Scale divides every delay by speed. Non-positive speeds leave t unchanged.
func (t Timings) Scale(speed float64) Timings {
	if speed <= 0 || speed == 1 {
		return t
	}

	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) / speed)
	}

	return Timings{
		ReadDelay:      scale(t.ReadDelay),
		AgentStep:      scale(t.AgentStep),
		AgentJitter:    scale(t.AgentJitter),
		ListenDuration: scale(t.ListenDuration),
		AnalyzeDelay:   scale(t.AnalyzeDelay),
		ReviewDelay:    scale(t.ReviewDelay),
		SummaryDelay:   scale(t.SummaryDelay),
		OverviewDelay:  scale(t.OverviewDelay),
		AlertDelay:     scale(t.AlertDelay),
		ResolveDelay:   scale(t.ResolveDelay),
	}
}
