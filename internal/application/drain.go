package application

import "github.com/jonboulle/clockwork"

// Drain runs every scheduled step to completion on a fake clock, advancing
// it from one due time to the next. d must have been built WithClock(clock).
// It returns the number of steps fired.
func Drain(d *Director, clock clockwork.FakeClock) int {
	fired := 0
	for {
		due, ok := d.NextDue()
		if !ok {
			return fired
		}
		if wait := due.Sub(clock.Now()); wait > 0 {
			clock.Advance(wait)
		}
		n := d.RunPending()
		if n == 0 {
			// d is not driven by clock.
			return fired
		}
		fired += n
	}
}
