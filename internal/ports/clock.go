package ports

import "github.com/jonboulle/clockwork"

// Clock is the time source for timestamps and the scheduler driver.
type Clock = clockwork.Clock

func SystemClock() Clock {
	return clockwork.NewRealClock()
}
