package ports

import "time"

// RunToken tags scheduled steps so a whole run can be cancelled at once.
type RunToken uint64

// Scheduler is a cooperative timer queue. Implementations are not expected to
// be goroutine-safe; callers serialize access.
type Scheduler interface {
	Schedule(token RunToken, delay time.Duration, step func())
	Cancel(token RunToken) int
	Clear() int
	Len() int
	Next() (time.Time, bool)
	RunDue(now time.Time) int
}
