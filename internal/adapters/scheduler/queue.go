// Package scheduler is a cooperative timer queue. Steps never run
// concurrently: they fire one at a time from RunDue, in due order.
package scheduler

import (
	"container/heap"
	"time"

	"github.com/bnema/concierge/internal/ports"
)

type entry struct {
	due   time.Time
	seq   uint64
	token ports.RunToken
	step  func()
}

// Queue is not safe for concurrent use. Owners serialize access.
type Queue struct {
	clock   ports.Clock
	entries entryHeap
	seq     uint64

	// firing is the due time of the step currently executing. Steps scheduled
	// from inside it are placed relative to that time, not wall-clock now.
	firing    time.Time
	inFlight  bool
	cancelled map[ports.RunToken]struct{}
}

var _ ports.Scheduler = (*Queue)(nil)

func NewQueue(clock ports.Clock) *Queue {
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &Queue{clock: clock, cancelled: map[ports.RunToken]struct{}{}}
}

func (q *Queue) Schedule(token ports.RunToken, delay time.Duration, step func()) {
	if _, ok := q.cancelled[token]; ok {
		return
	}
	if delay < 0 {
		delay = 0
	}

	base := q.clock.Now()
	if q.inFlight {
		base = q.firing
	}

	q.seq++
	heap.Push(&q.entries, &entry{due: base.Add(delay), seq: q.seq, token: token, step: step})
}

// Cancel drops every pending step for token and ignores later schedules
// under it.
func (q *Queue) Cancel(token ports.RunToken) int {
	q.cancelled[token] = struct{}{}

	kept := q.entries[:0]
	dropped := 0
	for _, e := range q.entries {
		if e.token == token {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = nil
	}
	q.entries = kept
	heap.Init(&q.entries)

	return dropped
}

func (q *Queue) Clear() int {
	dropped := len(q.entries)
	q.entries = nil
	return dropped
}

func (q *Queue) Len() int {
	return len(q.entries)
}

func (q *Queue) Next() (time.Time, bool) {
	if len(q.entries) == 0 {
		return time.Time{}, false
	}
	return q.entries[0].due, true
}

// RunDue fires every step due at or before now, including steps that become
// due while the pass runs, and returns how many fired.
func (q *Queue) RunDue(now time.Time) int {
	fired := 0
	for len(q.entries) > 0 && !q.entries[0].due.After(now) {
		e := heap.Pop(&q.entries).(*entry)
		if _, ok := q.cancelled[e.token]; ok {
			continue
		}

		q.firing, q.inFlight = e.due, true
		e.step()
		q.inFlight = false
		fired++
	}
	return fired
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(*entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
