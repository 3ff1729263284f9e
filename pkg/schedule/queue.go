// Package schedule holds deferred actions that run inside the simulation tick.
// Staggered bursts, cooldown expiry and intro delays are queued here instead
// of running on their own timers, so every mutation happens on the tick.
package schedule

import "container/heap"

// Action is a deferred callback. now is the simulation time it runs at.
type Action func(now float64)

type entry struct {
	due    float64
	seq    uint64
	action Action
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	return e
}

// Queue orders actions by due time, then by insertion order.
// It is not safe for concurrent use; the game lock guards it.
type Queue struct {
	entries entryHeap
	seq     uint64
}

// New creates an empty queue
func New() *Queue {
	return &Queue{}
}

// At schedules action to run on the first RunDue call with now >= due
func (q *Queue) At(due float64, action Action) {
	if action == nil {
		return
	}
	q.seq++
	heap.Push(&q.entries, entry{due: due, seq: q.seq, action: action})
}

// RunDue runs every action due at or before now and returns how many ran.
// Actions scheduled by a running action are picked up in the same call if
// they are already due.
func (q *Queue) RunDue(now float64) int {
	ran := 0
	for len(q.entries) > 0 && q.entries[0].due <= now {
		e := heap.Pop(&q.entries).(entry)
		e.action(now)
		ran++
	}
	return ran
}

// Len returns the number of pending actions
func (q *Queue) Len() int {
	return len(q.entries)
}

// Clear drops every pending action
func (q *Queue) Clear() {
	q.entries = nil
}
