package sim

import "container/heap"

// EventQueue is the future-event list, a min-heap with deterministic ordering.
// Ordering: time → sequence number. Sequence numbers are handed out by the
// queue itself in insertion order, so events sharing a time fire FIFO.
type EventQueue struct {
	events  []Event
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make([]Event, 0)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int { return len(q.events) }

// Less implements heap.Interface
func (q *EventQueue) Less(i, j int) bool { return eventBefore(q.events[i], q.events[j]) }

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

// Push implements heap.Interface. Use Schedule instead.
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(Event))
}

// Pop implements heap.Interface. Use PopNext instead.
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[0 : n-1]
	return item
}

func eventBefore(a, b Event) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.Seq < b.Seq
}

// Schedule inserts a new event and returns it with its sequence number set.
func (q *EventQueue) Schedule(time float64, kind EventKind, p Payload) Event {
	q.nextSeq++
	ev := Event{
		Time:       time,
		Kind:       kind,
		TerminalID: p.TerminalID,
		StudentID:  p.StudentID,
		Seq:        q.nextSeq,
	}
	heap.Push(q, ev)
	return ev
}

// PopNext removes and returns the earliest event.
// The boolean is false when the queue is empty.
func (q *EventQueue) PopNext() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Upcoming returns the n earliest events in firing order without disturbing
// the queue. It walks the heap best-first from the root, so the cost depends
// on n, not on the number of pending events.
func (q *EventQueue) Upcoming(n int) []Event {
	if n > len(q.events) {
		n = len(q.events)
	}
	out := make([]Event, 0, max(n, 0))
	if n <= 0 {
		return out
	}
	frontier := &indexHeap{events: q.events, idx: []int{0}}
	for len(out) < n {
		i := heap.Pop(frontier).(int)
		out = append(out, q.events[i])
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if child < len(q.events) {
				heap.Push(frontier, child)
			}
		}
	}
	return out
}

// indexHeap orders positions of an EventQueue's backing slice. Every child
// of a heap node fires no earlier than its parent, so popping the smallest
// candidate and pushing its children yields events in firing order.
type indexHeap struct {
	events []Event
	idx    []int
}

func (h *indexHeap) Len() int { return len(h.idx) }
func (h *indexHeap) Less(i, j int) bool {
	return eventBefore(h.events[h.idx[i]], h.events[h.idx[j]])
}
func (h *indexHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *indexHeap) Push(x any)    { h.idx = append(h.idx, x.(int)) }
func (h *indexHeap) Pop() any {
	old := h.idx
	n := len(old)
	item := old[n-1]
	h.idx = old[:n-1]
	return item
}
