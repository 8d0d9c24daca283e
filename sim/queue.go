// Implements the WaitQueue, which holds the students waiting for a terminal.
// Students join on arrival (or on return after balking) and leave when assigned.

package sim

import (
	"fmt"
	"strings"
)

// MaxQueueLength is the fixed capacity of the wait queue. A student who finds
// this many people waiting balks instead of joining.
const MaxQueueLength = 5

// WaitQueue is a bounded FIFO of waiting student ids.
type WaitQueue struct {
	queue []int
}

// Enqueue adds a student to the back of the queue.
// Callers must check Full first; exceeding the bound panics with an
// *InvariantError.
func (wq *WaitQueue) Enqueue(id int) {
	if wq.Full() {
		panic(invariantf(NoTime, "enqueue of student %d would exceed queue bound %d", id, MaxQueueLength))
	}
	wq.queue = append(wq.queue, id)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of waiting students.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Full reports whether the queue has reached MaxQueueLength.
func (wq *WaitQueue) Full() bool {
	return len(wq.queue) >= MaxQueueLength
}

// Peek returns the student at the head of the queue without removing it.
// Returns NoStudent if the queue is empty.
func (wq *WaitQueue) Peek() int {
	if len(wq.queue) == 0 {
		return NoStudent
	}
	return wq.queue[0]
}

// Remove deletes a student from the queue wherever it sits.
// Returns false if the student was not queued.
func (wq *WaitQueue) Remove(id int) bool {
	for i, v := range wq.queue {
		if v == id {
			wq.queue = append(wq.queue[:i], wq.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the queue contents, head first.
func (wq *WaitQueue) Items() []int {
	out := make([]int, len(wq.queue))
	copy(out, wq.queue)
	return out
}
