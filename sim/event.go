package sim

import "fmt"

// EventKind tags what a scheduled event does when it fires.
type EventKind string

const (
	// EventInit labels the synthetic snapshot taken before the first event.
	// It is never scheduled.
	EventInit                 EventKind = "init"
	EventStudentArrival       EventKind = "student_arrival"
	EventServiceCompletion    EventKind = "service_completion"
	EventInspectionRoundStart EventKind = "inspection_round_start"
	EventInspectionCompletion EventKind = "inspection_completion"
	EventBalkReturn           EventKind = "balk_return"
)

// Event is an entry of the future-event list. Events are values: once
// scheduled they are never modified, and each is dispatched exactly once.
type Event struct {
	Time       float64
	Kind       EventKind
	TerminalID int    // set for EventServiceCompletion
	StudentID  int    // set for EventBalkReturn
	Seq        uint64 // assigned by EventQueue.Schedule; FIFO tie-break
}

// Payload carries the kind-specific event data.
type Payload struct {
	TerminalID int
	StudentID  int
}

// Label renders the event the way the state vector lists upcoming events.
func (e Event) Label() string {
	switch e.Kind {
	case EventServiceCompletion:
		return fmt.Sprintf("%s(%d)@%.2f", e.Kind, e.TerminalID, e.Time)
	case EventBalkReturn:
		return fmt.Sprintf("%s(%d)@%.2f", e.Kind, e.StudentID, e.Time)
	}
	return fmt.Sprintf("%s@%.2f", e.Kind, e.Time)
}
