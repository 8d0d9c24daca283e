// Defines the entities of the kiosk model: students, terminals and the technician.
// Entities are plain records; all transitions happen in the Simulator handlers.

package sim

import "fmt"

// NumTerminals is the fixed number of self-service terminals.
const NumTerminals = 4

// Sentinels for absent optional fields. Real ids start at 1 and simulated
// times are never negative.
const (
	NoTime     = -1.0
	NoStudent  = 0
	NoTerminal = 0
)

// StudentState represents the lifecycle state of a student.
type StudentState string

const (
	StudentWaiting   StudentState = "waiting"    // in the wait queue
	StudentInService StudentState = "in_service" // using a terminal
	StudentBalked    StudentState = "balked"     // left a full queue, will return
)

// Code returns the short state code used in the state vector.
func (s StudentState) Code() string {
	switch s {
	case StudentWaiting:
		return "ET"
	case StudentInService:
		return "UT"
	case StudentBalked:
		return "R"
	}
	return "?"
}

// Student models one person requesting a certificate.
// ArrivalTime is reset when a balked student returns, so wait-time
// accounting always starts at the latest entry into the queue.
type Student struct {
	ID           int
	ArrivalTime  float64
	State        StudentState
	ReturnTime   float64 // NoTime unless balked
	TerminalID   int     // NoTerminal unless in service
	ServiceStart float64 // NoTime unless in service
}

func (s Student) String() string {
	return fmt.Sprintf("Student: (ID: %d, State: %s, ArrivalTime: %.2f)", s.ID, s.State, s.ArrivalTime)
}

// TerminalState represents the state of a terminal.
type TerminalState string

const (
	TerminalFree            TerminalState = "free"
	TerminalOccupied        TerminalState = "occupied"
	TerminalUnderInspection TerminalState = "under_inspection"
)

// Code returns the short state code used in the state vector.
func (s TerminalState) Code() string {
	switch s {
	case TerminalFree:
		return "L"
	case TerminalOccupied:
		return "O"
	case TerminalUnderInspection:
		return "ER"
	}
	return "?"
}

// Terminal is one of the NumTerminals kiosks. A terminal under inspection
// never has an occupant or a scheduled service end.
type Terminal struct {
	ID         int
	State      TerminalState
	StudentID  int     // NoStudent unless occupied
	ServiceEnd float64 // NoTime unless occupied
}

// TechnicianState represents the state of the roaming technician.
type TechnicianState string

const (
	TechnicianAvailable  TechnicianState = "available"
	TechnicianInspecting TechnicianState = "inspecting"
)

// Code returns the short state code used in the state vector.
func (s TechnicianState) Code() string {
	switch s {
	case TechnicianAvailable:
		return "D"
	case TechnicianInspecting:
		return "R"
	}
	return "?"
}

// Technician inspects every terminal once per round.
//
// Pending holds the terminals not yet inspected in the current round,
// indexed by terminal id - 1. It is reset to all true at round start and
// only ever cleared one terminal at a time as inspections complete.
type Technician struct {
	State         TechnicianState
	TerminalID    int     // NoTerminal unless inspecting
	InspectionEnd float64 // NoTime unless inspecting
	NextRound     float64 // NoTime while a round is in progress
	Pending       [NumTerminals]bool
}

// HasPending reports whether terminal id still awaits inspection this round.
func (t *Technician) HasPending(id int) bool {
	return t.Pending[id-1]
}

// PendingCount returns the number of terminals left in the current round.
func (t *Technician) PendingCount() int {
	n := 0
	for _, p := range t.Pending {
		if p {
			n++
		}
	}
	return n
}

// PendingIDs returns pending terminal ids in ascending order.
func (t *Technician) PendingIDs() []int {
	ids := make([]int, 0, NumTerminals)
	for i, p := range t.Pending {
		if p {
			ids = append(ids, i+1)
		}
	}
	return ids
}
