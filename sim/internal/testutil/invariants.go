// Package testutil provides shared test infrastructure for the kiosk simulator.
// It consolidates the state-vector invariant checks and float assertions used
// across the sim/ and sim/exporter/ test packages. It must not import sim.
package testutil

import (
	"math"
	"slices"
	"testing"

	"github.com/kiosk-sim/kiosk-sim/sim/trace"
)

const (
	maxQueueLength  = 5
	numTerminals    = 4
	roundStartEvent = "inspection_round_start"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertTraceInvariants checks every snapshot, and every consecutive pair of
// snapshots, against the model's structural invariants.
func AssertTraceInvariants(t *testing.T, snaps []trace.Snapshot) {
	t.Helper()
	for i, s := range snaps {
		checkSnapshot(t, i, s)
		if i > 0 {
			checkTransition(t, i, snaps[i-1], s)
		}
	}
}

func checkSnapshot(t *testing.T, i int, s trace.Snapshot) {
	t.Helper()
	if s.QueueLength > maxQueueLength {
		t.Errorf("step %d: queue length %d exceeds %d", i, s.QueueLength, maxQueueLength)
	}
	if s.QueueLength != len(s.Queue) {
		t.Errorf("step %d: queue length %d but %d ids listed", i, s.QueueLength, len(s.Queue))
	}
	if len(s.Terminals) != numTerminals {
		t.Fatalf("step %d: %d terminals in snapshot, want %d", i, len(s.Terminals), numTerminals)
	}

	occupants := map[int]int{}
	underInspection := 0
	for _, term := range s.Terminals {
		switch term.State {
		case "occupied":
			if term.StudentID <= 0 || term.ServiceEnd < s.Clock {
				t.Errorf("step %d: occupied terminal %d has student %d, end %.3f", i, term.ID, term.StudentID, term.ServiceEnd)
			}
			if prev, dup := occupants[term.StudentID]; dup {
				t.Errorf("step %d: student %d on terminals %d and %d", i, term.StudentID, prev, term.ID)
			}
			occupants[term.StudentID] = term.ID
		case "under_inspection":
			underInspection++
			if term.StudentID != 0 || term.ServiceEnd != -1 {
				t.Errorf("step %d: terminal %d under inspection still has student %d / end %.3f", i, term.ID, term.StudentID, term.ServiceEnd)
			}
			if s.Technician.State != "inspecting" || s.Technician.TerminalID != term.ID {
				t.Errorf("step %d: terminal %d under inspection but technician is %s on %d", i, term.ID, s.Technician.State, s.Technician.TerminalID)
			}
		case "free":
			if term.StudentID != 0 {
				t.Errorf("step %d: free terminal %d holds student %d", i, term.ID, term.StudentID)
			}
			if s.QueueLength > 0 {
				t.Errorf("step %d: terminal %d free while %d students wait", i, term.ID, s.QueueLength)
			}
		default:
			t.Errorf("step %d: terminal %d in unknown state %q", i, term.ID, term.State)
		}
	}
	if underInspection > 1 {
		t.Errorf("step %d: %d terminals under inspection at once", i, underInspection)
	}
	for _, id := range s.Queue {
		if _, inService := occupants[id]; inService {
			t.Errorf("step %d: student %d both queued and in service", i, id)
		}
	}
}

func checkTransition(t *testing.T, i int, prev, cur trace.Snapshot) {
	t.Helper()
	if cur.Clock < prev.Clock {
		t.Errorf("step %d: clock went backwards %.4f -> %.4f", i, prev.Clock, cur.Clock)
	}
	if cur.Served < prev.Served || cur.Balked < prev.Balked {
		t.Errorf("step %d: counters decreased", i)
	}
	if cur.Event == roundStartEvent {
		if len(cur.Technician.Pending) > numTerminals {
			t.Errorf("step %d: pending set larger than %d", i, numTerminals)
		}
		return
	}
	for _, id := range cur.Technician.Pending {
		if !slices.Contains(prev.Technician.Pending, id) {
			t.Errorf("step %d: terminal %d added to pending set outside round start", i, id)
		}
	}
	if len(cur.Technician.Pending) < len(prev.Technician.Pending)-1 {
		t.Errorf("step %d: pending set shrank by more than one terminal", i)
	}
}
