package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// constSource returns the same uniform draw forever. With u = 0.5 and the
// default config every variate is fixed:
//
//	inter-arrival  -2*ln(0.5) ≈ 1.386
//	service        6.5
//	inspection     6.5
//	inter-round    60
type constSource struct{ u float64 }

func (c constSource) Float64() float64 { return c.u }

const (
	halfService    = 6.5
	halfInspection = 6.5
	halfRound      = 60.0
)

// newTestSimulator returns an idle simulator on the default config whose
// every draw is u. Tests drive its handlers directly after setting the clock.
func newTestSimulator(t *testing.T, u float64) *Simulator {
	t.Helper()
	s, err := newSimulator(DefaultConfig(), newRandomSourceFrom(NewSimulationKey(0), constSource{u: u}))
	require.NoError(t, err)
	return s
}

// at sets the clock and returns s for chaining handler calls.
func (s *Simulator) at(clock float64) *Simulator {
	s.clock = clock
	return s
}

// arrivals dispatches n StudentArrival handlers at the current clock.
func (s *Simulator) arrivals(n int) {
	for i := 0; i < n; i++ {
		s.handleStudentArrival()
	}
}

// eventsOfKind counts scheduled events of the given kind.
func (s *Simulator) eventsOfKind(kind EventKind) int {
	n := 0
	for _, ev := range s.events.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// requireInvariantPanic asserts fn panics with an *InvariantError.
func requireInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var inv *InvariantError
		require.True(t, errors.As(err, &inv), "panic %v is not an *InvariantError", err)
	}()
	fn()
}
