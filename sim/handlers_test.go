package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentArrival_FreeTerminal_AssignedImmediately(t *testing.T) {
	// GIVEN an idle kiosk with every terminal free
	s := newTestSimulator(t, 0.5)

	// WHEN one student arrives at t=2
	s.at(2).arrivals(1)

	// THEN the student is on terminal 1 with no wait and service ends at 2+6.5
	st := s.students[1]
	require.NotNil(t, st)
	assert.Equal(t, StudentInService, st.State)
	assert.Equal(t, 1, st.TerminalID)
	assert.Equal(t, 2.0, st.ServiceStart)
	term := s.Terminal(1)
	assert.Equal(t, TerminalOccupied, term.State)
	assert.Equal(t, 1, term.StudentID)
	assert.Equal(t, 2+halfService, term.ServiceEnd)
	assert.Equal(t, 0, s.waitQ.Len())

	// AND the next arrival and the service completion are both scheduled
	assert.Equal(t, 1, s.eventsOfKind(EventStudentArrival))
	assert.Equal(t, 1, s.eventsOfKind(EventServiceCompletion))
}

// The six arrivals come after every terminal is taken, so all of them compete
// for the five queue places. On an idle kiosk the terminals absorb the first
// four and nobody balks; see TestStudentArrival_IdleKiosk_SixArrivalsNoBalk.
func TestStudentArrival_NoTerminalsFree_SixthArrivalBalks(t *testing.T) {
	// GIVEN all four terminals busy and no service completions processed yet
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(NumTerminals)
	require.Equal(t, 0, s.waitQ.Len())

	// WHEN six students arrive in rapid succession
	s.at(1).arrivals(6)

	// THEN the first five queue and exactly the sixth balks
	assert.Equal(t, []int{5, 6, 7, 8, 9}, s.QueueItems())
	assert.Equal(t, 1, s.Counters().Balked)
	balked := s.students[10]
	require.NotNil(t, balked)
	assert.Equal(t, StudentBalked, balked.State)
	assert.Equal(t, 1+BalkReturnDelay, balked.ReturnTime)
	for id := 5; id <= 9; id++ {
		assert.Equal(t, StudentWaiting, s.students[id].State, "student %d", id)
	}

	// AND the balk schedules a return, while arrivals keep coming regardless
	assert.Equal(t, 1, s.eventsOfKind(EventBalkReturn))
	assert.Equal(t, 10, s.eventsOfKind(EventStudentArrival))
}

func TestStudentArrival_IdleKiosk_SixArrivalsNoBalk(t *testing.T) {
	// GIVEN an idle kiosk
	s := newTestSimulator(t, 0.5)

	// WHEN six students arrive at the same instant
	s.at(0).arrivals(6)

	// THEN four take terminals 1-4, two wait, and nobody balks
	for id := 1; id <= NumTerminals; id++ {
		assert.Equal(t, id, s.Terminal(id).StudentID)
	}
	assert.Equal(t, []int{5, 6}, s.QueueItems())
	assert.Equal(t, 0, s.Counters().Balked)
}

func TestServiceCompletion_AccountsWaitAndServesQueueHead(t *testing.T) {
	// GIVEN four busy terminals and two students waiting since t=1
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(NumTerminals)
	s.at(1).arrivals(2)

	// WHEN terminal 3 finishes at t=6.5
	s.at(halfService).handleServiceCompletion(3)

	// THEN student 3 is gone, served with zero wait
	_, stillThere := s.students[3]
	assert.False(t, stillThere)
	c := s.Counters()
	assert.Equal(t, 1, c.Served)
	assert.Equal(t, 0.0, c.CumulativeWait)

	// AND the queue head (student 5) takes terminal 3
	term := s.Terminal(3)
	assert.Equal(t, TerminalOccupied, term.State)
	assert.Equal(t, 5, term.StudentID)
	assert.Equal(t, []int{6}, s.QueueItems())

	// WHEN terminal 3 finishes again
	s.at(2 * halfService).handleServiceCompletion(3)

	// THEN student 5's wait (6.5 - 1) is accumulated
	c = s.Counters()
	assert.Equal(t, 2, c.Served)
	assert.InDelta(t, halfService-1, c.CumulativeWait, 1e-9)
	assert.Equal(t, 6, s.Terminal(3).StudentID)
}

func TestServiceCompletion_EmptyQueue_TerminalFreed(t *testing.T) {
	// GIVEN one student in service
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(1)

	// WHEN their service completes
	s.at(halfService).handleServiceCompletion(1)

	// THEN terminal 1 is free with no occupant or scheduled end
	term := s.Terminal(1)
	assert.Equal(t, TerminalFree, term.State)
	assert.Equal(t, NoStudent, term.StudentID)
	assert.Equal(t, NoTime, term.ServiceEnd)
	assert.Empty(t, s.students)
	assert.Equal(t, []float64{0}, s.waits)
}

func TestServiceCompletion_FreeTerminal_PanicsWithInvariantError(t *testing.T) {
	s := newTestSimulator(t, 0.5)
	requireInvariantPanic(t, func() { s.handleServiceCompletion(2) })
}

func TestServiceCompletion_UnknownTerminal_PanicsWithInvariantError(t *testing.T) {
	s := newTestSimulator(t, 0.5)
	requireInvariantPanic(t, func() { s.handleServiceCompletion(NumTerminals + 1) })
}

func TestBalkReturn_QueueHasRoom_ReentersWithArrivalReset(t *testing.T) {
	// GIVEN a student who balked at t=1 (four busy terminals, five waiting)
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(NumTerminals)
	s.at(1).arrivals(6)
	require.Equal(t, StudentBalked, s.students[10].State)

	// AND by t=6.5 four services finished, leaving only student 9 queued
	for id := 1; id <= NumTerminals; id++ {
		s.at(halfService).handleServiceCompletion(id)
	}
	require.Equal(t, []int{9}, s.QueueItems())

	// WHEN student 10 returns at T=31
	const returnAt = 1 + BalkReturnDelay
	s.at(returnAt).handleBalkReturn(10)

	// THEN they wait again with their arrival time reset to T
	st := s.students[10]
	assert.Equal(t, StudentWaiting, st.State)
	assert.Equal(t, returnAt, st.ArrivalTime)
	assert.Equal(t, NoTime, st.ReturnTime)
	assert.Equal(t, []int{9, 10}, s.QueueItems())
	assert.Equal(t, 1, s.Counters().Returns)

	// WHEN two terminals free up at t=35 and student 10's service ends at 41.5
	s.at(35).handleServiceCompletion(1)
	s.at(35).handleServiceCompletion(2)
	require.Equal(t, 10, s.Terminal(2).StudentID)
	s.at(35 + halfService).handleServiceCompletion(2)

	// THEN the wait booked for student 10 is measured from T, not from t=1
	assert.InDelta(t, 35-returnAt, s.waits[len(s.waits)-1], 1e-9)
}

func TestBalkReturn_FreeTerminal_ServedWithoutWait(t *testing.T) {
	// GIVEN a balked student and, later, an empty kiosk
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(NumTerminals)
	s.at(1).arrivals(6)
	for id := 1; id <= NumTerminals; id++ {
		s.at(halfService).handleServiceCompletion(id)
	}
	for id := 1; id <= NumTerminals; id++ {
		s.at(2 * halfService).handleServiceCompletion(id)
	}
	s.at(3 * halfService).handleServiceCompletion(1)
	require.Empty(t, s.QueueItems())

	// WHEN the student returns
	s.at(31).handleBalkReturn(10)

	// THEN they go straight to the lowest free terminal
	st := s.students[10]
	assert.Equal(t, StudentInService, st.State)
	assert.Equal(t, 31.0, st.ServiceStart)
	assert.Equal(t, 31.0, st.ArrivalTime)
}

func TestBalkReturn_QueueFullAgain_BalksAgain(t *testing.T) {
	// GIVEN a balked student and a queue that is still full at their return
	s := newTestSimulator(t, 0.5)
	s.at(0).arrivals(NumTerminals)
	s.at(1).arrivals(6)
	require.Equal(t, 1, s.Counters().Balked)

	// WHEN the student returns at t=31
	s.at(31).handleBalkReturn(10)

	// THEN they balk again: counted, and scheduled to return 30 units later
	st := s.students[10]
	assert.Equal(t, StudentBalked, st.State)
	assert.Equal(t, 31+BalkReturnDelay, st.ReturnTime)
	assert.Equal(t, 31.0, st.ArrivalTime)
	assert.Equal(t, 2, s.Counters().Balked)
	assert.Equal(t, 2, s.eventsOfKind(EventBalkReturn))
	assert.Len(t, s.QueueItems(), MaxQueueLength)
}

func TestBalkReturn_UnknownStudent_PanicsWithInvariantError(t *testing.T) {
	s := newTestSimulator(t, 0.5)
	requireInvariantPanic(t, func() { s.handleBalkReturn(99) })
}

func TestAssign_TerminalUnderInspection_NoOp(t *testing.T) {
	// GIVEN terminal 1 under inspection and one waiting student
	s := newTestSimulator(t, 0.5)
	s.at(0).handleInspectionRoundStart()
	require.Equal(t, TerminalUnderInspection, s.Terminal(1).State)
	st := &Student{ID: 42, State: StudentWaiting, ReturnTime: NoTime, TerminalID: NoTerminal, ServiceStart: NoTime}
	s.students[st.ID] = st
	s.waitQ.Enqueue(st.ID)

	// WHEN assigning the student to terminal 1
	s.assign(st, s.terminal(1))

	// THEN nothing changes
	assert.Equal(t, StudentWaiting, st.State)
	assert.Equal(t, TerminalUnderInspection, s.Terminal(1).State)
	assert.Equal(t, []int{42}, s.QueueItems())
	assert.Equal(t, 0, s.eventsOfKind(EventServiceCompletion))
}

func TestStudentArrival_DuringInspection_UsesAnotherTerminal(t *testing.T) {
	// GIVEN the technician inspecting terminal 1
	s := newTestSimulator(t, 0.5)
	s.at(0).handleInspectionRoundStart()

	// WHEN a student arrives
	s.at(1).arrivals(1)

	// THEN they get terminal 2, never the one under inspection
	assert.Equal(t, 2, s.students[1].TerminalID)
	assert.Equal(t, TerminalUnderInspection, s.Terminal(1).State)
}

func TestDraws_AttributedInOrder(t *testing.T) {
	// GIVEN an idle kiosk
	s := newTestSimulator(t, 0.5)

	// WHEN one student arrives and is served immediately
	s.at(0).arrivals(1)

	// THEN the step logged the service draw for terminal 1, then the next arrival
	draws := s.variates.DrainDraws()
	require.Len(t, draws, 2)
	assert.Equal(t, "service_1", draws[0].Key)
	assert.Equal(t, 0.5, draws[0].U)
	assert.Equal(t, halfService, draws[0].Value)
	assert.Equal(t, "arrival", draws[1].Key)

	// AND draining clears the log
	assert.Empty(t, s.variates.DrainDraws())
}
