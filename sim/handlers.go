package sim

import "github.com/sirupsen/logrus"

// handleStudentArrival creates the arriving student, admits or balks them,
// and always schedules the next arrival.
func (s *Simulator) handleStudentArrival() {
	s.counters.Arrivals++
	st := &Student{
		ID:           s.nextStudentID,
		State:        StudentWaiting,
		ReturnTime:   NoTime,
		TerminalID:   NoTerminal,
		ServiceStart: NoTime,
	}
	s.nextStudentID++
	s.students[st.ID] = st
	logrus.Debugf("<< Arrival: student %d at %.3f", st.ID, s.clock)

	s.admit(st)

	dt, _ := s.variates.InterArrival()
	s.events.Schedule(s.clock+dt, EventStudentArrival, Payload{})
}

// handleBalkReturn re-admits a balked student. Their wait is measured from now.
// A student who finds the queue full again balks again.
func (s *Simulator) handleBalkReturn(studentID int) {
	s.counters.Returns++
	st := s.student(studentID)
	if st.State != StudentBalked {
		panic(invariantf(s.clock, "student %d returned while %s", st.ID, st.State))
	}
	logrus.Debugf("<< Return: student %d at %.3f", st.ID, s.clock)
	s.admit(st)
}

// admit puts a student in the queue, or makes them balk if it is full.
// If a terminal is available the head of the queue is assigned immediately.
func (s *Simulator) admit(st *Student) {
	st.ArrivalTime = s.clock
	if s.waitQ.Full() {
		s.balk(st)
		return
	}
	st.State = StudentWaiting
	st.ReturnTime = NoTime
	s.waitQ.Enqueue(st.ID)
	if t := s.assignableTerminal(); t != nil {
		s.assign(s.student(s.waitQ.Peek()), t)
	}
}

func (s *Simulator) balk(st *Student) {
	st.State = StudentBalked
	st.ReturnTime = s.clock + BalkReturnDelay
	s.counters.Balked++
	s.events.Schedule(st.ReturnTime, EventBalkReturn, Payload{StudentID: st.ID})
	logrus.Debugf("Student %d balked, returns at %.3f", st.ID, st.ReturnTime)
}

// handleServiceCompletion frees the terminal, books the student's wait, and
// hands the terminal to the head of the queue. If the technician is idle and
// this terminal is still due for inspection, the sweep gets a chance to resume.
func (s *Simulator) handleServiceCompletion(terminalID int) {
	t := s.terminal(terminalID)
	if t.State != TerminalOccupied {
		panic(invariantf(s.clock, "service completion on terminal %d while %s", t.ID, t.State))
	}
	st := s.student(t.StudentID)

	wait := st.ServiceStart - st.ArrivalTime
	s.counters.CumulativeWait += wait
	s.counters.Served++
	s.waits = append(s.waits, wait)

	t.State = TerminalFree
	t.StudentID = NoStudent
	t.ServiceEnd = NoTime
	delete(s.students, st.ID)
	logrus.Debugf(">> Served: student %d on terminal %d (wait %.3f)", st.ID, t.ID, wait)

	s.serveQueueHead(t)
	if s.technician.State == TechnicianAvailable && s.technician.HasPending(t.ID) {
		s.advanceInspection()
	}
}

// handleInspectionRoundStart marks every terminal pending and starts the sweep.
func (s *Simulator) handleInspectionRoundStart() {
	if s.technician.State != TechnicianAvailable {
		logrus.Warnf("[t=%09.3f] Inspection round start ignored: technician is %s", s.clock, s.technician.State)
		return
	}
	for i := range s.technician.Pending {
		s.technician.Pending[i] = true
	}
	s.technician.NextRound = NoTime
	logrus.Debugf("Inspection round started at %.3f", s.clock)
	s.advanceInspection()
}

// handleInspectionCompletion returns the inspected terminal to service,
// removes it from the round, and moves the technician on.
func (s *Simulator) handleInspectionCompletion() {
	tech := &s.technician
	if tech.State != TechnicianInspecting {
		panic(invariantf(s.clock, "inspection completion while technician is %s", tech.State))
	}
	t := s.terminal(tech.TerminalID)
	if t.State != TerminalUnderInspection {
		panic(invariantf(s.clock, "inspection completion on terminal %d while %s", t.ID, t.State))
	}

	t.State = TerminalFree
	tech.Pending[t.ID-1] = false
	tech.State = TechnicianAvailable
	tech.TerminalID = NoTerminal
	tech.InspectionEnd = NoTime
	logrus.Debugf("Inspection of terminal %d finished at %.3f", t.ID, s.clock)

	s.advanceInspection()
	s.serveQueueHead(t)
}

// serveQueueHead assigns the first waiting student to t when t can take one.
func (s *Simulator) serveQueueHead(t *Terminal) {
	if s.waitQ.Len() == 0 || t.State != TerminalFree || s.reservedForInspection(t.ID) {
		return
	}
	s.assign(s.student(s.waitQ.Peek()), t)
}

// assignableTerminal returns the lowest-id free terminal not reserved for
// inspection, or nil.
func (s *Simulator) assignableTerminal() *Terminal {
	for i := range s.terminals {
		t := &s.terminals[i]
		if t.State == TerminalFree && !s.reservedForInspection(t.ID) {
			return t
		}
	}
	return nil
}

// reservedForInspection reports whether the technician currently holds terminal id.
func (s *Simulator) reservedForInspection(id int) bool {
	return s.technician.State == TechnicianInspecting && s.technician.TerminalID == id
}

// assign starts service for st on t and schedules its completion.
// It is a no-op when t is under inspection.
func (s *Simulator) assign(st *Student, t *Terminal) {
	if t.State == TerminalUnderInspection {
		return
	}
	if t.State == TerminalOccupied {
		panic(invariantf(s.clock, "assigning student %d to terminal %d occupied by %d", st.ID, t.ID, t.StudentID))
	}
	s.waitQ.Remove(st.ID)

	st.State = StudentInService
	st.TerminalID = t.ID
	st.ServiceStart = s.clock

	t.State = TerminalOccupied
	t.StudentID = st.ID
	d, _ := s.variates.ServiceDuration(t.ID)
	t.ServiceEnd = s.clock + d
	s.events.Schedule(t.ServiceEnd, EventServiceCompletion, Payload{TerminalID: t.ID})
	logrus.Debugf("Student %d assigned to terminal %d until %.3f", st.ID, t.ID, t.ServiceEnd)
}
