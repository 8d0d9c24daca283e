package sim

import "github.com/kiosk-sim/kiosk-sim/sim/trace"

// record appends a snapshot of the current state, attributed to ev, and
// clears the draws logged during the step.
func (s *Simulator) record(ev Event) {
	m := Aggregate(s.counters)
	snap := trace.Snapshot{
		Iteration:        s.iterations,
		Clock:            s.clock,
		Event:            string(ev.Kind),
		EventDetail:      string(ev.Kind),
		Technician:       s.technicianView(),
		Terminals:        make([]trace.TerminalView, 0, NumTerminals),
		Queue:            s.waitQ.Items(),
		QueueLength:      s.waitQ.Len(),
		StudentsInSystem: len(s.students),
		Served:           s.counters.Served,
		Balked:           s.counters.Balked,
		CumulativeWait:   s.counters.CumulativeWait,
		BalkRatePercent:  m.BalkRatePercent,
		MeanWait:         m.MeanWait,
		Draws:            s.variates.DrainDraws(),
	}
	if ev.Kind != EventInit {
		snap.EventDetail = ev.Label()
	}
	for _, up := range s.events.Upcoming(upcomingInTrace) {
		snap.Upcoming = append(snap.Upcoming, up.Label())
	}
	for i, t := range s.terminals {
		snap.Terminals = append(snap.Terminals, trace.TerminalView{
			ID:                     t.ID,
			State:                  string(t.State),
			Code:                   t.State.Code(),
			StudentID:              t.StudentID,
			ServiceEnd:             t.ServiceEnd,
			LastInspectionDuration: s.lastInspectionDuration[i],
			LastInspectionEnd:      s.lastInspectionEnd[i],
		})
	}
	s.log.Append(snap)
}

func (s *Simulator) technicianView() trace.TechnicianView {
	tech := s.technician
	return trace.TechnicianView{
		State:         string(tech.State),
		Code:          tech.State.Code(),
		TerminalID:    tech.TerminalID,
		InspectionEnd: tech.InspectionEnd,
		NextRound:     tech.NextRound,
		Pending:       tech.PendingIDs(),
	}
}
