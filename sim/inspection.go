package sim

import "github.com/sirupsen/logrus"

// advanceInspection moves the technician's round forward.
//
// Pending terminals are visited in ascending id order. The first free one is
// taken out of service and inspected. When none is free the technician
// simply waits: the sweep is re-entered by the next service or inspection
// completion, never by a timer. An empty pending set ends the round and
// schedules the next one.
func (s *Simulator) advanceInspection() {
	tech := &s.technician
	if tech.State == TechnicianInspecting {
		return
	}

	if tech.PendingCount() == 0 {
		tech.State = TechnicianAvailable
		tech.TerminalID = NoTerminal
		tech.InspectionEnd = NoTime
		gap, _ := s.variates.InterRound()
		tech.NextRound = s.clock + gap
		s.events.Schedule(tech.NextRound, EventInspectionRoundStart, Payload{})
		logrus.Debugf("Inspection round complete; next round at %.3f", tech.NextRound)
		return
	}

	for _, id := range tech.PendingIDs() {
		t := s.terminal(id)
		if t.State != TerminalFree {
			continue
		}
		if t.StudentID != NoStudent || t.ServiceEnd != NoTime {
			panic(invariantf(s.clock, "free terminal %d still holds student %d", t.ID, t.StudentID))
		}
		d, _ := s.variates.InspectionDuration(id)
		tech.State = TechnicianInspecting
		tech.TerminalID = id
		tech.InspectionEnd = s.clock + d
		t.State = TerminalUnderInspection
		s.lastInspectionDuration[id-1] = d
		s.lastInspectionEnd[id-1] = tech.InspectionEnd
		s.events.Schedule(tech.InspectionEnd, EventInspectionCompletion, Payload{})
		logrus.Debugf("Inspecting terminal %d until %.3f", id, tech.InspectionEnd)
		return
	}

	logrus.Debugf("Technician waiting: pending terminals %v all busy", tech.PendingIDs())
}
