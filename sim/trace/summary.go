package trace

import "strings"

// TraceSummary aggregates statistics from a Log.
type TraceSummary struct {
	TotalSteps           int
	EventCounts          map[string]int // event kind → number of steps it triggered
	MaxQueueLength       int
	PeakStudentsInSystem int
	InspectionsStarted   int
	Draws                int
}

// Summarize computes aggregate statistics from a trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(l Reader) *TraceSummary {
	summary := &TraceSummary{
		EventCounts: make(map[string]int),
	}
	if l == nil {
		return summary
	}

	snaps := l.Snapshots()
	summary.TotalSteps = len(snaps)
	for _, s := range snaps {
		summary.EventCounts[s.Event]++
		summary.MaxQueueLength = max(summary.MaxQueueLength, s.QueueLength)
		summary.PeakStudentsInSystem = max(summary.PeakStudentsInSystem, s.StudentsInSystem)
		summary.Draws += len(s.Draws)
		for _, d := range s.Draws {
			if strings.HasPrefix(d.Key, "inspection_") {
				summary.InspectionsStarted++
			}
		}
	}
	return summary
}
