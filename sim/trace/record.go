// Package trace provides the state-vector recording for kiosk simulations.
// This package has no dependencies on sim/. It stores pure data types, so
// presentation layers can consume a trace without importing the engine.
package trace

import "fmt"

// Draw keys attribute each random draw to the decision it fed.
const (
	DrawKeyArrival = "arrival"
	DrawKeyRound   = "round"
)

// ServiceDrawKey is the draw key for a service duration on terminal id.
func ServiceDrawKey(terminalID int) string {
	return fmt.Sprintf("service_%d", terminalID)
}

// InspectionDrawKey is the draw key for an inspection duration on terminal id.
func InspectionDrawKey(terminalID int) string {
	return fmt.Sprintf("inspection_%d", terminalID)
}

// Draw records one uniform draw and the variate derived from it.
type Draw struct {
	Key   string  `yaml:"key" json:"key"`
	U     float64 `yaml:"u" json:"u"`
	Value float64 `yaml:"value" json:"value"`
}

// TechnicianView is the technician's state at one step.
// Absent times are -1 and an absent terminal is 0.
type TechnicianView struct {
	State         string  `yaml:"state" json:"state"`
	Code          string  `yaml:"code" json:"code"`
	TerminalID    int     `yaml:"terminal_id" json:"terminal_id"`
	InspectionEnd float64 `yaml:"inspection_end" json:"inspection_end"`
	NextRound     float64 `yaml:"next_round" json:"next_round"`
	Pending       []int   `yaml:"pending" json:"pending"`
}

// TerminalView is one terminal's state at one step, including the most
// recent inspection it received.
type TerminalView struct {
	ID                     int     `yaml:"id" json:"id"`
	State                  string  `yaml:"state" json:"state"`
	Code                   string  `yaml:"code" json:"code"`
	StudentID              int     `yaml:"student_id" json:"student_id"`
	ServiceEnd             float64 `yaml:"service_end" json:"service_end"`
	LastInspectionDuration float64 `yaml:"last_inspection_duration" json:"last_inspection_duration"`
	LastInspectionEnd      float64 `yaml:"last_inspection_end" json:"last_inspection_end"`
}

// Snapshot is one row of the state vector, taken after an event is processed.
type Snapshot struct {
	Iteration        int            `yaml:"iteration" json:"iteration"`
	Clock            float64        `yaml:"clock" json:"clock"`
	Event            string         `yaml:"event" json:"event"`
	EventDetail      string         `yaml:"event_detail" json:"event_detail"`
	Upcoming         []string       `yaml:"upcoming" json:"upcoming"`
	Technician       TechnicianView `yaml:"technician" json:"technician"`
	Terminals        []TerminalView `yaml:"terminals" json:"terminals"`
	Queue            []int          `yaml:"queue" json:"queue"`
	QueueLength      int            `yaml:"queue_length" json:"queue_length"`
	StudentsInSystem int            `yaml:"students_in_system" json:"students_in_system"`
	Served           int            `yaml:"served" json:"served"`
	Balked           int            `yaml:"balked" json:"balked"`
	CumulativeWait   float64        `yaml:"cumulative_wait" json:"cumulative_wait"`
	BalkRatePercent  float64        `yaml:"balk_rate_percent" json:"balk_rate_percent"`
	MeanWait         float64        `yaml:"mean_wait" json:"mean_wait"`
	Draws            []Draw         `yaml:"draws" json:"draws"`
}

// Clone returns a deep copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Upcoming = append([]string(nil), s.Upcoming...)
	c.Technician.Pending = append([]int(nil), s.Technician.Pending...)
	c.Terminals = append([]TerminalView(nil), s.Terminals...)
	c.Queue = append([]int(nil), s.Queue...)
	c.Draws = append([]Draw(nil), s.Draws...)
	return c
}
