package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kiosk-sim/kiosk-sim/sim"
	"github.com/kiosk-sim/kiosk-sim/sim/trace"
)

// traceDocument is the on-disk form of a run's state vector.
type traceDocument struct {
	Seed       int64            `yaml:"seed" json:"seed"`
	Horizon    float64          `yaml:"horizon" json:"horizon"`
	StopReason string           `yaml:"stop_reason" json:"stop_reason"`
	Config     sim.Config       `yaml:"config" json:"config"`
	Snapshots  []trace.Snapshot `yaml:"snapshots" json:"snapshots"`
}

// writeTrace writes the full state vector of r to path as YAML or JSON.
func writeTrace(path, format string, r *sim.SimulationResult) error {
	doc := traceDocument{
		Seed:       int64(r.Key),
		Horizon:    r.Horizon,
		StopReason: string(r.StopReason),
		Config:     r.Config,
		Snapshots:  r.Trace.Snapshots(),
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unknown trace format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// printStateVector renders snapshots as an aligned table, one row per step.
// Terminal cells read "code:student" (e.g. O:12, ER, L); absent times print as "-".
func printStateVector(w io.Writer, rows []trace.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tclock\tevent\ttech\tT1\tT2\tT3\tT4\tqueue\tserved\tbalked\tbalk%\tmean wait\tnext events")
	for _, s := range rows {
		cells := make([]string, 0, len(s.Terminals))
		for _, t := range s.Terminals {
			cells = append(cells, terminalCell(t))
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%s\t%s\t%s\t%d\t%d\t%.2f\t%.3f\t%s\n",
			s.Iteration, s.Clock, s.EventDetail, technicianCell(s.Technician),
			strings.Join(cells, "\t"), queueCell(s.Queue),
			s.Served, s.Balked, s.BalkRatePercent, s.MeanWait,
			strings.Join(s.Upcoming, " "))
	}
	return tw.Flush()
}

func terminalCell(t trace.TerminalView) string {
	if t.StudentID != 0 {
		return fmt.Sprintf("%s:%d", t.Code, t.StudentID)
	}
	return t.Code
}

func technicianCell(v trace.TechnicianView) string {
	if v.TerminalID != 0 {
		return fmt.Sprintf("%s:T%d", v.Code, v.TerminalID)
	}
	if v.NextRound >= 0 {
		return fmt.Sprintf("%s next@%s", v.Code, formatTime(v.NextRound))
	}
	return v.Code
}

func queueCell(q []int) string {
	if len(q) == 0 {
		return "-"
	}
	ids := make([]string, len(q))
	for i, id := range q {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, ",")
}

func formatTime(t float64) string {
	if t < 0 {
		return "-"
	}
	return strconv.FormatFloat(t, 'f', 2, 64)
}
