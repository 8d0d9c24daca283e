package sim

import (
	"math"

	"github.com/kiosk-sim/kiosk-sim/sim/trace"
)

// VariateGenerator turns uniform draws into the model's random durations.
// Each method returns the variate and the raw uniform draw, and logs the
// pair under a key naming its purpose so the state vector can attribute it.
type VariateGenerator struct {
	cfg   Config
	rng   *RandomSource
	draws []trace.Draw
}

// NewVariateGenerator binds a generator to a validated config and a source.
func NewVariateGenerator(cfg Config, rng *RandomSource) *VariateGenerator {
	return &VariateGenerator{cfg: cfg, rng: rng}
}

// Exponential returns -mean * ln(1-u).
func Exponential(mean, u float64) float64 {
	return -mean * math.Log(1-u)
}

// UniformIn returns min + (max-min)*u.
func UniformIn(r Range, u float64) float64 {
	return r.Min + (r.Max-r.Min)*u
}

// InterArrival draws the time until the next student arrives.
func (g *VariateGenerator) InterArrival() (float64, float64) {
	u := g.rng.Uniform()
	return g.record(trace.DrawKeyArrival, u, Exponential(g.cfg.MeanInterArrival, u)), u
}

// ServiceDuration draws a service time for a student on terminal id.
func (g *VariateGenerator) ServiceDuration(terminalID int) (float64, float64) {
	u := g.rng.Uniform()
	return g.record(trace.ServiceDrawKey(terminalID), u, UniformIn(g.cfg.Service, u)), u
}

// InspectionDuration draws how long the technician spends on terminal id.
func (g *VariateGenerator) InspectionDuration(terminalID int) (float64, float64) {
	u := g.rng.Uniform()
	return g.record(trace.InspectionDrawKey(terminalID), u, UniformIn(g.cfg.Inspection, u)), u
}

// InterRound draws the gap before the next inspection round.
func (g *VariateGenerator) InterRound() (float64, float64) {
	u := g.rng.Uniform()
	return g.record(trace.DrawKeyRound, u, UniformIn(g.cfg.InterRound, u)), u
}

func (g *VariateGenerator) record(key string, u, value float64) float64 {
	g.draws = append(g.draws, trace.Draw{Key: key, U: u, Value: value})
	return value
}

// DrainDraws returns the draws logged since the last call and clears the log.
func (g *VariateGenerator) DrainDraws() []trace.Draw {
	out := g.draws
	g.draws = nil
	return out
}
