package sim

import "math"

// Fixed model constants.
const (
	// BalkReturnDelay is how long a balked student stays away before retrying.
	BalkReturnDelay = 30.0
	// MaxIterationsCap bounds every run, guaranteeing termination.
	MaxIterationsCap = 100000
	// DefaultHorizon is the simulated time used when none is configured.
	DefaultHorizon = 120.0
)

// Range is a closed interval [Min, Max] for a uniform draw.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Config groups the kiosk model parameters. All times share one unit
// (minutes in the reference scenario).
type Config struct {
	Service          Range   `yaml:"service" json:"service"`                     // service duration
	Inspection       Range   `yaml:"inspection" json:"inspection"`               // inspection duration per terminal
	InterRound       Range   `yaml:"inter_round" json:"inter_round"`             // gap between inspection rounds
	MeanInterArrival float64 `yaml:"mean_interarrival" json:"mean_interarrival"` // exponential mean (must be > 0)
}

// DefaultConfig returns the reference scenario parameters.
func DefaultConfig() Config {
	return Config{
		Service:          Range{Min: 5, Max: 8},
		Inspection:       Range{Min: 3, Max: 10},
		InterRound:       Range{Min: 57, Max: 63},
		MeanInterArrival: 2,
	}
}

// Validate checks every parameter and returns the first violation as a *ConfigError.
func (c Config) Validate() error {
	if err := c.Service.validate("service"); err != nil {
		return err
	}
	if err := c.Inspection.validate("inspection"); err != nil {
		return err
	}
	if err := c.InterRound.validate("inter_round"); err != nil {
		return err
	}
	if !isFinite(c.MeanInterArrival) || c.MeanInterArrival <= 0 {
		return &ConfigError{Field: "mean_interarrival", Reason: "must be a finite value > 0"}
	}
	return nil
}

func (r Range) validate(field string) error {
	if !isFinite(r.Min) || !isFinite(r.Max) {
		return &ConfigError{Field: field, Reason: "bounds must be finite"}
	}
	if r.Min < 0 {
		return &ConfigError{Field: field + ".min", Reason: "must be >= 0"}
	}
	if r.Min >= r.Max {
		return &ConfigError{Field: field, Reason: "min must be < max"}
	}
	return nil
}

// validateRun checks the per-run arguments of Simulate.
func validateRun(horizon float64, maxIterations int) error {
	if !isFinite(horizon) || horizon <= 0 {
		return &ConfigError{Field: "horizon", Reason: "must be a finite value > 0"}
	}
	if maxIterations <= 0 || maxIterations > MaxIterationsCap {
		return &ConfigError{Field: "max_iterations", Reason: "must be in (0, 100000]"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
