package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk-sim/kiosk-sim/sim"
	"github.com/kiosk-sim/kiosk-sim/sim/exporter"
)

// runOptions is everything a single `run` invocation needs, after the config
// file, environment and flags have been merged.
type runOptions struct {
	file RunFile

	from        int
	count       int
	last        bool
	traceOut    string
	traceFormat string
	metricsOut  string
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kiosk-sim",
	Short: "Discrete-event simulator for a self-service certificate kiosk",
}

// runCmd executes the simulation using parameters from the config file, KIOSK_* env vars and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the kiosk simulation",
	Run: func(cmd *cobra.Command, args []string) {
		v := newViper(cmd)

		// Set up logging
		logLevel := v.GetString("log")
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts, err := resolveOptions(v)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// newViper binds the command's flags and the matching KIOSK_* environment
// variables (KIOSK_SERVICE_MIN for --service-min, and so on).
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		logrus.Fatalf("bind flags: %v", err)
	}
	return v
}

// resolveOptions merges defaults, the --config file, and explicitly set env
// vars or flags, in increasing order of precedence.
func resolveOptions(v *viper.Viper) (runOptions, error) {
	rf := defaultRunFile()
	if path := v.GetString("config"); path != "" {
		var err error
		if rf, err = loadRunFile(path); err != nil {
			return runOptions{}, err
		}
	}

	// Only values the user actually set override the file
	if v.IsSet("seed") {
		rf.Seed = v.GetInt64("seed")
	}
	if v.IsSet("horizon") {
		rf.Horizon = v.GetFloat64("horizon")
	}
	if v.IsSet("max-iterations") {
		rf.MaxIterations = v.GetInt("max-iterations")
	}
	overrideFloat(v, "service-min", &rf.Service.Min)
	overrideFloat(v, "service-max", &rf.Service.Max)
	overrideFloat(v, "inspection-min", &rf.Inspection.Min)
	overrideFloat(v, "inspection-max", &rf.Inspection.Max)
	overrideFloat(v, "round-min", &rf.InterRound.Min)
	overrideFloat(v, "round-max", &rf.InterRound.Max)
	overrideFloat(v, "mean-interarrival", &rf.MeanInterArrival)

	opts := runOptions{
		file:        rf,
		from:        v.GetInt("from"),
		count:       v.GetInt("count"),
		last:        v.GetBool("last"),
		traceOut:    v.GetString("trace-out"),
		traceFormat: v.GetString("trace-format"),
		metricsOut:  v.GetString("metrics-out"),
	}
	if opts.from < 0 {
		return runOptions{}, fmt.Errorf("--from must be >= 0, got %d", opts.from)
	}
	if opts.traceFormat != "yaml" && opts.traceFormat != "json" {
		return runOptions{}, fmt.Errorf("--trace-format must be yaml or json, got %q", opts.traceFormat)
	}
	return opts, nil
}

func overrideFloat(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}

// runSimulation runs one simulation and writes the summary and the requested
// state-vector rows to w, plus any trace or metrics files asked for.
func runSimulation(opts runOptions, w io.Writer) error {
	rf := opts.file
	s, err := sim.NewSimulator(rf.Config, sim.NewSimulationKey(rf.Seed))
	if err != nil {
		return err
	}
	r, err := s.Simulate(rf.Horizon, rf.MaxIterations)
	if err != nil {
		return err
	}

	r.Print(w)
	fmt.Fprintln(w)
	rows := r.Trace.Window(opts.from, opts.count)
	if opts.last {
		rows = r.Trace.Window(r.Trace.Len()-1, 1)
	}
	if err := printStateVector(w, rows); err != nil {
		return fmt.Errorf("print state vector: %w", err)
	}

	if opts.traceOut != "" {
		if err := writeTrace(opts.traceOut, opts.traceFormat, r); err != nil {
			return err
		}
		logrus.Infof("Trace written to %s", opts.traceOut)
	}
	if opts.metricsOut != "" {
		if err := exporter.WriteTextfile(opts.metricsOut, r); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logrus.Infof("Metrics written to %s", opts.metricsOut)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags declares the run flags; defaults mirror defaultRunFile.
func registerRunFlags(cmd *cobra.Command) {
	d := defaultRunFile()
	f := cmd.Flags()

	f.String("config", "", "YAML config file (flags and KIOSK_* env vars override it)")
	f.Int64("seed", d.Seed, "Seed for the random stream")
	f.Float64("horizon", d.Horizon, "Simulated time to run for")
	f.Int("max-iterations", d.MaxIterations, "Maximum number of events to process (at most 100000)")
	f.String("log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Model parameters
	f.Float64("service-min", d.Service.Min, "Minimum service duration")
	f.Float64("service-max", d.Service.Max, "Maximum service duration")
	f.Float64("inspection-min", d.Inspection.Min, "Minimum inspection duration per terminal")
	f.Float64("inspection-max", d.Inspection.Max, "Maximum inspection duration per terminal")
	f.Float64("round-min", d.InterRound.Min, "Minimum gap between inspection rounds")
	f.Float64("round-max", d.InterRound.Max, "Maximum gap between inspection rounds")
	f.Float64("mean-interarrival", d.MeanInterArrival, "Mean of the exponential inter-arrival time")

	// State-vector output
	f.Int("from", 0, "First state-vector row to print")
	f.Int("count", 0, "Number of state-vector rows to print (0 = through the end)")
	f.Bool("last", false, "Print only the final state-vector row")
	f.String("trace-out", "", "Write the full state vector to this file")
	f.String("trace-format", "yaml", "Trace file format (yaml or json)")
	f.String("metrics-out", "", "Write Prometheus metrics to this textfile")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
