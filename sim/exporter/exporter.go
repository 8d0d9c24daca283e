// Package exporter publishes the outcome of a kiosk simulation as Prometheus
// metrics, either to a registry or to a node-exporter style textfile.
package exporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiosk-sim/kiosk-sim/sim"
)

// WaitBuckets are the histogram buckets for per-student wait times, in model
// time units.
var WaitBuckets = []float64{0, 1, 2, 5, 10, 15, 20, 30, 45, 60}

// RunCollector exposes the metrics of one finished run.
type RunCollector struct {
	gatherer prometheus.Gatherer

	Served       prometheus.Counter
	Balked       prometheus.Counter
	BalkRate     prometheus.Gauge
	MeanWait     prometheus.Gauge
	FinalClock   prometheus.Gauge
	Iterations   prometheus.Gauge
	WaitTime     prometheus.Histogram
	EventsByKind *prometheus.CounterVec
}

// NewRunCollector registers run metrics against the provided registerer.
func NewRunCollector(reg prometheus.Registerer) (*RunCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &RunCollector{
		gatherer: gatherer,
		Served: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_students_served_total",
			Help: "Students whose service completed within the horizon.",
		}),
		Balked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_students_balked_total",
			Help: "Balk events: arrivals or returns that found the queue full.",
		}),
		BalkRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_balk_rate_percent",
			Help: "Balked over served plus balked, in percent.",
		}),
		MeanWait: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_mean_wait_time",
			Help: "Mean queue wait of served students, in model time units.",
		}),
		FinalClock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_final_clock",
			Help: "Simulated time when the run stopped.",
		}),
		Iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_iterations",
			Help: "Events processed by the run.",
		}),
		WaitTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kiosk_wait_time",
			Help:    "Queue wait of each served student, in model time units.",
			Buckets: WaitBuckets,
		}),
		EventsByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_events_total",
			Help: "Processed events by kind.",
		}, []string{"kind"}),
	}

	for name, col := range map[string]prometheus.Collector{
		"kiosk_students_served_total": c.Served,
		"kiosk_students_balked_total": c.Balked,
		"kiosk_balk_rate_percent":     c.BalkRate,
		"kiosk_mean_wait_time":        c.MeanWait,
		"kiosk_final_clock":           c.FinalClock,
		"kiosk_iterations":            c.Iterations,
		"kiosk_wait_time":             c.WaitTime,
		"kiosk_events_total":          c.EventsByKind,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return c, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *RunCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Observe loads a finished run into the collector.
func (c *RunCollector) Observe(r *sim.SimulationResult) {
	if c == nil || r == nil {
		return
	}
	c.Served.Add(float64(r.Served))
	c.Balked.Add(float64(r.Balked))
	c.BalkRate.Set(r.BalkRatePercent)
	c.MeanWait.Set(r.MeanWait)
	c.FinalClock.Set(r.FinalClock)
	c.Iterations.Set(float64(r.Iterations))
	for _, w := range r.Waits {
		c.WaitTime.Observe(w)
	}
	for _, s := range r.Trace.Window(1, 0) {
		c.EventsByKind.WithLabelValues(s.Event).Inc()
	}
}

// WriteTextfile writes every metric of a run to path in the Prometheus text
// format, using a private registry.
func WriteTextfile(path string, r *sim.SimulationResult) error {
	reg := prometheus.NewRegistry()
	c, err := NewRunCollector(reg)
	if err != nil {
		return err
	}
	c.Observe(r)
	return prometheus.WriteToTextfile(path, reg)
}
