// Package sim provides the discrete-event simulation engine for the
// certificate kiosk: four self-service terminals, a bounded wait queue, and a
// technician who takes terminals out of service for periodic inspection.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - entity.go: Student, Terminal and Technician records and their states
//   - event.go, event_queue.go: the future-event list and its FIFO tie-break
//   - simulator.go: the event loop and its termination conditions
//   - handlers.go: one transition handler per event kind, plus terminal assignment
//   - inspection.go: the technician's sweep over pending terminals
//
// A terminal released by an inspection serves the head of the wait queue in
// the same step, just as one released by a service completion does. Traces
// therefore differ step for step from a model that leaves such a terminal
// idle until the next arrival.
//
// # Time and randomness
//
// The clock jumps from event to event. Every random duration comes from a
// single seeded stream (rng.go, variates.go); a run is a pure function of its
// SimulationKey and Config.
//
// # Output
//
// After the initial state and after every processed event the engine appends
// a snapshot to a sim/trace.Log. The log and the SimulationResult built from
// the final counters (metrics.go) are the only observable output; presentation
// code consumes them without touching engine state.
//
// # Errors
//
// Bad parameters are reported as *ConfigError before any event runs. Broken
// engine invariants panic with *InvariantError; they indicate a defect.
package sim
