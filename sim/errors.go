package sim

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned when Simulate is called twice on one Simulator.
var ErrAlreadyRun = errors.New("simulator has already run")

// ConfigError reports a rejected construction or run parameter.
// It is always returned before any event is processed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvariantError describes engine state that the event schedule should make
// unreachable. The engine panics with it; it is a defect, not an input error.
type InvariantError struct {
	Clock  float64
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at t=%.4f: %s", e.Clock, e.Detail)
}

func invariantf(clock float64, format string, args ...any) *InvariantError {
	return &InvariantError{Clock: clock, Detail: fmt.Sprintf(format, args...)}
}
