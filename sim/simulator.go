// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/kiosk-sim/kiosk-sim/sim/trace"
)

// RunState is the engine's global progress.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed" // horizon or iteration cap reached
	RunExhausted RunState = "exhausted" // no events left
)

// StopReason says which termination condition ended the loop.
type StopReason string

const (
	StopHorizon      StopReason = "horizon"
	StopIterationCap StopReason = "iteration_cap"
	StopExhausted    StopReason = "exhausted"
)

// upcomingInTrace is how many pending events each snapshot lists.
const upcomingInTrace = 3

// Simulator is the core object that holds simulation time, entity state, and the event loop.
// It exclusively owns every entity and the event queue; the only way to
// observe it from outside is the trace it records.
type Simulator struct {
	cfg   Config
	clock float64
	state RunState

	// events has all the future events: arrivals, completions, rounds, returns
	events *EventQueue
	// waitQ holds waiting student ids in arrival order, bounded by MaxQueueLength
	waitQ      *WaitQueue
	terminals  [NumTerminals]Terminal
	technician Technician
	// students in the system (waiting, in service, or balked and due to return)
	students      map[int]*Student
	nextStudentID int

	// most recent inspection per terminal, kept for the state vector
	lastInspectionDuration [NumTerminals]float64
	lastInspectionEnd      [NumTerminals]float64

	counters   Counters
	waits      []float64
	iterations int

	rng      *RandomSource
	variates *VariateGenerator
	log      *trace.Log
}

// NewSimulator validates cfg and returns an idle simulator seeded by key.
func NewSimulator(cfg Config, key SimulationKey) (*Simulator, error) {
	return newSimulator(cfg, NewRandomSource(key))
}

func newSimulator(cfg Config, rng *RandomSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:           cfg,
		state:         RunIdle,
		events:        NewEventQueue(),
		waitQ:         &WaitQueue{},
		students:      make(map[int]*Student),
		nextStudentID: 1,
		rng:           rng,
		variates:      NewVariateGenerator(cfg, rng),
		log:           trace.NewLog(),
	}
	for i := range s.terminals {
		s.terminals[i] = Terminal{ID: i + 1, State: TerminalFree, StudentID: NoStudent, ServiceEnd: NoTime}
		s.lastInspectionDuration[i] = NoTime
		s.lastInspectionEnd[i] = NoTime
	}
	s.technician = Technician{
		State:         TechnicianAvailable,
		TerminalID:    NoTerminal,
		InspectionEnd: NoTime,
		NextRound:     NoTime,
	}
	return s, nil
}

// Simulate runs the model until the horizon, the iteration cap, or an empty
// event list, whichever comes first. A Simulator runs at most once.
// Events scheduled after the horizon are left unprocessed, so the final
// clock never exceeds it.
func (s *Simulator) Simulate(horizon float64, maxIterations int) (*SimulationResult, error) {
	if s.state != RunIdle {
		return nil, ErrAlreadyRun
	}
	if err := validateRun(horizon, maxIterations); err != nil {
		return nil, err
	}

	s.state = RunRunning
	logrus.Infof("Starting simulation: seed=%d horizon=%.2f maxIterations=%d config=%+v",
		s.rng.Key(), horizon, maxIterations, s.cfg)

	s.start()
	reason := s.run(horizon, maxIterations)
	if reason == StopExhausted {
		s.state = RunExhausted
	} else {
		s.state = RunCompleted
	}

	logrus.Infof("[t=%09.3f] Simulation ended after %d iterations (%s)", s.clock, s.iterations, reason)
	return s.result(horizon, reason), nil
}

// start seeds the event list with the first arrival and the first
// inspection round, then records the initial state.
func (s *Simulator) start() {
	s.clock = 0
	dt, _ := s.variates.InterArrival()
	s.events.Schedule(dt, EventStudentArrival, Payload{})

	gap, _ := s.variates.InterRound()
	s.technician.NextRound = gap
	s.events.Schedule(gap, EventInspectionRoundStart, Payload{})

	s.record(Event{Kind: EventInit})
}

func (s *Simulator) run(horizon float64, maxIterations int) StopReason {
	for {
		if s.iterations >= maxIterations {
			return StopIterationCap
		}
		if s.clock >= horizon {
			return StopHorizon
		}
		next, ok := s.events.Peek()
		if !ok {
			return StopExhausted
		}
		if next.Time > horizon {
			return StopHorizon
		}

		// get the next event to be simulated
		ev, _ := s.events.PopNext()
		// advance the clock
		s.clock = ev.Time
		logrus.Debugf("[t=%09.3f] Executing %s", s.clock, ev.Label())
		// process the event
		s.dispatch(ev)
		s.iterations++
		s.record(ev)
	}
}

func (s *Simulator) dispatch(ev Event) {
	switch ev.Kind {
	case EventStudentArrival:
		s.handleStudentArrival()
	case EventServiceCompletion:
		s.handleServiceCompletion(ev.TerminalID)
	case EventInspectionRoundStart:
		s.handleInspectionRoundStart()
	case EventInspectionCompletion:
		s.handleInspectionCompletion()
	case EventBalkReturn:
		s.handleBalkReturn(ev.StudentID)
	default:
		panic(invariantf(s.clock, "unknown event kind %q", ev.Kind))
	}
}

// terminal returns the live terminal with the given id.
func (s *Simulator) terminal(id int) *Terminal {
	if id < 1 || id > NumTerminals {
		panic(invariantf(s.clock, "terminal %d does not exist", id))
	}
	return &s.terminals[id-1]
}

// student returns the live student with the given id.
func (s *Simulator) student(id int) *Student {
	st, ok := s.students[id]
	if !ok {
		panic(invariantf(s.clock, "student %d is not in the system", id))
	}
	return st
}

func (s *Simulator) result(horizon float64, reason StopReason) *SimulationResult {
	m := Aggregate(s.counters)
	r := &SimulationResult{
		Key:             s.rng.Key(),
		Config:          s.cfg,
		Horizon:         horizon,
		Trace:           trace.ReadOnly(s.log),
		Iterations:      s.iterations,
		FinalClock:      s.clock,
		StopReason:      reason,
		State:           s.state,
		Served:          s.counters.Served,
		Balked:          s.counters.Balked,
		BalkRatePercent: m.BalkRatePercent,
		MeanWait:        m.MeanWait,
		Counters:        s.counters,
		Waits:           append([]float64(nil), s.waits...),
	}
	for _, st := range s.students {
		switch st.State {
		case StudentWaiting:
			r.Waiting++
		case StudentInService:
			r.InService++
		case StudentBalked:
			r.PendingReturns++
		}
	}
	return r
}

// Clock returns the current simulated time.
func (s *Simulator) Clock() float64 { return s.clock }

// State returns the engine's run state.
func (s *Simulator) State() RunState { return s.state }

// Terminal returns a copy of terminal id.
func (s *Simulator) Terminal(id int) Terminal { return *s.terminal(id) }

// Technician returns a copy of the technician.
func (s *Simulator) Technician() Technician { return s.technician }

// Counters returns a copy of the running accumulators.
func (s *Simulator) Counters() Counters { return s.counters }

// QueueItems returns the waiting student ids, head first.
func (s *Simulator) QueueItems() []int { return s.waitQ.Items() }
