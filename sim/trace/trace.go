package trace

// Reader is the read-only view of a Log handed to consumers of a run.
type Reader interface {
	Len() int
	At(i int) (Snapshot, bool)
	Last() (Snapshot, bool)
	Window(from, count int) []Snapshot
	Snapshots() []Snapshot
}

// ReadOnly wraps l so that holders of the result cannot append to it.
func ReadOnly(l *Log) Reader {
	return view{log: l}
}

type view struct{ log *Log }

func (v view) Len() int                          { return v.log.Len() }
func (v view) At(i int) (Snapshot, bool)         { return v.log.At(i) }
func (v view) Last() (Snapshot, bool)            { return v.log.Last() }
func (v view) Window(from, count int) []Snapshot { return v.log.Window(from, count) }
func (v view) Snapshots() []Snapshot             { return v.log.Snapshots() }

// Log is the append-only state vector of one simulation run.
// Readers only ever receive copies; the log itself is never edited in place.
type Log struct {
	snapshots []Snapshot
}

// NewLog creates a Log ready for recording.
func NewLog() *Log {
	return &Log{snapshots: make([]Snapshot, 0)}
}

// Append adds a snapshot at the end of the log. The log keeps its own copy.
func (l *Log) Append(s Snapshot) {
	l.snapshots = append(l.snapshots, s.Clone())
}

// Len returns the number of recorded snapshots.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.snapshots)
}

// At returns a copy of the i-th snapshot.
func (l *Log) At(i int) (Snapshot, bool) {
	if i < 0 || i >= l.Len() {
		return Snapshot{}, false
	}
	return l.snapshots[i].Clone(), true
}

// Last returns a copy of the final snapshot.
func (l *Log) Last() (Snapshot, bool) {
	return l.At(l.Len() - 1)
}

// Window returns copies of count snapshots starting at index from.
// A count <= 0 means "through the end". Out-of-range bounds are clamped.
func (l *Log) Window(from, count int) []Snapshot {
	n := l.Len()
	if from < 0 {
		from = 0
	}
	if from >= n {
		return []Snapshot{}
	}
	end := n
	if count > 0 && from+count < n {
		end = from + count
	}
	out := make([]Snapshot, 0, end-from)
	for _, s := range l.snapshots[from:end] {
		out = append(out, s.Clone())
	}
	return out
}

// Snapshots returns copies of every snapshot in order.
func (l *Log) Snapshots() []Snapshot {
	return l.Window(0, 0)
}
