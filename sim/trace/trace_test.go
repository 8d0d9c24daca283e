package trace

import (
	"testing"
)

func snap(iter int, clock float64, event string) Snapshot {
	return Snapshot{
		Iteration: iter,
		Clock:     clock,
		Event:     event,
		Queue:     []int{iter},
		Draws:     []Draw{{Key: DrawKeyArrival, U: 0.5, Value: 1.386}},
	}
}

func TestLog_Append_PreservesOrder(t *testing.T) {
	// GIVEN an empty log
	l := NewLog()

	// WHEN three snapshots are appended
	l.Append(snap(0, 0, "init"))
	l.Append(snap(1, 1.5, "student_arrival"))
	l.Append(snap(2, 2.0, "service_completion"))

	// THEN they come back in order
	if l.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", l.Len())
	}
	for i, s := range l.Snapshots() {
		if s.Iteration != i {
			t.Errorf("snapshot %d has iteration %d", i, s.Iteration)
		}
	}
	last, ok := l.Last()
	if !ok || last.Event != "service_completion" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestLog_Append_CopiesInput(t *testing.T) {
	// GIVEN a snapshot appended to the log
	l := NewLog()
	s := snap(0, 0, "init")
	l.Append(s)

	// WHEN the caller mutates their copy
	s.Queue[0] = 99
	s.Draws[0].Key = "tampered"

	// THEN the log is unaffected
	got, _ := l.At(0)
	if got.Queue[0] != 0 || got.Draws[0].Key != DrawKeyArrival {
		t.Errorf("log changed through caller's slices: %+v", got)
	}
}

func TestLog_At_ReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(snap(0, 0, "init"))

	got, _ := l.At(0)
	got.Queue[0] = 42

	again, _ := l.At(0)
	if again.Queue[0] != 0 {
		t.Error("At() exposed the log's internal slice")
	}
}

func TestLog_At_OutOfRange(t *testing.T) {
	l := NewLog()
	if _, ok := l.At(0); ok {
		t.Error("At(0) on empty log should report false")
	}
	if _, ok := l.At(-1); ok {
		t.Error("At(-1) should report false")
	}
	if _, ok := l.Last(); ok {
		t.Error("Last() on empty log should report false")
	}
}

func TestLog_Window(t *testing.T) {
	l := NewLog()
	for i := 0; i < 10; i++ {
		l.Append(snap(i, float64(i), "student_arrival"))
	}

	tests := []struct {
		name      string
		from      int
		count     int
		wantFirst int
		wantLen   int
	}{
		{"middle", 3, 4, 3, 4},
		{"through end", 7, 0, 7, 3},
		{"count past end clamped", 8, 5, 8, 2},
		{"negative from clamped", -2, 2, 0, 2},
		{"from past end", 10, 3, 0, 0},
		{"everything", 0, 0, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := l.Window(tt.from, tt.count)
			if len(w) != tt.wantLen {
				t.Fatalf("Window(%d,%d) len = %d, want %d", tt.from, tt.count, len(w), tt.wantLen)
			}
			if tt.wantLen > 0 && w[0].Iteration != tt.wantFirst {
				t.Errorf("Window(%d,%d) starts at %d, want %d", tt.from, tt.count, w[0].Iteration, tt.wantFirst)
			}
		})
	}
}

func TestLog_NilSafe(t *testing.T) {
	var l *Log
	if l.Len() != 0 {
		t.Error("nil log should have length 0")
	}
	if len(l.Window(0, 0)) != 0 {
		t.Error("nil log window should be empty")
	}
}

func TestDrawKeys(t *testing.T) {
	if got := ServiceDrawKey(3); got != "service_3" {
		t.Errorf("ServiceDrawKey(3) = %q", got)
	}
	if got := InspectionDrawKey(1); got != "inspection_1" {
		t.Errorf("InspectionDrawKey(1) = %q", got)
	}
}

func TestReadOnly_ViewsLogWithoutAppend(t *testing.T) {
	// GIVEN a log behind a read-only view
	l := NewLog()
	l.Append(snap(0, 0, "init"))
	r := ReadOnly(l)

	// THEN the view offers no way to append
	if _, ok := r.(interface{ Append(Snapshot) }); ok {
		t.Fatal("read-only view exposes Append")
	}

	// AND it follows the underlying log
	l.Append(snap(1, 1, "student_arrival"))
	if r.Len() != 2 {
		t.Errorf("view length = %d, want 2", r.Len())
	}
	last, _ := r.Last()
	if last.Event != "student_arrival" {
		t.Errorf("Last().Event = %q", last.Event)
	}

	// AND copies handed out do not reach the log
	w := r.Window(0, 1)
	w[0].Queue[0] = 99
	if got, _ := r.At(0); got.Queue[0] != 0 {
		t.Error("view exposed the log's internal slice")
	}
}
