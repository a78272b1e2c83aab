package trajectory

import (
	"math"
	"testing"
)

func TestNewRejectsEmptySeries(t *testing.T) {
	if _, err := New("lig1", nil); err == nil {
		t.Fatal("expected error for empty series")
	}
	if _, err := New("lig1", []float64{}); err == nil {
		t.Fatal("expected error for zero-length series")
	}
}

func TestTimeAxisSpansDuration(t *testing.T) {
	traj, err := New("lig1", []float64{1.0, 2.0, 3.0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	axis := traj.TimeAxis(2.0)
	want := []float64{0.0, 1.0, 2.0}
	if len(axis) != len(want) {
		t.Fatalf("axis length = %d, want %d", len(axis), len(want))
	}
	for i := range want {
		if math.Abs(axis[i]-want[i]) > 1e-12 {
			t.Errorf("axis[%d] = %f, want %f", i, axis[i], want[i])
		}
	}
}

func TestTimeAxisSingleFrame(t *testing.T) {
	traj, _ := New("lig1", []float64{-42.5})
	axis := traj.TimeAxis(100.0)
	if len(axis) != 1 || axis[0] != 0 {
		t.Errorf("single-frame axis = %v, want [0]", axis)
	}
}
