package trajectory

import (
	"gbsaview/internal/errors"
)

// Trajectory is an ordered series of per-frame binding free energy values
// (kcal/mol) extracted from one MM-GBSA output file. Samples are read-only
// once loaded.
type Trajectory struct {
	Label   string
	Samples []float64
}

// New builds a Trajectory, rejecting empty series.
func New(label string, samples []float64) (*Trajectory, error) {
	if len(samples) == 0 {
		return nil, errors.FormatError("trajectory has no samples")
	}
	return &Trajectory{Label: label, Samples: samples}, nil
}

// Len returns the number of frames.
func (t *Trajectory) Len() int {
	return len(t.Samples)
}

// TimeAxis maps frame indices onto simulated time. Frame i lands at
// i * duration/(N-1); a single-frame trajectory sits at t=0.
func (t *Trajectory) TimeAxis(durationNs float64) []float64 {
	n := len(t.Samples)
	axis := make([]float64, n)
	if n < 2 {
		return axis
	}
	dt := durationNs / float64(n-1)
	for i := range axis {
		axis[i] = float64(i) * dt
	}
	return axis
}
