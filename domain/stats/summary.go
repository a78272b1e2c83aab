package stats

import (
	"github.com/montanaflynn/stats"

	"gbsaview/internal/errors"
)

// Summary holds descriptive statistics computed once over a full energy
// series. Immutable after computation.
type Summary struct {
	Frames int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes count, mean, sample standard deviation and extrema for
// the whole series. The caller must reject empty series.
func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, errors.InvalidInput("cannot summarize an empty series")
	}

	mean, err := stats.Mean(series)
	if err != nil {
		return Summary{}, errors.Wrap(err, "mean computation failed")
	}
	min, err := stats.Min(series)
	if err != nil {
		return Summary{}, errors.Wrap(err, "min computation failed")
	}
	max, err := stats.Max(series)
	if err != nil {
		return Summary{}, errors.Wrap(err, "max computation failed")
	}

	// Sample (N-1) standard deviation; zero for a single frame.
	sd := 0.0
	if len(series) > 1 {
		sd, err = stats.StandardDeviationSample(series)
		if err != nil {
			return Summary{}, errors.Wrap(err, "standard deviation computation failed")
		}
	}

	return Summary{
		Frames: len(series),
		Mean:   mean,
		StdDev: sd,
		Min:    min,
		Max:    max,
	}, nil
}
