package stats

import (
	"gbsaview/internal/errors"
)

// windowAt returns the trailing window ending at index i: samples
// [max(0,i-w+1), i]. The window narrows near the start of the series and
// never includes future samples.
func windowAt(series []float64, i, w int) []float64 {
	start := i - w + 1
	if start < 0 {
		start = 0
	}
	return series[start : i+1]
}

// RunningMean computes the causal trailing-window moving average: the value
// at index i is the arithmetic mean of up to w samples ending at i.
func RunningMean(series []float64, window int) ([]float64, error) {
	if len(series) == 0 {
		return nil, errors.InvalidInput("cannot compute running mean of an empty series")
	}
	if window < 1 {
		return nil, errors.InvalidInput("window size must be at least 1")
	}

	out := make([]float64, len(series))
	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}
