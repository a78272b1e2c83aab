package stats

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gbsaview/internal/errors"
)

// BandMethod selects how the per-index error band is derived from the
// trailing window.
type BandMethod string

const (
	BandStandardError     BandMethod = "Standard Error"
	BandStandardDeviation BandMethod = "Standard Deviation"
	BandConfidence95      BandMethod = "95% Confidence Interval"
)

const confidenceLevel = 0.95

// Band holds per-index lower and upper bounds for an error overlay. For the
// standard-error and standard-deviation methods the bounds are symmetric
// around the running mean; for the confidence-interval method they follow
// the Student-t interval of the trailing window.
type Band struct {
	Method BandMethod
	Lower  []float64
	Upper  []float64
}

// ValidBandMethod reports whether s names a supported band method.
func ValidBandMethod(s string) bool {
	switch BandMethod(s) {
	case BandStandardError, BandStandardDeviation, BandConfidence95:
		return true
	}
	return false
}

// ErrorBand derives the error band for a series with the given trailing
// window. A window holding fewer than 2 samples yields a zero-width band at
// that index (spread zero for SE/SD, the point value itself for the CI).
func ErrorBand(series []float64, window int, method BandMethod) (*Band, error) {
	if len(series) == 0 {
		return nil, errors.InvalidInput("cannot compute error band of an empty series")
	}
	if window < 1 {
		return nil, errors.InvalidInput("window size must be at least 1")
	}

	switch method {
	case BandStandardError, BandStandardDeviation:
		return spreadBand(series, window, method)
	case BandConfidence95:
		return confidenceBand(series, window)
	default:
		return nil, errors.InvalidInput("unknown error band method: " + string(method))
	}
}

// spreadBand computes symmetric bounds running±sd or running±sd/sqrt(n).
func spreadBand(series []float64, window int, method BandMethod) (*Band, error) {
	running, err := RunningMean(series, window)
	if err != nil {
		return nil, err
	}

	lower := make([]float64, len(series))
	upper := make([]float64, len(series))
	for i := range series {
		win := windowAt(series, i, window)
		mag := 0.0
		if len(win) >= 2 {
			sd, err := stats.StandardDeviationSample(win)
			if err != nil {
				return nil, errors.Wrap(err, "window standard deviation failed")
			}
			mag = sd
			if method == BandStandardError {
				mag = sd / math.Sqrt(float64(len(win)))
			}
		}
		lower[i] = running[i] - mag
		upper[i] = running[i] + mag
	}
	return &Band{Method: method, Lower: lower, Upper: upper}, nil
}

// confidenceBand computes the two-sided Student-t interval of the trailing
// window at 95% confidence. The first two indices, and any window with fewer
// than 2 samples, degenerate to the point value.
func confidenceBand(series []float64, window int) (*Band, error) {
	lower := make([]float64, len(series))
	upper := make([]float64, len(series))
	for i := range series {
		win := windowAt(series, i, window)
		if i < 2 || len(win) < 2 {
			lower[i] = series[i]
			upper[i] = series[i]
			continue
		}
		lo, hi, err := tInterval(win)
		if err != nil {
			return nil, err
		}
		lower[i] = lo
		upper[i] = hi
	}
	return &Band{Method: BandConfidence95, Lower: lower, Upper: upper}, nil
}

// tInterval returns the two-sided Student-t confidence interval for the mean
// of data, which must hold at least 2 values.
func tInterval(data []float64) (lo, hi float64, err error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return 0, 0, errors.Wrap(err, "window mean failed")
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0, 0, errors.Wrap(err, "window standard deviation failed")
	}

	n := float64(len(data))
	sem := sd / math.Sqrt(n)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	crit := t.Quantile(0.5 + confidenceLevel/2)
	return mean - crit*sem, mean + crit*sem, nil
}
