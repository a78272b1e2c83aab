package export

import (
	"fmt"
	"strings"

	"gbsaview/domain/stats"
	"gbsaview/internal/session"
)

// SeriesStats pairs a series label with its summary statistics.
type SeriesStats struct {
	Label   string
	Summary stats.Summary
}

// TextReport renders the plain-text statistics report. Comparison mode lists
// every series; single mode additionally reports the window size, line
// styles and, when shown, the error-bar type.
func TextReport(all []SeriesStats, s *session.Settings) string {
	var lines []string

	if s.ComparisonMode {
		lines = append(lines,
			"MMGBSA Comparison Statistics",
			strings.Repeat("=", 30),
		)
		for _, ss := range all {
			lines = append(lines,
				"",
				fmt.Sprintf("Ligand: %s", ss.Label),
				fmt.Sprintf("Mean ΔGbind: %.2f kcal/mol", ss.Summary.Mean),
				fmt.Sprintf("StdDev: %.2f", ss.Summary.StdDev),
				fmt.Sprintf("Range: %.2f to %.2f", ss.Summary.Min, ss.Summary.Max),
				fmt.Sprintf("Frames: %d", ss.Summary.Frames),
				strings.Repeat("-", 30),
			)
		}
		return strings.Join(lines, "\n")
	}

	ss := all[0]
	lines = append(lines,
		fmt.Sprintf("Ligand: %s", ss.Label),
		fmt.Sprintf("Mean ΔGbind: %.2f kcal/mol", ss.Summary.Mean),
		fmt.Sprintf("StdDev: %.2f", ss.Summary.StdDev),
		fmt.Sprintf("Range: %.2f to %.2f", ss.Summary.Min, ss.Summary.Max),
		fmt.Sprintf("Frames: %d", ss.Summary.Frames),
		fmt.Sprintf("Running mean window size: %d", s.WindowSize),
		fmt.Sprintf("Frame style: %s", s.FrameStyle),
		fmt.Sprintf("Running mean style: %s", s.MeanStyle),
	)
	if s.ShowErrorBars {
		lines = append(lines, fmt.Sprintf("Error bars: %s", s.ErrorType))
	}
	return strings.Join(lines, "\n")
}
