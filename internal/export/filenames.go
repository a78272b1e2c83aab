package export

import "strings"

// Comparison-mode download names are fixed; single-series names carry the
// ligand label.
const (
	ComparisonPNGName  = "mmgbsa_comparison.png"
	ComparisonTXTName  = "mmgbsa_comparison_stats.txt"
	ComparisonCSVName  = "mmgbsa_comparison_stats.csv"
	ComparisonXLSXName = "mmgbsa_comparison_stats.xlsx"
)

// PNGFileName derives the chart download name from the first series label
// and the mode.
func PNGFileName(label string, comparison bool) string {
	if comparison {
		return ComparisonPNGName
	}
	return sanitizeLabel(label) + "_dg_time.png"
}

// TXTFileName derives the statistics report download name.
func TXTFileName(label string, comparison bool) string {
	if comparison {
		return ComparisonTXTName
	}
	return sanitizeLabel(label) + "_dg_stats.txt"
}

// sanitizeLabel keeps download names safe for Content-Disposition headers
// and filesystems.
func sanitizeLabel(label string) string {
	if label == "" {
		return "ligand"
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
	)
	return replacer.Replace(label)
}
