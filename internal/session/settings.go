package session

import (
	"regexp"
	"strings"

	"gbsaview/domain/stats"
)

// LineStyle is one of the fixed dash patterns a series line can use.
type LineStyle string

const (
	StyleSolid   LineStyle = "solid"
	StyleDashed  LineStyle = "dashed"
	StyleDotted  LineStyle = "dotted"
	StyleDashDot LineStyle = "dashdot"
)

// LegendPosition selects where the chart legend is anchored.
type LegendPosition string

const (
	LegendBest        LegendPosition = "best"
	LegendUpperRight  LegendPosition = "upper right"
	LegendUpperLeft   LegendPosition = "upper left"
	LegendLowerLeft   LegendPosition = "lower left"
	LegendLowerRight  LegendPosition = "lower right"
	LegendCenterLeft  LegendPosition = "center left"
	LegendCenterRight LegendPosition = "center right"
	LegendLowerCenter LegendPosition = "lower center"
	LegendUpperCenter LegendPosition = "upper center"
	LegendCenter      LegendPosition = "center"
)

// Default labels. The plot title is auto-suffixed with the ligand label on
// upload unless the user has replaced it with something of their own.
const (
	DefaultPlotTitle = "ΔGbind vs Time (ns)"
	DefaultXLabel    = "Time (ns)"
	DefaultYLabel    = "ΔGbind (kcal/mol)"
)

// ColorPalette is the fixed per-series palette for comparison mode, cycled
// when the series count exceeds its length.
var ColorPalette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F", "#EDC948",
	"#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// SeriesStyle carries per-series overrides used in comparison mode.
type SeriesStyle struct {
	ShowFrames bool
	FrameColor string
	FrameStyle LineStyle
	MeanColor  string
	MeanStyle  LineStyle
}

// Settings is the session-scoped display configuration. It affects rendering
// only, never the numeric model. Lifecycle: created with defaults, mutated by
// form submissions, resettable, dropped when the session expires.
type Settings struct {
	WindowSize      int
	ShowFrames      bool
	ShowRunningMean bool
	ShowErrorBars   bool
	ErrorType       stats.BandMethod
	ErrorAlpha      float64

	FrameColor string
	FrameAlpha float64
	FrameStyle LineStyle
	MeanColor  string
	MeanWidth  float64
	MeanStyle  LineStyle

	ComparisonMode bool
	MaxSeries      int

	PlotTitle      string
	XLabel         string
	YLabel         string
	LegendPosition LegendPosition

	// PerSeries holds comparison-mode overrides keyed by series label.
	PerSeries map[string]*SeriesStyle
}

// DefaultSettings returns a fresh settings object with the application
// defaults: orange per-frame line, dark-red running mean, window of 10.
func DefaultSettings() *Settings {
	return &Settings{
		WindowSize:      10,
		ShowFrames:      true,
		ShowRunningMean: true,
		ShowErrorBars:   false,
		ErrorType:       stats.BandStandardError,
		ErrorAlpha:      0.3,
		FrameColor:      "#FFA500",
		FrameAlpha:      0.7,
		FrameStyle:      StyleSolid,
		MeanColor:       "#8B0000",
		MeanWidth:       2.0,
		MeanStyle:       StyleSolid,
		ComparisonMode:  false,
		MaxSeries:       4,
		PlotTitle:       DefaultPlotTitle,
		XLabel:          DefaultXLabel,
		YLabel:          DefaultYLabel,
		LegendPosition:  LegendBest,
		PerSeries:       make(map[string]*SeriesStyle),
	}
}

// Reset restores every field to its default, discarding per-series overrides.
func (s *Settings) Reset() {
	*s = *DefaultSettings()
}

// AutoTitle updates the plot title to name the uploaded ligand, but only
// when the current title is empty, the default, or a previously auto-derived
// one. A title typed by the user is left alone. The prefix match is a
// heuristic: a hand-typed title that happens to start with the default
// prefix plus " - " is treated as auto-derived.
func (s *Settings) AutoTitle(label string) {
	auto := DefaultPlotTitle + " - " + label
	switch {
	case s.PlotTitle == "", s.PlotTitle == DefaultPlotTitle:
		s.PlotTitle = auto
	case strings.HasPrefix(s.PlotTitle, DefaultPlotTitle+" - "):
		s.PlotTitle = auto
	}
}

// SeriesStyleFor returns the style for a labeled series in comparison mode,
// creating a palette-colored default (frame line hidden) on first sight.
func (s *Settings) SeriesStyleFor(label string, index int) *SeriesStyle {
	if s.PerSeries == nil {
		s.PerSeries = make(map[string]*SeriesStyle)
	}
	if st, ok := s.PerSeries[label]; ok {
		return st
	}
	color := ColorPalette[index%len(ColorPalette)]
	st := &SeriesStyle{
		ShowFrames: false,
		FrameColor: color,
		FrameStyle: StyleSolid,
		MeanColor:  color,
		MeanStyle:  StyleSolid,
	}
	s.PerSeries[label] = st
	return st
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidHexColor reports whether s is a #RRGGBB color.
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ValidLineStyle reports whether s names a supported dash style.
func ValidLineStyle(s string) bool {
	switch LineStyle(s) {
	case StyleSolid, StyleDashed, StyleDotted, StyleDashDot:
		return true
	}
	return false
}

// ValidLegendPosition reports whether s names a supported legend anchor.
func ValidLegendPosition(s string) bool {
	switch LegendPosition(s) {
	case LegendBest, LegendUpperRight, LegendUpperLeft, LegendLowerLeft,
		LegendLowerRight, LegendCenterLeft, LegendCenterRight,
		LegendLowerCenter, LegendUpperCenter, LegendCenter:
		return true
	}
	return false
}
