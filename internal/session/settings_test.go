package session

import (
	"testing"

	"gbsaview/domain/stats"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.WindowSize != 10 {
		t.Errorf("WindowSize = %d, want 10", s.WindowSize)
	}
	if !s.ShowFrames || !s.ShowRunningMean || s.ShowErrorBars {
		t.Error("default visibility flags wrong")
	}
	if s.FrameColor != "#FFA500" || s.MeanColor != "#8B0000" {
		t.Errorf("default colors = %s/%s", s.FrameColor, s.MeanColor)
	}
	if s.ErrorType != stats.BandStandardError {
		t.Errorf("ErrorType = %s", s.ErrorType)
	}
	if s.MaxSeries != 4 {
		t.Errorf("MaxSeries = %d, want 4", s.MaxSeries)
	}
}

func TestResetDiscardsMutations(t *testing.T) {
	s := DefaultSettings()
	s.WindowSize = 25
	s.ComparisonMode = true
	s.SeriesStyleFor("LIG-1", 0)

	s.Reset()

	if s.WindowSize != 10 || s.ComparisonMode || len(s.PerSeries) != 0 {
		t.Errorf("reset incomplete: %+v", s)
	}
}

func TestAutoTitle(t *testing.T) {
	tests := []struct {
		name    string
		current string
		label   string
		want    string
	}{
		{"default title is replaced", DefaultPlotTitle, "LIG-1", DefaultPlotTitle + " - LIG-1"},
		{"empty title is replaced", "", "LIG-1", DefaultPlotTitle + " - LIG-1"},
		{"auto-derived title is re-derived", DefaultPlotTitle + " - OLD", "NEW", DefaultPlotTitle + " - NEW"},
		{"user title is preserved", "My binding study", "LIG-1", "My binding study"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.PlotTitle = tt.current
			s.AutoTitle(tt.label)
			if s.PlotTitle != tt.want {
				t.Errorf("PlotTitle = %q, want %q", s.PlotTitle, tt.want)
			}
		})
	}
}

func TestSeriesStyleForAssignsPaletteColors(t *testing.T) {
	s := DefaultSettings()

	first := s.SeriesStyleFor("LIG-1", 0)
	second := s.SeriesStyleFor("LIG-2", 1)
	wrapped := s.SeriesStyleFor("LIG-11", len(ColorPalette))

	if first.MeanColor != ColorPalette[0] || second.MeanColor != ColorPalette[1] {
		t.Errorf("palette colors = %s/%s", first.MeanColor, second.MeanColor)
	}
	if wrapped.MeanColor != ColorPalette[0] {
		t.Errorf("palette should cycle, got %s", wrapped.MeanColor)
	}
	if first.ShowFrames {
		t.Error("comparison-mode frame lines should default to hidden")
	}

	// Overrides stick across lookups.
	first.MeanStyle = StyleDashed
	if s.SeriesStyleFor("LIG-1", 5).MeanStyle != StyleDashed {
		t.Error("per-series override lost")
	}
}

func TestValidators(t *testing.T) {
	if !ValidHexColor("#FFA500") || ValidHexColor("FFA500") || ValidHexColor("#GGHHII") {
		t.Error("hex color validation wrong")
	}
	if !ValidLineStyle("dashdot") || ValidLineStyle("wavy") {
		t.Error("line style validation wrong")
	}
	if !ValidLegendPosition("upper right") || ValidLegendPosition("somewhere") {
		t.Error("legend position validation wrong")
	}
}
