package render

import (
	"bytes"
	"testing"

	"gbsaview/domain/stats"
	"gbsaview/internal/session"
)

func testSeries(label string) SeriesPlot {
	return SeriesPlot{
		Label:      label,
		Time:       []float64{0, 1, 2, 3},
		Frames:     []float64{-50, -52, -48, -51},
		Running:    []float64{-50, -51, -50, -50.25},
		ShowFrames: true,
		FrameColor: "#FFA500",
		FrameAlpha: 0.7,
		FrameStyle: session.StyleSolid,
		MeanColor:  "#8B0000",
		MeanWidth:  2.0,
		MeanStyle:  session.StyleSolid,
	}
}

func testConfig() ChartConfig {
	return ChartConfig{
		Title:          "ΔGbind vs Time (ns) - LIG-1",
		XLabel:         "Time (ns)",
		YLabel:         "ΔGbind (kcal/mol)",
		LegendPosition: session.LegendBest,
		ErrorAlpha:     0.3,
		WindowSize:     10,
	}
}

func TestChartSingleSeries(t *testing.T) {
	p, err := Chart([]SeriesPlot{testSeries("LIG-1")}, testConfig())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if p.Title.Text != "ΔGbind vs Time (ns) - LIG-1" {
		t.Errorf("title = %q", p.Title.Text)
	}
	if p.X.Label.Text != "Time (ns)" || p.Y.Label.Text != "ΔGbind (kcal/mol)" {
		t.Errorf("axis labels = %q / %q", p.X.Label.Text, p.Y.Label.Text)
	}
}

// The running-mean line must be drawn even when the per-frame line is the
// only thing the user toggled off: changing its color must change the pixels.
func TestChartAlwaysDrawsRunningMean(t *testing.T) {
	renderPNG := func(meanColor string) []byte {
		sp := testSeries("LIG-1")
		sp.ShowFrames = false
		sp.MeanColor = meanColor

		p, err := Chart([]SeriesPlot{sp}, testConfig())
		if err != nil {
			t.Fatalf("Chart: %v", err)
		}
		var buf bytes.Buffer
		if err := WritePNG(&buf, p, SingleWidthIn, SingleHeightIn, 72); err != nil {
			t.Fatalf("WritePNG: %v", err)
		}
		return buf.Bytes()
	}

	if bytes.Equal(renderPNG("#8B0000"), renderPNG("#00FF00")) {
		t.Fatal("mean color change did not alter the chart; running-mean line not drawn")
	}
}

func TestChartDoesNotMutateInputs(t *testing.T) {
	sp := testSeries("LIG-1")
	frames := append([]float64(nil), sp.Frames...)
	running := append([]float64(nil), sp.Running...)

	if _, err := Chart([]SeriesPlot{sp}, testConfig()); err != nil {
		t.Fatalf("Chart: %v", err)
	}

	for i := range frames {
		if sp.Frames[i] != frames[i] || sp.Running[i] != running[i] {
			t.Fatal("chart rendering mutated input slices")
		}
	}
}

func TestChartWithErrorBand(t *testing.T) {
	sp := testSeries("LIG-1")
	band, err := stats.ErrorBand(sp.Frames, 3, stats.BandStandardError)
	if err != nil {
		t.Fatalf("ErrorBand: %v", err)
	}
	sp.Band = band

	cfg := testConfig()
	cfg.ShowErrorBars = true
	if _, err := Chart([]SeriesPlot{sp}, cfg); err != nil {
		t.Fatalf("Chart with band: %v", err)
	}
}

func TestChartMultiSeries(t *testing.T) {
	cfg := testConfig()
	cfg.Comparison = true
	series := []SeriesPlot{testSeries("LIG-1"), testSeries("LIG-2"), testSeries("LIG-3")}
	for i := range series {
		series[i].MeanColor = session.ColorPalette[i%len(session.ColorPalette)]
		series[i].ShowFrames = false
	}

	if _, err := Chart(series, cfg); err != nil {
		t.Fatalf("Chart comparison: %v", err)
	}
}

func TestChartRejectsEmptyInput(t *testing.T) {
	if _, err := Chart(nil, testConfig()); err == nil {
		t.Fatal("expected error for empty series list")
	}
}

func TestChartRejectsBadColor(t *testing.T) {
	sp := testSeries("LIG-1")
	sp.MeanColor = "darkred"
	if _, err := Chart([]SeriesPlot{sp}, testConfig()); err == nil {
		t.Fatal("expected error for invalid color")
	}
}

func TestWritePNG(t *testing.T) {
	p, err := Chart([]SeriesPlot{testSeries("LIG-1")}, testConfig())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, p, SingleWidthIn, SingleHeightIn, 300); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	// PNG magic bytes.
	sig := []byte{0x89, 'P', 'N', 'G'}
	if buf.Len() < len(sig) || !bytes.Equal(buf.Bytes()[:4], sig) {
		t.Error("output is not a PNG")
	}
}
