package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"gbsaview/domain/stats"
	"gbsaview/internal/errors"
	"gbsaview/internal/session"
)

// Canvas sizes in inches, single vs comparison mode.
const (
	SingleWidthIn      = 8
	SingleHeightIn     = 4
	ComparisonWidthIn  = 10
	ComparisonHeightIn = 6
)

// SeriesPlot bundles one trajectory's numeric slices with its resolved
// per-series styling. All slices share the series' time axis length.
type SeriesPlot struct {
	Label   string
	Time    []float64
	Frames  []float64
	Running []float64
	Band    *stats.Band

	ShowFrames bool
	FrameColor string
	FrameAlpha float64
	FrameStyle session.LineStyle
	MeanColor  string
	MeanWidth  float64
	MeanStyle  session.LineStyle
}

// ChartConfig carries the chart-wide display options.
type ChartConfig struct {
	Title          string
	XLabel         string
	YLabel         string
	LegendPosition session.LegendPosition
	ShowErrorBars  bool
	ErrorAlpha     float64
	WindowSize     int
	Comparison     bool
}

// Chart draws the given series onto a shared time axis and returns the
// figure. Inputs are not mutated.
func Chart(series []SeriesPlot, cfg ChartConfig) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.InvalidInput("no series to plot")
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel
	p.Add(plotter.NewGrid())
	applyLegend(p, cfg.LegendPosition)

	for _, sp := range series {
		if err := addSeries(p, sp, cfg); err != nil {
			return nil, errors.Wrapf(err, "series %s", sp.Label)
		}
	}
	return p, nil
}

func addSeries(p *plot.Plot, sp SeriesPlot, cfg ChartConfig) error {
	if sp.ShowFrames {
		frameColor, err := ParseHexColor(sp.FrameColor, sp.FrameAlpha)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(toXYs(sp.Time, sp.Frames))
		if err != nil {
			return err
		}
		line.LineStyle.Color = frameColor
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Dashes = dashPattern(sp.FrameStyle)
		p.Add(line)
		p.Legend.Add(frameLegendLabel(sp.Label, cfg.Comparison), line)
	}

	// The running-mean line is always drawn; the legend lists it even when
	// the per-frame line is hidden.
	meanColor, err := ParseHexColor(sp.MeanColor, 1.0)
	if err != nil {
		return err
	}
	mean, err := plotter.NewLine(toXYs(sp.Time, sp.Running))
	if err != nil {
		return err
	}
	mean.LineStyle.Color = meanColor
	mean.LineStyle.Width = vg.Points(sp.MeanWidth)
	mean.LineStyle.Dashes = dashPattern(sp.MeanStyle)
	p.Add(mean)
	p.Legend.Add(meanLegendLabel(sp.Label, cfg.WindowSize, cfg.Comparison), mean)

	if cfg.ShowErrorBars && sp.Band != nil {
		if err := addErrorBars(p, sp, cfg); err != nil {
			return err
		}
	}
	return nil
}

// addErrorBars overlays the band at every index where it is finite, as
// offsets from the running-mean line.
func addErrorBars(p *plot.Plot, sp SeriesPlot, cfg ChartConfig) error {
	pts := errPoints{}
	for i := range sp.Running {
		low := sp.Running[i] - sp.Band.Lower[i]
		high := sp.Band.Upper[i] - sp.Running[i]
		if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
			continue
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: sp.Time[i], Y: sp.Running[i]})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{math.Abs(low), math.Abs(high)})
	}
	if len(pts.XYs) == 0 {
		return nil
	}

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	barColor, err := ParseHexColor(sp.MeanColor, cfg.ErrorAlpha)
	if err != nil {
		return err
	}
	bars.LineStyle.Color = barColor
	bars.CapWidth = vg.Points(3)
	p.Add(bars)
	return nil
}

// errPoints satisfies both plotter.XYer and plotter.YErrorer.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func toXYs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(y))
	for i := range y {
		xys[i].X = x[i]
		xys[i].Y = y[i]
	}
	return xys
}

// Legend labels follow the single-series convention unless several series
// share the chart, in which case each entry is prefixed with its label.
func frameLegendLabel(label string, comparison bool) string {
	if comparison {
		return label + " / frame"
	}
	return "ΔGbind / frame"
}

func meanLegendLabel(label string, window int, comparison bool) string {
	if comparison {
		return fmt.Sprintf("%s (%d - running mean)", label, window)
	}
	return fmt.Sprintf("%d - running mean", window)
}

// WritePNG rasterizes the figure at the given canvas size and DPI.
func WritePNG(w io.Writer, p *plot.Plot, widthIn, heightIn float64, dpi int) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "png encoding failed")
	}
	return nil
}
