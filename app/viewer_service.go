package app

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"gbsaview/adapters/tabular"
	"gbsaview/domain/stats"
	"gbsaview/domain/trajectory"
	"gbsaview/internal/errors"
	"gbsaview/internal/export"
	"gbsaview/internal/render"
	"gbsaview/internal/session"
)

// Upload is one file submitted through the form.
type Upload struct {
	Filename string
	Data     io.Reader
}

// ViewRequest carries everything one interaction needs: the uploads, the
// simulated duration, and the session's display settings. Settings are
// mutated only by the auto-title heuristic.
type ViewRequest struct {
	Uploads    []Upload
	DurationNs float64
	Settings   *session.Settings
}

// SeriesResult is one successfully processed trajectory with its statistics.
type SeriesResult struct {
	Trajectory *trajectory.Trajectory
	Summary    stats.Summary
	Running    []float64
	Band       *stats.Band
}

// FileError records why one upload was skipped. Skips are never fatal to the
// interaction.
type FileError struct {
	Filename string
	Err      error
}

func (fe FileError) String() string {
	return fmt.Sprintf("%s: %v", fe.Filename, fe.Err)
}

// ViewResult is the full output of one interaction: the rendered chart, the
// exports, and any per-file errors and warnings.
type ViewResult struct {
	Series     []SeriesResult
	PNG        []byte
	Report     string
	CSV        []byte
	Workbook   []byte
	PNGName    string
	TXTName    string
	Warnings   []string
	FileErrors []FileError
}

// ViewerService runs the ingest → stats → render → export pipeline. It holds
// no state between interactions; every call recomputes from its inputs.
type ViewerService struct {
	reader *tabular.Reader
	dpi    int
}

// NewViewerService creates the pipeline service.
func NewViewerService(reader *tabular.Reader, dpi int) *ViewerService {
	return &ViewerService{reader: reader, dpi: dpi}
}

// Render processes one interaction. Individual bad files are skipped and
// reported; the call fails only when the inputs are invalid or no series
// survives filtering.
func (s *ViewerService) Render(req ViewRequest) (*ViewResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cfg := req.Settings

	result := &ViewResult{}
	uploads := req.Uploads

	if cfg.ComparisonMode {
		if len(uploads) > cfg.MaxSeries {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Maximum %d ligands allowed. Only the first %d files will be used.",
				cfg.MaxSeries, cfg.MaxSeries))
			uploads = uploads[:cfg.MaxSeries]
		}
	} else if len(uploads) > 1 {
		result.Warnings = append(result.Warnings,
			"Comparison mode is off. Only the first file will be used.")
		uploads = uploads[:1]
	}

	for i, up := range uploads {
		sr, err := s.processUpload(up, i+1, cfg)
		if err != nil {
			log.Printf("[viewer] skipping %s: %v", up.Filename, err)
			result.FileErrors = append(result.FileErrors, FileError{Filename: up.Filename, Err: err})
			continue
		}
		result.Series = append(result.Series, *sr)
	}

	if len(result.Series) == 0 {
		return result, errors.InvalidInput("no valid data to plot; check your input files")
	}

	if !cfg.ComparisonMode {
		cfg.AutoTitle(result.Series[0].Trajectory.Label)
	}

	if err := s.renderChart(result, req); err != nil {
		return result, err
	}
	if err := buildExports(result, cfg); err != nil {
		return result, err
	}
	return result, nil
}

func validateRequest(req ViewRequest) error {
	if req.Settings == nil {
		return errors.InvalidInput("missing display settings")
	}
	if len(req.Uploads) == 0 {
		return errors.InvalidInput("upload at least one file")
	}
	if req.DurationNs <= 0 {
		return errors.InvalidInput("total MD time must be positive")
	}
	if w := req.Settings.WindowSize; w < 1 || w > 50 {
		return errors.InvalidInput("window size must be between 1 and 50")
	}
	if req.Settings.ComparisonMode {
		if m := req.Settings.MaxSeries; m < 2 || m > 6 {
			return errors.InvalidInput("maximum ligand count must be between 2 and 6")
		}
	}
	return nil
}

func (s *ViewerService) processUpload(up Upload, position int, cfg *session.Settings) (*SeriesResult, error) {
	table, err := s.reader.Read(up.Data, up.Filename)
	if err != nil {
		return nil, err
	}
	traj, err := tabular.ExtractTrajectory(table, position)
	if err != nil {
		return nil, err
	}

	summary, err := stats.Summarize(traj.Samples)
	if err != nil {
		return nil, err
	}
	running, err := stats.RunningMean(traj.Samples, cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	sr := &SeriesResult{Trajectory: traj, Summary: summary, Running: running}
	if cfg.ShowErrorBars {
		band, err := stats.ErrorBand(traj.Samples, cfg.WindowSize, cfg.ErrorType)
		if err != nil {
			return nil, err
		}
		sr.Band = band
	}
	return sr, nil
}

func (s *ViewerService) renderChart(result *ViewResult, req ViewRequest) error {
	cfg := req.Settings

	plots := make([]render.SeriesPlot, 0, len(result.Series))
	for i, sr := range result.Series {
		plots = append(plots, seriesPlot(sr, i, req.DurationNs, cfg))
	}

	chartCfg := render.ChartConfig{
		Title:          titleOrDefault(cfg.PlotTitle),
		XLabel:         cfg.XLabel,
		YLabel:         cfg.YLabel,
		LegendPosition: cfg.LegendPosition,
		// The mean toggle gates the error bar overlay, never the line itself.
		ShowErrorBars: cfg.ShowErrorBars && cfg.ShowRunningMean,
		ErrorAlpha:    cfg.ErrorAlpha,
		WindowSize:    cfg.WindowSize,
		Comparison:    cfg.ComparisonMode,
	}

	p, err := render.Chart(plots, chartCfg)
	if err != nil {
		return errors.Wrap(err, "chart rendering failed")
	}

	width, height := float64(render.SingleWidthIn), float64(render.SingleHeightIn)
	if cfg.ComparisonMode {
		width, height = float64(render.ComparisonWidthIn), float64(render.ComparisonHeightIn)
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, p, width, height, s.dpi); err != nil {
		return err
	}
	result.PNG = buf.Bytes()
	return nil
}

// seriesPlot resolves the effective style for one series: global settings in
// single mode, per-series overrides in comparison mode.
func seriesPlot(sr SeriesResult, index int, durationNs float64, cfg *session.Settings) render.SeriesPlot {
	sp := render.SeriesPlot{
		Label:      sr.Trajectory.Label,
		Time:       sr.Trajectory.TimeAxis(durationNs),
		Frames:     sr.Trajectory.Samples,
		Running:    sr.Running,
		Band:       sr.Band,
		ShowFrames: cfg.ShowFrames,
		FrameColor: cfg.FrameColor,
		FrameAlpha: cfg.FrameAlpha,
		FrameStyle: cfg.FrameStyle,
		MeanColor:  cfg.MeanColor,
		MeanWidth:  cfg.MeanWidth,
		MeanStyle:  cfg.MeanStyle,
	}
	if cfg.ComparisonMode {
		st := cfg.SeriesStyleFor(sr.Trajectory.Label, index)
		sp.ShowFrames = st.ShowFrames
		sp.FrameColor = st.FrameColor
		sp.FrameStyle = st.FrameStyle
		sp.MeanColor = st.MeanColor
		sp.MeanStyle = st.MeanStyle
	}
	return sp
}

func titleOrDefault(title string) string {
	if title == "" {
		return session.DefaultPlotTitle
	}
	return title
}

func buildExports(result *ViewResult, cfg *session.Settings) error {
	all := make([]export.SeriesStats, 0, len(result.Series))
	for _, sr := range result.Series {
		all = append(all, export.SeriesStats{Label: sr.Trajectory.Label, Summary: sr.Summary})
	}

	result.Report = export.TextReport(all, cfg)
	result.PNGName = export.PNGFileName(all[0].Label, cfg.ComparisonMode)
	result.TXTName = export.TXTFileName(all[0].Label, cfg.ComparisonMode)

	if cfg.ComparisonMode {
		csvData, err := export.ComparisonCSV(all)
		if err != nil {
			return err
		}
		result.CSV = csvData

		wb, err := export.ComparisonWorkbook(all)
		if err != nil {
			return err
		}
		result.Workbook = wb
	}
	return nil
}
