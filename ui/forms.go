package ui

import (
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"gbsaview/app"
	"gbsaview/domain/stats"
	"gbsaview/internal/errors"
	"gbsaview/internal/session"

	"github.com/gin-gonic/gin"
)

// plotForm holds the request-scoped values that are not display settings.
type plotForm struct {
	durationNs float64
}

// parsePlotForm validates the submitted form and applies the display fields
// to the session settings. Settings are only mutated after every field has
// validated, so a rejected form leaves the session untouched.
func parsePlotForm(c *gin.Context, cfg *session.Settings) (*plotForm, error) {
	duration, err := parseFloatField(c, "duration", 100)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, errors.InvalidInput("simulation duration must be a positive number of nanoseconds")
	}

	window, err := parseIntField(c, "window", cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	if window < 1 || window > 50 {
		return nil, errors.InvalidInput("running mean window must be between 1 and 50")
	}

	frameAlpha, err := parseFloatField(c, "frame_alpha", cfg.FrameAlpha)
	if err != nil {
		return nil, err
	}
	errorAlpha, err := parseFloatField(c, "error_alpha", cfg.ErrorAlpha)
	if err != nil {
		return nil, err
	}
	if frameAlpha < 0 || frameAlpha > 1 || errorAlpha < 0 || errorAlpha > 1 {
		return nil, errors.InvalidInput("opacity values must be between 0 and 1")
	}

	meanWidth, err := parseFloatField(c, "mean_width", cfg.MeanWidth)
	if err != nil {
		return nil, err
	}
	if meanWidth <= 0 || meanWidth > 10 {
		return nil, errors.InvalidInput("running mean line width must be between 0 and 10")
	}

	frameColor := formOrDefault(c, "frame_color", cfg.FrameColor)
	meanColor := formOrDefault(c, "mean_color", cfg.MeanColor)
	if !session.ValidHexColor(frameColor) || !session.ValidHexColor(meanColor) {
		return nil, errors.InvalidInput("colors must be #RRGGBB hex values")
	}

	frameStyle := formOrDefault(c, "frame_style", string(cfg.FrameStyle))
	meanStyle := formOrDefault(c, "mean_style", string(cfg.MeanStyle))
	if !session.ValidLineStyle(frameStyle) || !session.ValidLineStyle(meanStyle) {
		return nil, errors.InvalidInput("unknown line style")
	}

	legendPos := formOrDefault(c, "legend_pos", string(cfg.LegendPosition))
	if !session.ValidLegendPosition(legendPos) {
		return nil, errors.InvalidInput("unknown legend position")
	}

	errorType := formOrDefault(c, "error_type", string(cfg.ErrorType))
	if !stats.ValidBandMethod(errorType) {
		return nil, errors.InvalidInput("unknown error bar type")
	}

	maxSeries, err := parseIntField(c, "max_ligands", cfg.MaxSeries)
	if err != nil {
		return nil, err
	}
	comparison := checkbox(c, "comparison_mode")
	if comparison && (maxSeries < 2 || maxSeries > 6) {
		return nil, errors.InvalidInput("maximum ligand count must be between 2 and 6")
	}

	overrides, err := parseSeriesOverrides(c)
	if err != nil {
		return nil, err
	}

	cfg.WindowSize = window
	cfg.ShowFrames = checkbox(c, "show_frames")
	cfg.ShowRunningMean = checkbox(c, "show_mean")
	cfg.ShowErrorBars = checkbox(c, "error_bars")
	cfg.ErrorType = stats.BandMethod(errorType)
	cfg.ErrorAlpha = errorAlpha
	cfg.FrameColor = frameColor
	cfg.FrameAlpha = frameAlpha
	cfg.FrameStyle = session.LineStyle(frameStyle)
	cfg.MeanColor = meanColor
	cfg.MeanWidth = meanWidth
	cfg.MeanStyle = session.LineStyle(meanStyle)
	cfg.ComparisonMode = comparison
	cfg.MaxSeries = maxSeries
	cfg.PlotTitle = strings.TrimSpace(c.DefaultPostForm("plot_title", cfg.PlotTitle))
	cfg.XLabel = formOrDefault(c, "x_label", cfg.XLabel)
	cfg.YLabel = formOrDefault(c, "y_label", cfg.YLabel)
	cfg.LegendPosition = session.LegendPosition(legendPos)
	applySeriesOverrides(cfg, overrides)

	return &plotForm{durationNs: duration}, nil
}

// seriesOverride is one validated per-ligand settings panel.
type seriesOverride struct {
	label      string
	color      string
	frameStyle session.LineStyle
	meanStyle  session.LineStyle
	showFrames bool
}

// parseSeriesOverrides reads comparison-mode per-ligand fields. Field names
// carry the ligand label after a fixed prefix, e.g. "series_color_LIG-1";
// the color input marks which ligand panels were submitted.
func parseSeriesOverrides(c *gin.Context) ([]seriesOverride, error) {
	if c.Request.PostForm == nil {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return nil, nil
		}
	}
	var overrides []seriesOverride
	for key, values := range c.Request.PostForm {
		label, ok := strings.CutPrefix(key, "series_color_")
		if !ok || len(values) == 0 {
			continue
		}
		color := strings.TrimSpace(values[0])
		if !session.ValidHexColor(color) {
			return nil, errors.InvalidInput(fmt.Sprintf("color for %s must be a #RRGGBB hex value", label))
		}
		frameStyle := formOrDefault(c, "series_frame_style_"+label, string(session.StyleSolid))
		meanStyle := formOrDefault(c, "series_mean_style_"+label, string(session.StyleSolid))
		if !session.ValidLineStyle(frameStyle) || !session.ValidLineStyle(meanStyle) {
			return nil, errors.InvalidInput(fmt.Sprintf("unknown line style for %s", label))
		}
		overrides = append(overrides, seriesOverride{
			label:      label,
			color:      color,
			frameStyle: session.LineStyle(frameStyle),
			meanStyle:  session.LineStyle(meanStyle),
			showFrames: c.PostForm("series_frames_"+label) != "",
		})
	}
	return overrides, nil
}

func applySeriesOverrides(cfg *session.Settings, overrides []seriesOverride) {
	for _, ov := range overrides {
		st := cfg.SeriesStyleFor(ov.label, 0)
		st.FrameColor = ov.color
		st.MeanColor = ov.color
		st.FrameStyle = ov.frameStyle
		st.MeanStyle = ov.meanStyle
		st.ShowFrames = ov.showFrames
	}
}

// collectUploads opens the submitted files, pre-filtering ones with an
// unsupported extension or an oversized body. Rejections are recorded, not
// fatal.
func (s *Server) collectUploads(c *gin.Context) ([]app.Upload, []app.FileError) {
	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("[collectUploads] FAILED - multipart parse: %v", err)
		return nil, nil
	}

	maxBytes := s.cfg.Upload.MaxFileSizeMB << 20

	var uploads []app.Upload
	var fileErrors []app.FileError
	for _, header := range form.File["datafiles"] {
		if !validExtension(header.Filename) {
			fileErrors = append(fileErrors, app.FileError{
				Filename: header.Filename,
				Err:      errors.FormatError("only .csv and .xlsx files are accepted"),
			})
			continue
		}
		if header.Size > maxBytes {
			fileErrors = append(fileErrors, app.FileError{
				Filename: header.Filename,
				Err: errors.InvalidInput(fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
					float64(header.Size)/(1024*1024), s.cfg.Upload.MaxFileSizeMB)),
			})
			continue
		}
		file, err := header.Open()
		if err != nil {
			fileErrors = append(fileErrors, app.FileError{Filename: header.Filename, Err: err})
			continue
		}
		uploads = append(uploads, app.Upload{Filename: header.Filename, Data: file})
	}
	return uploads, fileErrors
}

func closeUploads(uploads []app.Upload) {
	for _, up := range uploads {
		if closer, ok := up.Data.(multipart.File); ok {
			closer.Close()
		}
	}
}

// Legacy binary .xls is not accepted; excelize reads only the xml formats.
func validExtension(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx")
}

func checkbox(c *gin.Context, field string) bool {
	return c.PostForm(field) != ""
}

func formOrDefault(c *gin.Context, field, fallback string) string {
	if v := strings.TrimSpace(c.PostForm(field)); v != "" {
		return v
	}
	return fallback
}

func parseIntField(c *gin.Context, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("%s must be a whole number", field))
	}
	return v, nil
}

func parseFloatField(c *gin.Context, field string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("%s must be a number", field))
	}
	return v, nil
}
