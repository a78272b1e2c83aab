package ui

import (
	"encoding/base64"
	"log"
	"net/http"

	"gbsaview/app"
	"gbsaview/domain/stats"
	"gbsaview/internal/errors"
	"gbsaview/internal/session"

	"github.com/gin-gonic/gin"
)

// viewData is the template payload for the index page.
type viewData struct {
	Settings *session.Settings
	Error    string

	HasPlot    bool
	PlotB64    string
	Report     string
	Warnings   []string
	FileErrors []string
	Comparison bool

	// Per-ligand styling controls, shown after a comparison render.
	SeriesControls []seriesControl

	LegendPositions []session.LegendPosition
	LineStyles      []session.LineStyle
	BandMethods     []stats.BandMethod
}

var legendPositions = []session.LegendPosition{
	session.LegendBest, session.LegendUpperRight, session.LegendUpperLeft,
	session.LegendLowerLeft, session.LegendLowerRight, session.LegendCenterLeft,
	session.LegendCenterRight, session.LegendLowerCenter, session.LegendUpperCenter,
	session.LegendCenter,
}

var lineStyles = []session.LineStyle{
	session.StyleSolid, session.StyleDashed, session.StyleDotted, session.StyleDashDot,
}

var bandMethods = []stats.BandMethod{
	stats.BandStandardError, stats.BandStandardDeviation, stats.BandConfidence95,
}

func (s *Server) newViewData(cfg *session.Settings) *viewData {
	return &viewData{
		Settings:        cfg,
		LegendPositions: legendPositions,
		LineStyles:      lineStyles,
		BandMethods:     bandMethods,
	}
}

// seriesControl pairs a rendered ligand with its current style overrides for
// the per-ligand settings panel.
type seriesControl struct {
	Label string
	Style *session.SeriesStyle
}

func (s *Server) fillResult(data *viewData, result *app.ViewResult) {
	if result == nil || len(result.PNG) == 0 {
		return
	}
	data.HasPlot = true
	data.PlotB64 = base64.StdEncoding.EncodeToString(result.PNG)
	data.Report = result.Report
	data.Warnings = result.Warnings
	data.Comparison = result.CSV != nil
	for _, fe := range result.FileErrors {
		data.FileErrors = append(data.FileErrors, fe.String())
	}
	if data.Comparison {
		for i, sr := range result.Series {
			label := sr.Trajectory.Label
			data.SeriesControls = append(data.SeriesControls, seriesControl{
				Label: label,
				Style: data.Settings.SeriesStyleFor(label, i),
			})
		}
	}
}

// handleIndex renders the main page with the session's current settings and,
// when present, its last rendered chart.
func (s *Server) handleIndex(c *gin.Context) {
	sid, cfg := s.settingsFor(c)
	data := s.newViewData(cfg)
	s.fillResult(data, s.cachedResult(sid))
	s.renderTemplate(c, http.StatusOK, data)
}

// handlePlot processes a form submission: applies the display settings,
// ingests the uploaded files, and renders the chart.
func (s *Server) handlePlot(c *gin.Context) {
	sid, cfg := s.settingsFor(c)

	form, err := parsePlotForm(c, cfg)
	if err != nil {
		log.Printf("[handlePlot] FAILED - form rejected: %v", err)
		data := s.newViewData(cfg)
		data.Error = err.Error()
		s.fillResult(data, s.cachedResult(sid))
		s.renderTemplate(c, http.StatusBadRequest, data)
		return
	}

	uploads, preErrors := s.collectUploads(c)
	defer closeUploads(uploads)

	result, err := s.service.Render(app.ViewRequest{
		Uploads:    uploads,
		DurationNs: form.durationNs,
		Settings:   cfg,
	})
	fileErrors := preErrors
	if result != nil {
		result.FileErrors = append(preErrors, result.FileErrors...)
		fileErrors = result.FileErrors
	}
	if err != nil {
		log.Printf("[handlePlot] FAILED - render: %v", err)
		data := s.newViewData(cfg)
		data.Error = err.Error()
		for _, fe := range fileErrors {
			data.FileErrors = append(data.FileErrors, fe.String())
		}
		s.renderTemplate(c, statusFor(err), data)
		return
	}

	s.cacheResult(sid, result)
	log.Printf("[handlePlot] Rendered %d series (%d bytes PNG)", len(result.Series), len(result.PNG))

	data := s.newViewData(cfg)
	s.fillResult(data, result)
	s.renderTemplate(c, http.StatusOK, data)
}

// handleSettingsReset restores the session's settings to the defaults. The
// last rendered chart is dropped with them.
func (s *Server) handleSettingsReset(c *gin.Context) {
	sid, _ := s.settingsFor(c)
	s.sessions.Reset(sid)
	s.cacheResult(sid, nil)
	log.Printf("[handleSettingsReset] Session %s reset", sid)
	c.Redirect(http.StatusSeeOther, "/")
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeFormatError, errors.CodeSchemaError:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
