package app

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"gbsaview/adapters/tabular"
	"gbsaview/internal/session"
)

func makeCSV(label string, values ...float64) string {
	var b strings.Builder
	b.WriteString("title," + tabular.EnergyColumn + "\n")
	for _, v := range values {
		fmt.Fprintf(&b, "%s,%g\n", label, v)
	}
	return b.String()
}

func newService() *ViewerService {
	// Low DPI keeps the render step fast in tests.
	return NewViewerService(tabular.NewReader(), 72)
}

func singleRequest(csvData string) ViewRequest {
	return ViewRequest{
		Uploads:    []Upload{{Filename: "thermal_MMGBSA.csv", Data: strings.NewReader(csvData)}},
		DurationNs: 100,
		Settings:   session.DefaultSettings(),
	}
}

func TestRenderSingleSeries(t *testing.T) {
	req := singleRequest(makeCSV("LIG-1", -50, -52, -48, -51, -49))
	result, err := newService().Render(req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(result.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(result.Series))
	}
	sr := result.Series[0]
	if sr.Trajectory.Label != "LIG-1" || sr.Summary.Frames != 5 {
		t.Errorf("series = %s/%d frames", sr.Trajectory.Label, sr.Summary.Frames)
	}
	if len(result.PNG) == 0 || !bytes.HasPrefix(result.PNG, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("missing PNG output")
	}
	if !strings.Contains(result.Report, "Ligand: LIG-1") {
		t.Errorf("report = %q", result.Report)
	}
	if result.PNGName != "LIG-1_dg_time.png" {
		t.Errorf("png name = %q", result.PNGName)
	}
	if result.CSV != nil || result.Workbook != nil {
		t.Error("single mode must not produce comparison tables")
	}
}

func TestRenderAutoTitlesFromLabel(t *testing.T) {
	req := singleRequest(makeCSV("LIG-9", -50, -51))
	if _, err := newService().Render(req); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := session.DefaultPlotTitle + " - LIG-9"
	if req.Settings.PlotTitle != want {
		t.Errorf("title = %q, want %q", req.Settings.PlotTitle, want)
	}
}

func TestRenderPreservesUserTitle(t *testing.T) {
	req := singleRequest(makeCSV("LIG-9", -50, -51))
	req.Settings.PlotTitle = "Custom study"
	if _, err := newService().Render(req); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if req.Settings.PlotTitle != "Custom study" {
		t.Errorf("user title clobbered: %q", req.Settings.PlotTitle)
	}
}

func TestRenderSkipsBadFilesAndContinues(t *testing.T) {
	settings := session.DefaultSettings()
	settings.ComparisonMode = true

	req := ViewRequest{
		Uploads: []Upload{
			{Filename: "good1.csv", Data: strings.NewReader(makeCSV("LIG-1", -50, -51, -49))},
			{Filename: "noenergy.csv", Data: strings.NewReader("title,other\nX,1\n")},
			{Filename: "good2.csv", Data: strings.NewReader(makeCSV("LIG-2", -47, -48, -46))},
		},
		DurationNs: 10,
		Settings:   settings,
	}

	result, err := newService().Render(req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(result.Series) != 2 {
		t.Fatalf("series = %d, want 2", len(result.Series))
	}
	if len(result.FileErrors) != 1 || result.FileErrors[0].Filename != "noenergy.csv" {
		t.Errorf("file errors = %v", result.FileErrors)
	}
	if result.CSV == nil || result.Workbook == nil {
		t.Error("comparison mode must produce CSV and workbook exports")
	}
}

func TestRenderTruncatesToMaxSeries(t *testing.T) {
	settings := session.DefaultSettings()
	settings.ComparisonMode = true
	settings.MaxSeries = 4

	var uploads []Upload
	for i := 1; i <= 5; i++ {
		uploads = append(uploads, Upload{
			Filename: fmt.Sprintf("lig%d.csv", i),
			Data:     strings.NewReader(makeCSV(fmt.Sprintf("LIG-%d", i), -50, -51, -49)),
		})
	}

	result, err := newService().Render(ViewRequest{Uploads: uploads, DurationNs: 10, Settings: settings})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(result.Series) != 4 {
		t.Errorf("series = %d, want 4", len(result.Series))
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one truncation warning", result.Warnings)
	}
}

func TestRenderFailsWhenNothingSurvives(t *testing.T) {
	req := singleRequest("title,other\nX,1\n")
	result, err := newService().Render(req)
	if err == nil {
		t.Fatal("expected error when no series survives")
	}
	if len(result.FileErrors) != 1 {
		t.Errorf("file errors = %v", result.FileErrors)
	}
}

func TestRenderValidation(t *testing.T) {
	base := makeCSV("LIG-1", -50, -51)

	req := singleRequest(base)
	req.DurationNs = 0
	if _, err := newService().Render(req); err == nil {
		t.Error("zero duration must be rejected")
	}

	req = singleRequest(base)
	req.Settings.WindowSize = 51
	if _, err := newService().Render(req); err == nil {
		t.Error("window over 50 must be rejected")
	}

	req = singleRequest(base)
	req.Uploads = nil
	if _, err := newService().Render(req); err == nil {
		t.Error("empty upload list must be rejected")
	}

	req = singleRequest(base)
	req.Settings.ComparisonMode = true
	req.Settings.MaxSeries = 7
	if _, err := newService().Render(req); err == nil {
		t.Error("max ligand count over 6 must be rejected")
	}
}

func TestRenderWithErrorBands(t *testing.T) {
	settings := session.DefaultSettings()
	settings.ShowErrorBars = true

	req := singleRequest(makeCSV("LIG-1", -50, -52, -48, -51, -49, -50.5))
	req.Settings = settings

	result, err := newService().Render(req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.Series[0].Band == nil {
		t.Error("error band missing")
	}
	if !strings.Contains(result.Report, "Error bars: Standard Error") {
		t.Errorf("report = %q", result.Report)
	}
}
