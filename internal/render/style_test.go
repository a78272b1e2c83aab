package render

import (
	"image/color"
	"testing"

	"gonum.org/v1/plot/vg"

	"gbsaview/internal/session"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FFA500", 1.0)
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	want := color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}
	if c != want {
		t.Errorf("color = %+v, want %+v", c, want)
	}
}

func TestParseHexColorAlpha(t *testing.T) {
	c, err := ParseHexColor("#8B0000", 0.5)
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if c.A != 128 {
		t.Errorf("alpha byte = %d, want 128", c.A)
	}

	// Out-of-range alphas clamp.
	c, _ = ParseHexColor("#8B0000", 4.0)
	if c.A != 255 {
		t.Errorf("clamped alpha = %d, want 255", c.A)
	}
}

func TestParseHexColorRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "FFA500", "#FFF", "#GGHHII", "#FFA50000"} {
		if _, err := ParseHexColor(s, 1.0); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestDashPattern(t *testing.T) {
	if dashPattern(session.StyleSolid) != nil {
		t.Error("solid must have no dash pattern")
	}
	for _, style := range []session.LineStyle{session.StyleDashed, session.StyleDotted, session.StyleDashDot} {
		pattern := dashPattern(style)
		if len(pattern) == 0 {
			t.Errorf("style %s has empty pattern", style)
		}
		for _, l := range pattern {
			if l <= vg.Length(0) {
				t.Errorf("style %s has non-positive segment", style)
			}
		}
	}
}

func TestLegendAnchor(t *testing.T) {
	tests := []struct {
		pos  session.LegendPosition
		top  bool
		left bool
	}{
		{session.LegendBest, true, false},
		{session.LegendUpperRight, true, false},
		{session.LegendUpperLeft, true, true},
		{session.LegendLowerLeft, false, true},
		{session.LegendLowerRight, false, false},
		{session.LegendCenter, true, false},
	}
	for _, tt := range tests {
		top, left := legendAnchor(tt.pos)
		if top != tt.top || left != tt.left {
			t.Errorf("%s: anchor = (%v,%v), want (%v,%v)", tt.pos, top, left, tt.top, tt.left)
		}
	}
}
