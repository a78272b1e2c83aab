package render

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"gbsaview/internal/errors"
	"gbsaview/internal/session"
)

// ParseHexColor converts a #RRGGBB string and an opacity in [0,1] into an
// NRGBA color.
func ParseHexColor(s string, alpha float64) (color.NRGBA, error) {
	if !session.ValidHexColor(s) {
		return color.NRGBA{}, errors.InvalidInput("invalid hex color: " + s)
	}
	r, _ := strconv.ParseUint(s[1:3], 16, 8)
	g, _ := strconv.ParseUint(s[3:5], 16, 8)
	b, _ := strconv.ParseUint(s[5:7], 16, 8)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(alpha*255 + 0.5)}, nil
}

// dashPattern maps a line style onto a vg dash sequence. Solid lines have no
// pattern.
func dashPattern(style session.LineStyle) []vg.Length {
	switch style {
	case session.StyleDashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case session.StyleDotted:
		return []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	case session.StyleDashDot:
		return []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	default:
		return nil
	}
}

// legendAnchor maps the ten legend positions onto the plot legend's corner
// anchors. Center positions snap to the nearest corner; "best" anchors at
// the upper right.
func legendAnchor(pos session.LegendPosition) (top, left bool) {
	switch pos {
	case session.LegendUpperLeft, session.LegendCenterLeft:
		return true, true
	case session.LegendLowerLeft:
		return false, true
	case session.LegendLowerRight, session.LegendLowerCenter:
		return false, false
	default:
		// best, upper right, upper center, center right, center
		return true, false
	}
}

func applyLegend(p *plot.Plot, pos session.LegendPosition) {
	top, left := legendAnchor(pos)
	p.Legend.Top = top
	p.Legend.Left = left
	p.Legend.Padding = vg.Points(2)
}
