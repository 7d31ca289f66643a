package render

import (
	"fmt"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/views"
)

// RasterSurface renders chart frames to a raster canvas via gg. The latest
// frame can be written out as a PNG.
type RasterSurface struct {
	width  int
	height int
	title  string

	yMax        float64
	stats       [3]views.Stat
	legendTitle string
	legend      []chart.LegendEntry
	insights    []string

	dc *gg.Context
}

// NewRaster builds a raster surface of the given pixel size.
func NewRaster(width, height int, title string) *RasterSurface {
	return &RasterSurface{width: width, height: height, title: title}
}

// Ready reports whether the surface can paint.
func (r *RasterSurface) Ready() bool { return r != nil && r.width > 0 && r.height > 0 }

// SetYMax sets the numeric-axis maximum used for gridline labels.
func (r *RasterSurface) SetYMax(max float64) { r.yMax = max }

func (r *RasterSurface) SetStats(stats [3]views.Stat) error {
	r.stats = stats
	return nil
}

func (r *RasterSurface) SetLegend(title string, entries []chart.LegendEntry) error {
	r.legendTitle = title
	r.legend = entries
	return nil
}

func (r *RasterSurface) SetInsights(lines []string) error {
	r.insights = lines
	return nil
}

// Frame paints the full primitive set onto a fresh context.
func (r *RasterSurface) Frame(prims []chart.Primitive) error {
	dc := gg.NewContext(r.width, r.height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	r.drawHeader(dc)
	r.drawAxis(dc)

	for _, p := range prims {
		if p.Geom.H <= 0 || p.Geom.Opacity <= 0 {
			continue
		}
		fill := p.Fill
		if p.Geom.Opacity < 1 {
			fill.A = uint8(float64(fill.A) * p.Geom.Opacity)
		}
		dc.SetColor(fill)
		dc.DrawRectangle(MarginLeft+p.Geom.X, MarginTop+p.Geom.Y, p.Geom.W, p.Geom.H)
		dc.Fill()
	}

	r.drawMonthLabels(dc, prims)
	r.drawLegend(dc)

	r.dc = dc
	return nil
}

// SavePNG writes the most recent frame to path.
func (r *RasterSurface) SavePNG(path string) error {
	if r.dc == nil {
		return fmt.Errorf("no frame rendered")
	}
	return r.dc.SavePNG(path)
}

func (r *RasterSurface) drawHeader(dc *gg.Context) {
	dc.SetColor(colorText)
	dc.DrawStringAnchored(r.title, MarginLeft, 24, 0, 0.5)

	parts := make([]string, 0, 3)
	for _, st := range r.stats {
		if st.Label == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", st.Label, st.Value))
	}
	if len(parts) > 0 {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(strings.Join(parts, "  -  "), MarginLeft, 48, 0, 0.5)
	}
}

func (r *RasterSurface) drawAxis(dc *gg.Context) {
	chartW, chartH := ChartArea(r.width, r.height)
	baseline := float64(MarginTop) + chartH

	dc.SetColor(colorStroke)
	dc.SetLineWidth(1)
	dc.DrawLine(MarginLeft, baseline, MarginLeft+chartW, baseline)
	dc.Stroke()

	if r.yMax <= 0 {
		return
	}
	for _, frac := range []float64{0.5, 1.0} {
		y := float64(MarginTop) + chartH*(1-frac)
		dc.SetColor(colorAxis)
		dc.DrawLine(MarginLeft, y, MarginLeft+chartW, y)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", r.yMax*frac), MarginLeft-8, y, 1, 0.5)
	}
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored("0", MarginLeft-8, baseline, 1, 0.5)
}

func (r *RasterSurface) drawMonthLabels(dc *gg.Context, prims []chart.Primitive) {
	_, chartH := ChartArea(r.width, r.height)
	y := float64(MarginTop) + chartH + 16
	seen := make(map[string]bool, len(prims))
	dc.SetColor(colorSubtle)
	for _, p := range prims {
		if seen[p.Month] {
			continue
		}
		seen[p.Month] = true
		dc.DrawStringAnchored(p.Month, MarginLeft+p.Geom.X+p.Geom.W/2, y, 0.5, 0.5)
	}
}

func (r *RasterSurface) drawLegend(dc *gg.Context) {
	if len(r.legend) == 0 {
		return
	}
	boxW := float64(MarginRight - 28)
	boxH := float64(24 + len(r.legend)*18)
	x := float64(r.width - MarginRight + 8)
	y := float64(MarginTop)

	dc.SetColor(colorLegendBG)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 8)
	dc.Fill()
	dc.SetColor(colorStroke)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 8)
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(r.legendTitle, x+12, y+14, 0, 0.5)
	for i, e := range r.legend {
		ry := y + 28 + float64(i)*18
		dc.SetColor(e.Color)
		dc.DrawRoundedRectangle(x+12, ry-9, 12, 12, 2)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.DrawRoundedRectangle(x+12, ry-9, 12, 12, 2)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(e.Label, x+30, ry-3, 0, 0.5)
	}
}
