package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/views"
)

// SVGSurface renders chart frames as self-contained SVG documents. Each
// Frame call re-renders the whole document into an internal buffer; Flush
// writes the most recent frame to the underlying writer.
type SVGSurface struct {
	w      io.Writer
	width  int
	height int
	title  string

	yMax        float64
	stats       [3]views.Stat
	legendTitle string
	legend      []chart.LegendEntry
	insights    []string

	buf bytes.Buffer
}

// NewSVG builds an SVG surface writing to w.
func NewSVG(w io.Writer, width, height int, title string) *SVGSurface {
	return &SVGSurface{w: w, width: width, height: height, title: title}
}

// Ready reports whether the surface has somewhere to write.
func (s *SVGSurface) Ready() bool { return s != nil && s.w != nil }

// SetYMax sets the numeric-axis maximum used for gridline labels.
func (s *SVGSurface) SetYMax(max float64) { s.yMax = max }

// SetStats stores the summary strip values.
func (s *SVGSurface) SetStats(stats [3]views.Stat) error {
	s.stats = stats
	return nil
}

// SetLegend stores the legend rows.
func (s *SVGSurface) SetLegend(title string, entries []chart.LegendEntry) error {
	s.legendTitle = title
	s.legend = entries
	return nil
}

// SetInsights stores the insight paragraphs. Static SVG output has no
// insight container; the text is kept for callers that embed the document.
func (s *SVGSurface) SetInsights(lines []string) error {
	s.insights = lines
	return nil
}

// Frame renders the full document for the given primitive set.
func (s *SVGSurface) Frame(prims []chart.Primitive) error {
	s.buf.Reset()
	canvas := svg.New(&s.buf)
	canvas.Start(s.width, s.height)
	canvas.Rect(0, 0, s.width, s.height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	s.drawHeader(canvas)
	s.drawAxis(canvas)

	for _, p := range prims {
		if p.Geom.H <= 0 || p.Geom.Opacity <= 0 {
			continue
		}
		canvas.Rect(
			MarginLeft+int(p.Geom.X), MarginTop+int(p.Geom.Y),
			int(p.Geom.W), int(p.Geom.H),
			fmt.Sprintf("fill:%s;fill-opacity:%.2f", css(p.Fill), p.Geom.Opacity),
		)
	}

	s.drawMonthLabels(canvas, prims)
	s.drawLegend(canvas)

	canvas.End()
	return nil
}

// Flush writes the last rendered frame to the underlying writer.
func (s *SVGSurface) Flush() error {
	_, err := s.w.Write(s.buf.Bytes())
	return err
}

// Bytes returns the last rendered frame.
func (s *SVGSurface) Bytes() []byte { return s.buf.Bytes() }

func (s *SVGSurface) drawHeader(canvas *svg.SVG) {
	canvas.Text(MarginLeft, 28, s.title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))

	parts := make([]string, 0, 3)
	for _, st := range s.stats {
		if st.Label == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", st.Label, st.Value))
	}
	if len(parts) > 0 {
		canvas.Text(MarginLeft, 50, strings.Join(parts, "  ·  "),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	}
}

func (s *SVGSurface) drawAxis(canvas *svg.SVG) {
	chartW, chartH := ChartArea(s.width, s.height)
	baseline := MarginTop + int(chartH)
	canvas.Line(MarginLeft, baseline, MarginLeft+int(chartW), baseline,
		fmt.Sprintf("stroke:%s;stroke-width:1", css(colorStroke)))

	if s.yMax <= 0 {
		return
	}
	// Gridlines at 0, half and max.
	for _, frac := range []float64{0.5, 1.0} {
		y := MarginTop + int(chartH*(1-frac))
		canvas.Line(MarginLeft, y, MarginLeft+int(chartW), y,
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:4 3", css(colorAxis)))
		canvas.Text(MarginLeft-8, y+4, fmt.Sprintf("%.0f", s.yMax*frac),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:end", css(colorSubtle)))
	}
	canvas.Text(MarginLeft-8, baseline+4, "0",
		fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:end", css(colorSubtle)))
}

func (s *SVGSurface) drawMonthLabels(canvas *svg.SVG, prims []chart.Primitive) {
	_, chartH := ChartArea(s.width, s.height)
	y := MarginTop + int(chartH) + 18
	seen := make(map[string]bool, len(prims))
	for _, p := range prims {
		if seen[p.Month] {
			continue
		}
		seen[p.Month] = true
		cx := MarginLeft + int(p.Geom.X+p.Geom.W/2)
		canvas.Text(cx, y, p.Month,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
	}
}

func (s *SVGSurface) drawLegend(canvas *svg.SVG) {
	if len(s.legend) == 0 {
		return
	}
	boxW := MarginRight - 28
	boxH := 24 + len(s.legend)*18
	x := s.width - MarginRight + 8
	y := MarginTop
	canvas.Roundrect(x, y, boxW, boxH, 8, 8,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorLegendBG), css(colorStroke)))
	canvas.Text(x+12, y+17, s.legendTitle,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:bold", css(colorText)))
	for i, e := range s.legend {
		ry := y + 28 + i*18
		canvas.Roundrect(x+12, ry-9, 12, 12, 2, 2,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(e.Color), css(colorStroke)))
		canvas.Text(x+30, ry, e.Label,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
	}
}
