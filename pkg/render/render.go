// Package render provides the concrete rendering surfaces for the chart
// engine: an SVG backend on ajstarks/svgo and a raster backend on
// sbinet/gg. Both implement chart.Surface and chart.TextPanel, so the
// controller can paint frames and text panels through either without knowing
// which it has.
package render

import (
	"fmt"
	"image/color"
)

// Margins around the chart plot area. The right margin hosts the legend box,
// the top margin the title and summary strip, the bottom the month labels.
const (
	MarginLeft   = 52
	MarginRight  = 208
	MarginTop    = 76
	MarginBottom = 44
)

// ChartArea returns the plot-area size for a given canvas size. Controller
// options should use these values so primitive geometry lands inside the
// margins.
func ChartArea(width, height int) (w, h float64) {
	return float64(width - MarginLeft - MarginRight), float64(height - MarginTop - MarginBottom)
}

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorAxis     = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colorLegendBG = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
