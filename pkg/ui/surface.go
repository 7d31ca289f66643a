package ui

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/views"
)

// barRune is the cell used for bar bodies.
const barRune = "█"

// CellSurface is a chart surface backed by a terminal cell grid. The chart
// engine works in cell units directly: one horizontal unit is one column,
// one vertical unit one row. Frame stores the current display list; the
// bubbletea view rasterizes it lazily on demand.
type CellSurface struct {
	mu     sync.Mutex
	cols   int
	rows   int
	yMax   float64
	prims  []chart.Primitive
	stats  [3]views.Stat
	legend []chart.LegendEntry
	title  string
	lines  []string
	active views.ID
}

// NewCellSurface creates a surface with the given grid size. A zero-size
// surface reports not ready; Resize makes it usable once the terminal
// dimensions are known.
func NewCellSurface(cols, rows int) *CellSurface {
	return &CellSurface{cols: cols, rows: rows}
}

// Ready reports whether the grid has a usable size.
func (s *CellSurface) Ready() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols > 0 && s.rows > 0
}

// Resize updates the grid dimensions.
func (s *CellSurface) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols, s.rows = cols, rows
}

// Size returns the current grid dimensions.
func (s *CellSurface) Size() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols, s.rows
}

// SetYMax records the axis maximum used for the y-axis gutter labels.
func (s *CellSurface) SetYMax(max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.yMax = max
}

// Frame replaces the display list.
func (s *CellSurface) Frame(prims []chart.Primitive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prims = prims
	return nil
}

// SetStats stores the stat strip values.
func (s *CellSurface) SetStats(stats [3]views.Stat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

// SetLegend stores the legend entries.
func (s *CellSurface) SetLegend(title string, entries []chart.LegendEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.legend = entries
	return nil
}

// SetInsights stores the insight lines.
func (s *CellSurface) SetInsights(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	return nil
}

// MarkActive records the active view for the tab strip.
func (s *CellSurface) MarkActive(id views.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
	return nil
}

// Stats returns the stored stat strip values.
func (s *CellSurface) Stats() [3]views.Stat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Legend returns the stored legend title and entries.
func (s *CellSurface) Legend() (string, []chart.LegendEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, s.legend
}

// Insights returns the stored insight lines.
func (s *CellSurface) Insights() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// YMax returns the current axis maximum.
func (s *CellSurface) YMax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yMax
}

// Active returns the view recorded by MarkActive.
func (s *CellSurface) Active() views.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Render rasterizes the display list into terminal lines. Month labels take
// the bottom row; a 5-column gutter on the left carries y-axis values.
func (s *CellSurface) Render(r *lipgloss.Renderer, theme Theme) string {
	s.mu.Lock()
	cols, rows := s.cols, s.rows
	prims := append([]chart.Primitive(nil), s.prims...)
	yMax := s.yMax
	s.mu.Unlock()

	const gutter = 5
	plotCols := cols - gutter
	plotRows := rows - 1
	if plotCols < 4 || plotRows < 2 {
		return ""
	}

	// color per cell, "" meaning empty
	grid := make([][]string, plotRows)
	for y := range grid {
		grid[y] = make([]string, plotCols)
	}
	monthAt := map[int]string{} // column -> month label

	for _, p := range prims {
		if p.Geom.Opacity <= 0 || p.Geom.H <= 0 {
			continue
		}
		x0 := int(math.Round(p.Geom.X))
		x1 := int(math.Round(p.Geom.X + p.Geom.W))
		y0 := int(math.Round(p.Geom.Y))
		y1 := int(math.Round(p.Geom.Y + p.Geom.H))
		hex := HexOf(p.Fill)
		for x := x0; x < x1 && x < plotCols; x++ {
			if x < 0 {
				continue
			}
			for y := y0; y < y1 && y < plotRows; y++ {
				if y >= 0 {
					grid[y][x] = hex
				}
			}
		}
		if p.Month != "" {
			monthAt[(x0+x1)/2] = p.Month
		}
	}

	var b strings.Builder
	for y := 0; y < plotRows; y++ {
		b.WriteString(s.axisLabel(theme, y, plotRows, yMax, gutter))
		x := 0
		for x < plotCols {
			hex := grid[y][x]
			run := 1
			for x+run < plotCols && grid[y][x+run] == hex {
				run++
			}
			if hex == "" {
				b.WriteString(strings.Repeat(" ", run))
			} else {
				b.WriteString(r.NewStyle().Foreground(ThemeFg(hex)).Render(strings.Repeat(barRune, run)))
			}
			x += run
		}
		b.WriteString("\n")
	}

	// month label row
	labels := make([]rune, plotCols)
	for i := range labels {
		labels[i] = ' '
	}
	for col, month := range monthAt {
		start := col - len(month)/2
		for i, ch := range month {
			if pos := start + i; pos >= 0 && pos < plotCols {
				labels[pos] = ch
			}
		}
	}
	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(theme.AxisLabel.Render(string(labels)))

	return b.String()
}

// axisLabel renders the gutter for one row: the max at the top, the midpoint
// halfway down, zero on the last plotted row.
func (s *CellSurface) axisLabel(theme Theme, y, plotRows int, yMax float64, gutter int) string {
	var v float64
	switch y {
	case 0:
		v = yMax
	case plotRows / 2:
		v = yMax / 2
	case plotRows - 1:
		v = 0
	default:
		return strings.Repeat(" ", gutter)
	}
	label := strings.TrimSuffix(strings.TrimSuffix(
		strconv.FormatFloat(v, 'f', 1, 64), "0"), ".")
	if len(label) > gutter-1 {
		label = label[:gutter-1]
	}
	return theme.AxisLabel.Render(padLeft(label, gutter-1)) + " "
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
