package ui

import (
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/views"
)

// plainRenderer targets a non-terminal writer, so styles degrade to plain
// text and assertions can match on content.
func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

func TestCellSurfaceReady(t *testing.T) {
	var nilSurface *CellSurface
	if nilSurface.Ready() {
		t.Error("nil surface should not be ready")
	}
	s := NewCellSurface(0, 0)
	if s.Ready() {
		t.Error("zero-size surface should not be ready")
	}
	s.Resize(80, 24)
	if !s.Ready() {
		t.Error("sized surface should be ready")
	}
	if cols, rows := s.Size(); cols != 80 || rows != 24 {
		t.Errorf("Size = %dx%d, want 80x24", cols, rows)
	}
}

func TestCellSurfaceStoresPanels(t *testing.T) {
	s := NewCellSurface(80, 24)

	stats := [3]views.Stat{{Value: "825", Label: "Total Hours"}}
	if err := s.SetStats(stats); err != nil {
		t.Fatal(err)
	}
	if s.Stats() != stats {
		t.Error("stats not stored")
	}

	entries := []chart.LegendEntry{{Key: "general", Label: "General Work"}}
	if err := s.SetLegend("Work Categories", entries); err != nil {
		t.Fatal(err)
	}
	title, got := s.Legend()
	if title != "Work Categories" || len(got) != 1 || got[0].Key != "general" {
		t.Errorf("legend = %q/%v", title, got)
	}

	if err := s.SetInsights([]string{"line one"}); err != nil {
		t.Fatal(err)
	}
	if lines := s.Insights(); len(lines) != 1 || lines[0] != "line one" {
		t.Errorf("insights = %v", lines)
	}

	if err := s.MarkActive(views.ViewTags); err != nil {
		t.Fatal(err)
	}
	if s.Active() != views.ViewTags {
		t.Errorf("active = %q, want tags", s.Active())
	}
}

func TestCellSurfaceRender(t *testing.T) {
	s := NewCellSurface(40, 12)
	s.SetYMax(100)

	// One 4-column bar filling the bottom half of the 11-row plot.
	err := s.Frame([]chart.Primitive{{
		Key:   "categories/Jan/general",
		Month: "Jan",
		Fill:  color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		Geom:  chart.Geometry{X: 2, Y: 6, W: 4, H: 5, Opacity: 1},
	}})
	if err != nil {
		t.Fatal(err)
	}

	out := s.Render(plainRenderer(), DefaultTheme(plainRenderer()))
	if out == "" {
		t.Fatal("render produced no output")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("rendered %d lines, want 11 plot rows plus the label row", len(lines))
	}

	if !strings.Contains(lines[6], barRune) {
		t.Error("bar body missing from its top row")
	}
	if strings.Contains(lines[3], barRune) {
		t.Error("bar should not reach above its geometry")
	}
	if !strings.Contains(lines[len(lines)-1], "Jan") {
		t.Error("month label row missing Jan")
	}
	// Axis gutter labels: max on the first row, zero on the last plot row.
	if !strings.Contains(lines[0], "100") {
		t.Errorf("top row missing the axis max: %q", lines[0])
	}
	if !strings.Contains(lines[10], "0") {
		t.Errorf("baseline row missing the zero label: %q", lines[10])
	}
}

func TestCellSurfaceRenderSkipsInvisible(t *testing.T) {
	s := NewCellSurface(40, 12)
	s.SetYMax(100)
	err := s.Frame([]chart.Primitive{
		{Month: "Jan", Geom: chart.Geometry{X: 2, Y: 6, W: 4, H: 5, Opacity: 0}},
		{Month: "Feb", Geom: chart.Geometry{X: 10, Y: 6, W: 4, H: 0, Opacity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := s.Render(plainRenderer(), DefaultTheme(plainRenderer()))
	if strings.Contains(out, barRune) {
		t.Error("invisible primitives must not paint cells")
	}
}

func TestCellSurfaceRenderTooSmall(t *testing.T) {
	s := NewCellSurface(6, 2)
	if out := s.Render(plainRenderer(), DefaultTheme(plainRenderer())); out != "" {
		t.Errorf("undersized grid should render nothing, got %q", out)
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("80", 4); got != "  80" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padLeft("12345", 4); got != "12345" {
		t.Errorf("padLeft should not truncate, got %q", got)
	}
}
