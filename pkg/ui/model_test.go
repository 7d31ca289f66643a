package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sizedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(model.SampleCollection())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.ctrl == nil {
		t.Fatal("resize should construct the chart controller")
	}
	if cmd == nil {
		t.Fatal("initial construct should schedule a frame tick")
	}
	return m
}

func TestModelConstructOnResize(t *testing.T) {
	m := sizedModel(t)

	if got := m.ctrl.CurrentView(); got != views.ViewCategories {
		t.Errorf("initial view = %q, want categories", got)
	}
	if !m.surface.Ready() {
		t.Error("surface should be sized after the window message")
	}
	out := m.View()
	if !strings.Contains(out, "Calendar Hours") {
		t.Error("view missing the header title")
	}
	if !strings.Contains(out, "Work Categories") {
		t.Error("view missing the legend panel")
	}
}

func TestModelTooSmall(t *testing.T) {
	m := NewModel(model.SampleCollection())
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(m.View(), "terminal too small") {
		t.Error("undersized terminal should show the size hint")
	}
}

func TestModelKeySwitchesViews(t *testing.T) {
	m := sizedModel(t)

	m.Update(keyRune('2'))
	if got := m.ctrl.CurrentView(); got != views.ViewTags {
		t.Errorf("after '2': view = %q, want tags", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.ctrl.CurrentView(); got != views.ViewCount {
		t.Errorf("after tab: view = %q, want count", got)
	}

	// Tab wraps back to the first view.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.ctrl.CurrentView(); got != views.ViewCategories {
		t.Errorf("after wrap: view = %q, want categories", got)
	}
}

func TestModelResizeKeepsView(t *testing.T) {
	m := sizedModel(t)
	m.Update(keyRune('3'))
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	if got := m.ctrl.CurrentView(); got != views.ViewCount {
		t.Errorf("resize dropped the active view: %q", got)
	}
}

func TestModelTickSettlesAnimation(t *testing.T) {
	m := sizedModel(t)

	// A tick far past every transition's end stops the frame loop.
	_, cmd := m.Update(tickMsg(time.Now().Add(time.Minute)))
	if m.animating {
		t.Error("animation should be settled after a late tick")
	}
	if cmd != nil {
		t.Error("no further tick should be scheduled once settled")
	}
}

func TestModelInsightsToggle(t *testing.T) {
	m := sizedModel(t)

	before := m.View()
	m.Update(keyRune('i'))
	after := m.View()
	if !m.showInsights {
		t.Error("'i' should enable the insights panel")
	}
	if !strings.Contains(after, "Insights") || strings.Contains(before, "Insights") {
		t.Error("insights panel should appear only after toggling")
	}

	m.Update(keyRune('i'))
	if m.showInsights {
		t.Error("'i' again should hide the insights panel")
	}
}

func TestModelQuit(t *testing.T) {
	m := sizedModel(t)
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("'q' should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' should quit")
	}
}

func TestModelReloadMessage(t *testing.T) {
	m := sizedModel(t)

	fresh := model.SampleCollection()
	m.Update(reloadedMsg{data: fresh})
	if m.data != fresh {
		t.Error("reloaded data should replace the collection")
	}
	if m.status != "data reloaded" {
		t.Errorf("status = %q", m.status)
	}

	m.Update(reloadedMsg{err: errTest})
	if !strings.Contains(m.status, "reload failed") {
		t.Errorf("status after failed reload = %q", m.status)
	}
}

func TestModelNextViewOnTinyTerminal(t *testing.T) {
	m := NewModel(model.SampleCollection())
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if m.ctrl != nil {
		t.Fatal("undersized terminal should leave the controller unbuilt")
	}

	// Cycling views before the controller exists must be a no-op.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil {
		t.Error("tab without a controller should not schedule anything")
	}
	if m.ctrl != nil {
		t.Error("tab should not construct a controller")
	}
}

func TestModelAxisMaxFollowsView(t *testing.T) {
	m := sizedModel(t)
	if got := m.surface.YMax(); got != 100 {
		t.Fatalf("initial axis max = %v, want 100", got)
	}

	m.Update(keyRune('2'))
	if got := m.surface.YMax(); got != 50 {
		t.Errorf("axis max after switching to tags = %v, want 50", got)
	}

	// A resize rebuilds the controller and restores the view; the axis
	// maximum has to come back with it.
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	if got := m.surface.YMax(); got != 50 {
		t.Errorf("axis max after resize = %v, want 50", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.surface.YMax(); got != 80 {
		t.Errorf("axis max after tab to count = %v, want 80", got)
	}
}

func TestModelSettingsReachChart(t *testing.T) {
	m := NewModel(model.SampleCollection())
	m.Settings = ChartSettings{Padding: 0.5, SwitchDuration: time.Hour}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(tickMsg(time.Now().Add(time.Minute)))

	// 120 columns leave a 78-cell band; half padding over 12 months
	// gives bars 3.25 cells wide instead of the default 5.2.
	m.surface.mu.Lock()
	var w float64
	for _, p := range m.surface.prims {
		if p.Geom.W > 0 {
			w = p.Geom.W
			break
		}
	}
	m.surface.mu.Unlock()
	if w < 3.2 || w > 3.3 {
		t.Errorf("bar width = %v, want 3.25 from configured padding", w)
	}

	m.Update(keyRune('2'))
	m.Update(tickMsg(time.Now().Add(time.Second)))
	if !m.animating {
		t.Error("hour-long switch duration should still be animating after a second")
	}
}

var errTest = errorString("boom")

type errorString string

func (e errorString) Error() string { return string(e) }
