package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
)

func testRegistry(t *testing.T) (*model.Collection, *views.Registry) {
	t.Helper()
	data := model.SampleCollection()
	return data, views.NewRegistry(data)
}

func TestSaveSnapshotSVG(t *testing.T) {
	data, reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "nested", "chart.svg")

	err := SaveSnapshot(SnapshotOptions{
		Path:     path,
		Title:    "Meeting Hours FY26",
		Data:     data,
		Registry: reg,
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := string(raw)
	for _, want := range []string{"<svg", "</svg>", "Meeting Hours FY26", ">Jan<", ">Jun<", "Work Categories"} {
		if !strings.Contains(doc, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
}

func TestSaveSnapshotPNG(t *testing.T) {
	data, reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "chart.png")

	err := SaveSnapshot(SnapshotOptions{
		Path:     path,
		View:     views.ViewCount,
		Data:     data,
		Registry: reg,
	})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png output is empty")
	}
}

func TestSaveSnapshotInfersExtension(t *testing.T) {
	data, reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "chart")

	err := SaveSnapshot(SnapshotOptions{Path: path, Data: data, Registry: reg})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(path + ".svg"); err != nil {
		t.Errorf("extensionless path should produce %s.svg: %v", filepath.Base(path), err)
	}
}

func TestSaveSnapshotErrors(t *testing.T) {
	data, reg := testRegistry(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		opts SnapshotOptions
	}{
		{"missing data", SnapshotOptions{Path: filepath.Join(dir, "a.svg"), Registry: reg}},
		{"missing registry", SnapshotOptions{Path: filepath.Join(dir, "a.svg"), Data: data}},
		{"missing path", SnapshotOptions{Data: data, Registry: reg}},
		{"unknown view", SnapshotOptions{Path: filepath.Join(dir, "a.svg"), View: "pie", Data: data, Registry: reg}},
		{"unsupported format", SnapshotOptions{Path: filepath.Join(dir, "a.bmp"), Format: "bmp", Data: data, Registry: reg}},
	}
	for _, tt := range tests {
		if err := SaveSnapshot(tt.opts); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestSaveAllSnapshots(t *testing.T) {
	data, reg := testRegistry(t)
	dir := filepath.Join(t.TempDir(), "out")

	if err := SaveAllSnapshots(dir, "svg", data, reg); err != nil {
		t.Fatalf("SaveAllSnapshots: %v", err)
	}
	for _, id := range reg.IDs() {
		path := filepath.Join(dir, string(id)+".svg")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing snapshot for %s: %v", id, err)
		}
	}
}

func TestSaveHTML(t *testing.T) {
	data, reg := testRegistry(t)
	path := filepath.Join(t.TempDir(), "report", "chart.html")

	if err := SaveHTML(path, "Meeting Hours FY26", data, reg); err != nil {
		t.Fatalf("SaveHTML: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := string(raw)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Meeting Hours FY26",
		"const VIEWS =",
		"const DEFAULT_VIEW =",
		`"id":"categories"`,
		`"id":"tags"`,
		`"id":"count"`,
		"General Work",
		"tooltip",
		"#3b82f6",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("html output missing %q", want)
		}
	}

	// The embedded dataset carries the per-month values the client renders.
	if !strings.Contains(doc, `"Jan/customer":14`) {
		t.Error("html output missing the embedded Jan customer value")
	}
}

func TestBuildHTMLViewCount(t *testing.T) {
	data, reg := testRegistry(t)
	cfg, _ := reg.Get(views.ViewCount)

	v := buildHTMLView(cfg, data)
	if v.Stacked {
		t.Error("count view must not be stacked")
	}
	if v.YMax != 80 {
		t.Errorf("count YMax = %v, want 80", v.YMax)
	}
	if got := v.Values["Jan/count"]; got != 64 {
		t.Errorf("Jan count = %v, want 64", got)
	}
	if got := v.Totals["Jan"]; got != 64 {
		t.Errorf("Jan total = %v, want the bare count 64", got)
	}
}
