// Package export writes chart views to files: static SVG/PNG snapshots of a
// single view, and a self-contained interactive HTML page that carries every
// view plus the switcher, legend, stats and tooltip behavior.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/render"
	"github.com/dfmore/calviz/pkg/views"
)

// SnapshotOptions controls snapshot export behaviour.
type SnapshotOptions struct {
	Path   string   // output path; format inferred from extension when Format empty
	Format string   // "svg" or "png" (case-insensitive); inferred from Path if empty
	View   views.ID // view to render; registry default if empty
	Title  string   // rendered in the header block
	Width  int      // canvas width (default 960)
	Height int      // canvas height (default 440)

	Data     *model.Collection
	Registry *views.Registry
}

// SaveSnapshot renders one settled chart view to an SVG or PNG file.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Data == nil || opts.Registry == nil {
		return fmt.Errorf("dataset and view registry are required")
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Width == 0 {
		opts.Width = 960
	}
	if opts.Height == 0 {
		opts.Height = 440
	}
	if opts.View == "" {
		opts.View = opts.Registry.Default()
	}
	cfg, ok := opts.Registry.Get(opts.View)
	if !ok {
		return fmt.Errorf("%w: %q", chart.ErrUnknownView, opts.View)
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		case ".svg":
			format = "svg"
		default:
			format = "svg" // safe default
			if filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Calendar Hours — %s", opts.View)
	}

	switch format {
	case "png":
		surface := render.NewRaster(opts.Width, opts.Height, title)
		if err := renderView(surface, surface.SetYMax, cfg, opts); err != nil {
			return err
		}
		return surface.SavePNG(opts.Path)
	default:
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		surface := render.NewSVG(file, opts.Width, opts.Height, title)
		if err := renderView(surface, surface.SetYMax, cfg, opts); err != nil {
			return err
		}
		return surface.Flush()
	}
}

// snapshotSurface is what renderView needs from either backend.
type snapshotSurface interface {
	chart.Surface
	chart.TextPanel
}

// renderView drives a controller through construct, the switch to the target
// view, and a settle, leaving the final frame on the surface.
func renderView(surface snapshotSurface, setYMax func(float64), cfg *views.Config, opts SnapshotOptions) error {
	setYMax(cfg.YMax)
	w, h := render.ChartArea(opts.Width, opts.Height)
	ctrl := chart.New(opts.Registry, opts.Data, surface, chart.Options{
		Width:  w,
		Height: h,
		Panels: surface,
	})
	if err := ctrl.Construct(); err != nil {
		return err
	}
	if cfg.ID != ctrl.CurrentView() {
		if err := ctrl.SwitchView(cfg.ID); err != nil {
			return err
		}
	}
	ctrl.Settle()
	return nil
}

// SaveAllSnapshots writes one snapshot per configured view into dir, named
// <view>.<format>. Views render concurrently; the first failure wins.
func SaveAllSnapshots(dir, format string, data *model.Collection, reg *views.Registry) error {
	if format == "" {
		format = "svg"
	}
	var g errgroup.Group
	for _, id := range reg.IDs() {
		g.Go(func() error {
			return SaveSnapshot(SnapshotOptions{
				Path:     filepath.Join(dir, fmt.Sprintf("%s.%s", id, format)),
				Format:   format,
				View:     id,
				Data:     data,
				Registry: reg,
			})
		})
	}
	return g.Wait()
}
