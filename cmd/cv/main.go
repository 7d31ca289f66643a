package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dfmore/calviz/internal/datasource"
	"github.com/dfmore/calviz/pkg/config"
	"github.com/dfmore/calviz/pkg/debug"
	"github.com/dfmore/calviz/pkg/export"
	"github.com/dfmore/calviz/pkg/loader"
	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/ui"
	"github.com/dfmore/calviz/pkg/version"
	"github.com/dfmore/calviz/pkg/views"
	"github.com/dfmore/calviz/pkg/watcher"
)

func main() {
	dataPath := flag.String("data", "", "Calendar data file (.ics or .json); sample data when empty")
	viewFlag := flag.String("view", "", "View to open or export: categories, tags, count")
	exportPath := flag.String("export", "", "Write a static export to this path instead of opening the TUI")
	formatFlag := flag.String("format", "", "Export format: svg, png, html, all (inferred from extension when empty)")
	widthFlag := flag.Int("width", 0, "Export canvas width")
	heightFlag := flag.Int("height", 0, "Export canvas height")
	watchFlag := flag.Bool("watch", false, "Reload the TUI when the data file changes")
	noCache := flag.Bool("no-cache", false, "Skip the aggregation cache")
	saveJSON := flag.String("save-json", "", "Write the aggregated dataset to this JSON file and exit")
	debugFlag := flag.Bool("debug", false, "Log debug output to stderr (same as CV_DEBUG=1)")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: cv [options]")
		fmt.Println("\nAn animated stacked bar chart for calendar time analysis.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("cv %s\n", version.Version)
		os.Exit(0)
	}

	if *debugFlag {
		debug.SetEnabled(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *dataPath == "" {
		*dataPath = cfg.Data.Path
	}
	if *formatFlag == "" && *exportPath == "" {
		*formatFlag = cfg.Export.Format
	}
	width := *widthFlag
	if width == 0 {
		width = cfg.Chart.Width
	}
	height := *heightFlag
	if height == 0 {
		height = cfg.Chart.Height
	}

	data, err := loadData(*dataPath, cfg.Data.Owner, *noCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *saveJSON != "" {
		if err := loader.SaveJSON(*saveJSON, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *saveJSON)
		return
	}

	reg := views.NewRegistry(data)
	viewID, err := resolveView(reg, cfg, *viewFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *exportPath != "" {
		if err := runExport(*exportPath, *formatFlag, viewID, width, height, data, reg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -export for file output")
		os.Exit(1)
	}

	m := ui.NewModel(data)
	m.Settings = ui.ChartSettings{
		Padding:         cfg.Chart.Padding,
		InitialDuration: time.Duration(cfg.Chart.InitialMS) * time.Millisecond,
		SwitchDuration:  time.Duration(cfg.Chart.SwitchMS) * time.Millisecond,
		Stagger:         time.Duration(cfg.Chart.StaggerMS) * time.Millisecond,
	}
	if *dataPath != "" {
		path := *dataPath
		owner := cfg.Data.Owner
		m.Reload = func() (*model.Collection, error) {
			return loadData(path, owner, *noCache)
		}
		if *watchFlag || cfg.Data.Watch {
			w, err := watcher.New(path, watcher.WithDebounce(500*time.Millisecond))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
			} else if err := w.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
			} else {
				m.Watch = w
				defer w.Stop()
			}
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadData reads the collection, consulting the aggregation cache for ICS
// sources. An empty path yields the built-in sample dataset.
func loadData(path, owner string, noCache bool) (*model.Collection, error) {
	if path == "" {
		return model.SampleCollection(), nil
	}

	useCache := !noCache && filepath.Ext(path) == ".ics"
	var cache *datasource.Cache
	if useCache {
		if cachePath := config.CachePath(); cachePath != "" {
			var err error
			cache, err = datasource.Open(cachePath)
			if err != nil {
				debug.Log("open cache: %v", err)
			} else {
				defer cache.Close()
			}
		}
	}

	if cache != nil {
		if coll, err := cache.Get(path); err == nil {
			debug.Log("cache hit for %s", path)
			return coll, nil
		} else if !errors.Is(err, datasource.ErrCacheMiss) {
			debug.Log("cache read: %v", err)
		}
	}

	start := time.Now()
	coll, err := loader.Load(path, owner)
	if err != nil {
		return nil, err
	}
	debug.LogTiming("load "+filepath.Base(path), time.Since(start))

	if cache != nil {
		if err := cache.Put(path, coll); err != nil {
			debug.Log("cache write: %v", err)
		}
	}
	return coll, nil
}

func resolveView(reg *views.Registry, cfg config.Config, flagValue string) (views.ID, error) {
	name := flagValue
	if name == "" {
		name = cfg.Chart.DefaultView
	}
	if name == "" {
		return reg.Default(), nil
	}
	id := views.ID(name)
	if _, ok := reg.Get(id); !ok {
		return "", fmt.Errorf("unknown view %q (want categories, tags or count)", name)
	}
	return id, nil
}

func runExport(path, format string, view views.ID, width, height int, data *model.Collection, reg *views.Registry) error {
	if format == "" {
		format = formatFromExt(path)
	}
	switch format {
	case "html":
		if err := export.SaveHTML(path, data.Source, data, reg); err != nil {
			return err
		}
	case "all":
		if err := export.SaveAllSnapshots(path, "svg", data, reg); err != nil {
			return err
		}
	case "svg", "png":
		err := export.SaveSnapshot(export.SnapshotOptions{
			Path:     path,
			Format:   format,
			View:     view,
			Width:    width,
			Height:   height,
			Data:     data,
			Registry: reg,
		})
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q (want svg, png, html or all)", format)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func formatFromExt(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "png"
	case ".html", ".htm":
		return "html"
	case "":
		return "all" // a bare directory path exports every view
	default:
		return "svg"
	}
}
