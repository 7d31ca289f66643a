package chart

import (
	"errors"
	"image/color"

	"github.com/dfmore/calviz/pkg/views"
)

// Errors surfaced by the engine. ErrNoAnchor is returned by panel
// implementations when their target container is missing; the controller
// skips that one update and proceeds with the rest.
var (
	ErrSurfaceUnavailable = errors.New("rendering surface unavailable")
	ErrNoAnchor           = errors.New("anchor element not found")
	ErrUnknownView        = errors.New("unknown view")
)

// Surface is the injected rendering capability: something that can paint a
// frame of positioned, styled rectangles. Presence is queried once at
// construction; an absent surface aborts construction with a log line, never
// a panic.
type Surface interface {
	// Ready reports whether the surface can accept frames.
	Ready() bool
	// Frame paints the full current primitive set.
	Frame(prims []Primitive) error
}

// LegendEntry is one swatch/label pair in the legend panel.
type LegendEntry struct {
	Key   string
	Label string
	Color color.RGBA
}

// TextPanel receives the ancillary text updates that accompany a render:
// summary stats, legend entries, and insight paragraphs. Each method may
// return ErrNoAnchor when its container is missing; the updates are
// independent of one another.
type TextPanel interface {
	SetStats(stats [3]views.Stat) error
	SetLegend(title string, entries []LegendEntry) error
	SetInsights(lines []string) error
}

// ViewControls marks exactly one selector control active after a switch.
type ViewControls interface {
	MarkActive(id views.ID) error
}

// legendEntries expands a view config into its legend rows, in stack order.
func legendEntries(cfg *views.Config) []LegendEntry {
	keys := cfg.OrderedKeys
	if !cfg.Stacked {
		keys = []string{"count"}
	}
	entries := make([]LegendEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, LegendEntry{Key: k, Label: cfg.LabelOf(k), Color: cfg.ColorOf(k)})
	}
	return entries
}
