// Package views defines the switchable chart views: which dataset each view
// reads, its stacking order, colors, axis bounds, and the summary text shown
// alongside the chart. Configs are built once from a loaded dataset and are
// immutable afterwards.
package views

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/stat"

	"github.com/dfmore/calviz/pkg/analysis"
	"github.com/dfmore/calviz/pkg/model"
)

// ID names a configured view.
type ID string

const (
	ViewCategories ID = "categories"
	ViewTags       ID = "tags"
	ViewCount      ID = "count"
)

// Stat is one value/label pair in the chart's summary strip.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Config describes everything a single view needs: the stack order
// (bottom to top), per-key colors and display labels, which dataset to read,
// the y-axis maximum, three summary stats, a legend title, and the narrative
// insight paragraphs (markdown).
type Config struct {
	ID          ID
	OrderedKeys []string
	Colors      map[string]color.RGBA
	Labels      map[string]string
	Dataset     string
	YMax        float64
	Stacked     bool
	Stats       [3]Stat
	LegendTitle string
	Insights    []string
}

// ColorOf returns the configured color for a key, falling back to a neutral
// gray for unknown keys so a rendering pass never fails on color lookup.
func (c *Config) ColorOf(key string) color.RGBA {
	if col, ok := c.Colors[key]; ok {
		return col
	}
	return color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
}

// LabelOf returns the display label for a key, or the key itself.
func (c *Config) LabelOf(key string) string {
	if l, ok := c.Labels[key]; ok {
		return l
	}
	return key
}

// Registry maps view IDs to their configurations.
type Registry struct {
	order   []ID
	configs map[ID]*Config
	def     ID
}

// Default returns the view shown before any switch.
func (r *Registry) Default() ID { return r.def }

// IDs returns the view identifiers in presentation order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the config for id.
func (r *Registry) Get(id ID) (*Config, bool) {
	cfg, ok := r.configs[id]
	return cfg, ok
}

// Category and tag palettes. Kept as RGBA so both the raster and SVG
// backends consume the same values.
var (
	colorGeneral  = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	colorCustomer = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	colorTraining = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
	colorPlanning = color.RGBA{0x8b, 0x5c, 0xf6, 0xff}
	colorOneOnOne = color.RGBA{0xec, 0x48, 0x99, 0xff}

	colorInformational = color.RGBA{0x60, 0xa5, 0xfa, 0xff}
	colorOnboarding    = color.RGBA{0x34, 0xd3, 0x99, 0xff}
	colorEBA           = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	colorAI            = color.RGBA{0xa7, 0x8b, 0xfa, 0xff}
	colorNonEBA        = color.RGBA{0xf8, 0x71, 0x71, 0xff}
	colorSales         = color.RGBA{0x2d, 0xd4, 0xbf, 0xff}
	colorSupport       = color.RGBA{0xf4, 0x72, 0xb6, 0xff}

	colorCountBar = color.RGBA{0x64, 0x74, 0x8b, 0xff}
)

// NewRegistry builds the three shipped views from the loaded collection.
// Summary stats are computed here once; configs never change afterwards.
func NewRegistry(data *model.Collection) *Registry {
	cats := &Config{
		ID:          ViewCategories,
		OrderedKeys: []string{"general", "customer", "training", "planning", "oneOnOne"},
		Colors: map[string]color.RGBA{
			"general":  colorGeneral,
			"customer": colorCustomer,
			"training": colorTraining,
			"planning": colorPlanning,
			"oneOnOne": colorOneOnOne,
		},
		Labels: map[string]string{
			"general":  "General Work",
			"customer": "Customer",
			"training": "Training",
			"planning": "Planning",
			"oneOnOne": "1:1s",
		},
		Dataset:     model.SelectorCategories,
		YMax:        100,
		Stacked:     true,
		LegendTitle: "Work Categories",
	}
	cats.Stats = hourStats(data.Dataset(cats.Dataset))
	cats.Insights = analysis.HourInsights(data.Dataset(cats.Dataset), cats.OrderedKeys, cats.Labels)

	tags := &Config{
		ID:          ViewTags,
		OrderedKeys: []string{"informational", "onboarding", "eba", "ai", "nonEba", "sales", "support"},
		Colors: map[string]color.RGBA{
			"informational": colorInformational,
			"onboarding":    colorOnboarding,
			"eba":           colorEBA,
			"ai":            colorAI,
			"nonEba":        colorNonEBA,
			"sales":         colorSales,
			"support":       colorSupport,
		},
		Labels: map[string]string{
			"informational": "Informational",
			"onboarding":    "Onboarding",
			"eba":           "EBA",
			"ai":            "AI",
			"nonEba":        "Non-EBA",
			"sales":         "Sales",
			"support":       "Support",
		},
		Dataset:     model.SelectorTags,
		YMax:        50,
		Stacked:     true,
		LegendTitle: "Responsibility Tags",
	}
	tags.Stats = hourStats(data.Dataset(tags.Dataset))
	tags.Insights = analysis.HourInsights(data.Dataset(tags.Dataset), tags.OrderedKeys, tags.Labels)

	count := &Config{
		ID:          ViewCount,
		OrderedKeys: nil, // simple bars keyed by month
		Colors:      map[string]color.RGBA{"count": colorCountBar},
		Labels:      map[string]string{"count": "Meetings"},
		Dataset:     model.SelectorCounts,
		YMax:        80,
		Stacked:     false,
		LegendTitle: "Meeting Count",
	}
	count.Stats = countStats(data.Dataset(count.Dataset))
	count.Insights = analysis.CountInsights(data.Dataset(count.Dataset))

	return &Registry{
		order: []ID{ViewCategories, ViewTags, ViewCount},
		configs: map[ID]*Config{
			ViewCategories: cats,
			ViewTags:       tags,
			ViewCount:      count,
		},
		def: ViewCategories,
	}
}

// hourStats derives the three summary pairs for an hour-based view:
// total hours, the peak month, and the monthly average.
func hourStats(ds *model.CalendarDataset) [3]Stat {
	if ds == nil || len(ds.Months) == 0 {
		return [3]Stat{}
	}
	totals := make([]float64, len(ds.Months))
	var sum float64
	peakIdx := 0
	for i, m := range ds.Months {
		t := m.Total()
		totals[i] = t
		sum += t
		if t > totals[peakIdx] {
			peakIdx = i
		}
	}
	return [3]Stat{
		{Value: fmt.Sprintf("%.0f", sum), Label: "Total Hours"},
		{Value: fmt.Sprintf("%.0f", totals[peakIdx]), Label: fmt.Sprintf("Peak (%s)", ds.Months[peakIdx].Month)},
		{Value: fmt.Sprintf("%.1f", stat.Mean(totals, nil)), Label: "Monthly Avg"},
	}
}

// countStats derives the summary pairs for the meeting-count view.
func countStats(ds *model.CalendarDataset) [3]Stat {
	if ds == nil || len(ds.Months) == 0 {
		return [3]Stat{}
	}
	counts := make([]float64, len(ds.Months))
	var sum int
	peakIdx := 0
	for i, m := range ds.Months {
		counts[i] = float64(m.Meetings)
		sum += m.Meetings
		if m.Meetings > ds.Months[peakIdx].Meetings {
			peakIdx = i
		}
	}
	return [3]Stat{
		{Value: fmt.Sprintf("%d", sum), Label: "Total Meetings"},
		{Value: fmt.Sprintf("%d", ds.Months[peakIdx].Meetings), Label: fmt.Sprintf("Peak (%s)", ds.Months[peakIdx].Month)},
		{Value: fmt.Sprintf("%.1f", stat.Mean(counts, nil)), Label: "Monthly Avg"},
	}
}
