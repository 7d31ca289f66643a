package chart

import (
	"image/color"

	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
)

// Primitive is one keyed chart rectangle. The key is stable across renders:
// "series/month" for stacked segments, the bare month label for simple bars.
type Primitive struct {
	Key    string
	Series string
	Month  string
	Index  int // month index, drives the initial-render stagger
	Geom   Geometry
	Fill   color.RGBA
	Meta   model.SegmentMeta
}

// Change pairs the old and new versions of a primitive that survives a
// render.
type Change[T any] struct {
	Old, New T
}

// Plan partitions two keyed collections into the entering, updating and
// exiting subsets. The three sets partition old ∪ new with no overlap.
type Plan[T any] struct {
	Enter  []T
	Update []Change[T]
	Exit   []T
}

// Diff computes the keyed enter/update/exit partition between two ordered
// collections. Enter and Update preserve new-collection order; Exit
// preserves old-collection order. Pure data in, pure data out: nothing here
// touches a rendering primitive.
func Diff[T any](old, new []T, key func(T) string) Plan[T] {
	oldByKey := make(map[string]T, len(old))
	for _, item := range old {
		oldByKey[key(item)] = item
	}
	newKeys := make(map[string]bool, len(new))

	var plan Plan[T]
	for _, item := range new {
		k := key(item)
		newKeys[k] = true
		if prev, ok := oldByKey[k]; ok {
			plan.Update = append(plan.Update, Change[T]{Old: prev, New: item})
		} else {
			plan.Enter = append(plan.Enter, item)
		}
	}
	for _, item := range old {
		if !newKeys[key(item)] {
			plan.Exit = append(plan.Exit, item)
		}
	}
	return plan
}

// BuildPrimitives computes the full primitive set for a view: stacked
// segments for stacked views, one bar per month otherwise. Geometry is in
// pixels via the supplied scales.
func BuildPrimitives(cfg *views.Config, ds *model.CalendarDataset, band BandScale, linear LinearScale) []Primitive {
	width := band.Bandwidth()
	monthIndex := make(map[string]int, len(ds.Months))
	for i, m := range ds.Months {
		monthIndex[m.Month] = i
	}

	if !cfg.Stacked {
		segs := CountSeries(ds)
		prims := make([]Primitive, 0, len(segs))
		for _, seg := range segs {
			x, ok := band.Pos(seg.Month)
			if !ok {
				continue
			}
			top := linear.Pos(seg.Y1)
			prims = append(prims, Primitive{
				Key:    seg.Month,
				Series: "count",
				Month:  seg.Month,
				Index:  monthIndex[seg.Month],
				Geom:   Geometry{X: x, Y: top, W: width, H: linear.Pos(seg.Y0) - top, Opacity: 1},
				Fill:   cfg.ColorOf("count"),
				Meta: model.SegmentMeta{
					Month:      seg.Month,
					Key:        "count",
					Label:      cfg.LabelOf("count"),
					Value:      seg.Y1 - seg.Y0,
					MonthTotal: seg.Y1 - seg.Y0,
				},
			})
		}
		return prims
	}

	layers := Stack(ds, cfg.OrderedKeys)
	prims := make([]Primitive, 0, len(layers)*len(ds.Months))
	for _, layer := range layers {
		for _, seg := range layer.Segments {
			x, ok := band.Pos(seg.Month)
			if !ok {
				continue
			}
			top := linear.Pos(seg.Y1)
			prims = append(prims, Primitive{
				Key:    layer.Key + "/" + seg.Month,
				Series: layer.Key,
				Month:  seg.Month,
				Index:  monthIndex[seg.Month],
				Geom:   Geometry{X: x, Y: top, W: width, H: linear.Pos(seg.Y0) - top, Opacity: 1},
				Fill:   cfg.ColorOf(layer.Key),
				Meta: model.SegmentMeta{
					Month:      seg.Month,
					Key:        layer.Key,
					Label:      cfg.LabelOf(layer.Key),
					Value:      seg.Y1 - seg.Y0,
					MonthTotal: ds.TotalFor(seg.Month),
				},
			})
		}
	}
	return prims
}

// baselineGeom returns the entering/exiting geometry for a primitive: parked
// at its horizontal slot on the baseline with zero height.
func baselineGeom(p Primitive, baseline float64) Geometry {
	return Geometry{X: p.Geom.X, Y: baseline, W: p.Geom.W, H: 0, Opacity: 0}
}
