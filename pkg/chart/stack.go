package chart

import "github.com/dfmore/calviz/pkg/model"

// Segment is one month's vertical extent within a layer, in data units.
// Y1-Y0 equals the month's value for the layer's key; Y0 is the running sum
// of every preceding key in the stack order.
type Segment struct {
	Month  string
	Y0, Y1 float64
}

// Layer is the stacked band for one key across all months, in month order.
type Layer struct {
	Key      string
	Segments []Segment
}

// Stack converts per-key month values into cumulative stacked layers.
// Keys are accumulated in the given order: the first key sits on the
// baseline. Pure and deterministic; re-run on every view switch.
func Stack(ds *model.CalendarDataset, keys []string) []Layer {
	layers := make([]Layer, len(keys))
	for i, key := range keys {
		layers[i] = Layer{Key: key, Segments: make([]Segment, 0, len(ds.Months))}
	}
	for _, rec := range ds.Months {
		baseline := 0.0
		for i, key := range keys {
			v := rec.ValueFor(key)
			layers[i].Segments = append(layers[i].Segments, Segment{
				Month: rec.Month,
				Y0:    baseline,
				Y1:    baseline + v,
			})
			baseline += v
		}
	}
	return layers
}

// CountSeries builds the simple-bar series for the meeting-count view:
// one segment per month from the record's meeting count, keyed by month.
func CountSeries(ds *model.CalendarDataset) []Segment {
	segs := make([]Segment, 0, len(ds.Months))
	for _, rec := range ds.Months {
		segs = append(segs, Segment{Month: rec.Month, Y0: 0, Y1: float64(rec.Meetings)})
	}
	return segs
}
