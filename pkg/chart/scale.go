// Package chart is the rendering and view-switching engine. It turns a
// calendar dataset plus a view configuration into positioned, animated chart
// primitives, reconciles repeated renders without discarding unrelated state,
// and keeps tooltip, legend and summary text in lockstep with the active view.
//
// All of the engine runs on a single goroutine: transitions are advanced by a
// frame clock, not by background timers, so no locking is needed anywhere in
// this package.
package chart

// BandScale maps an ordered discrete domain (month labels) to evenly spaced
// pixel bands with symmetric inner padding. The band order is the domain
// order; it never re-sorts.
type BandScale struct {
	labels  []string
	index   map[string]int
	total   float64
	padding float64
}

// NewBandScale builds a band scale over labels across total pixels with the
// given padding fraction (0 <= p < 1).
func NewBandScale(labels []string, total, padding float64) BandScale {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return BandScale{labels: labels, index: idx, total: total, padding: padding}
}

// Step is the distance between the starts of adjacent bands.
func (s BandScale) Step() float64 {
	if len(s.labels) == 0 {
		return 0
	}
	return s.total / float64(len(s.labels))
}

// Bandwidth is the drawable width of one band: (total/n) * (1 - padding).
func (s BandScale) Bandwidth() float64 {
	return s.Step() * (1 - s.padding)
}

// Pos returns the left edge of the band for the given label. Unknown labels
// report ok=false.
func (s BandScale) Pos(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	step := s.Step()
	return float64(i)*step + (step-s.Bandwidth())/2, true
}

// Labels returns the domain in band order.
func (s BandScale) Labels() []string { return s.labels }

// LinearScale maps a magnitude in [0, max] to an inverted pixel coordinate:
// 0 lands on the chart baseline (height) and max on the top (0). Values
// outside the domain extrapolate; clipping is the chart area's job.
type LinearScale struct {
	max    float64
	height float64
}

// NewLinearScale builds an inverted linear scale over [0, max] across height
// pixels.
func NewLinearScale(max, height float64) LinearScale {
	return LinearScale{max: max, height: height}
}

// Pos returns the pixel coordinate for value v.
func (s LinearScale) Pos(v float64) float64 {
	if s.max == 0 {
		return s.height
	}
	return s.height - v/s.max*s.height
}

// Height returns the scale's pixel range, which is also the baseline
// coordinate.
func (s LinearScale) Height() float64 { return s.height }

// Max returns the domain maximum.
func (s LinearScale) Max() float64 { return s.max }
