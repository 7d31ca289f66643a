// Package analysis derives the narrative insight lines shown beside the
// chart. Everything works on monthly totals: a least-squares trend says
// whether load is climbing or easing, shares say which key dominates, and
// the hours/count correlation says whether meeting length is drifting.
// Outputs are deterministic for a given dataset.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/dfmore/calviz/pkg/model"
)

// Trend classifications returned by Classify.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendFlat    = "flat"
)

// flatSlopeFraction bounds the per-month slope, relative to the mean,
// below which a trend reads as flat.
const flatSlopeFraction = 0.02

// Slope returns the least-squares slope of the series over its indices.
func Slope(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, series, nil, false)
	return beta
}

// Classify reduces a series to one of the trend constants.
func Classify(series []float64) string {
	mean := stat.Mean(series, nil)
	if mean == 0 {
		return TrendFlat
	}
	slope := Slope(series)
	switch {
	case slope > flatSlopeFraction*mean:
		return TrendRising
	case slope < -flatSlopeFraction*mean:
		return TrendFalling
	default:
		return TrendFlat
	}
}

// MonthTotals returns the per-month totals over the given keys, in dataset
// order. Nil keys means every key in each record.
func MonthTotals(ds *model.CalendarDataset, keys []string) []float64 {
	totals := make([]float64, len(ds.Months))
	for i, m := range ds.Months {
		if keys == nil {
			totals[i] = m.Total()
			continue
		}
		for _, k := range keys {
			totals[i] += m.ValueFor(k)
		}
	}
	return totals
}

// DominantKey returns the key with the largest share of total hours, along
// with that share in [0, 1].
func DominantKey(ds *model.CalendarDataset, keys []string) (string, float64) {
	sums := make(map[string]float64, len(keys))
	var total float64
	for _, m := range ds.Months {
		for _, k := range keys {
			v := m.ValueFor(k)
			sums[k] += v
			total += v
		}
	}
	if total == 0 {
		return "", 0
	}
	best := keys[0]
	for _, k := range keys[1:] {
		if sums[k] > sums[best] {
			best = k
		}
	}
	return best, sums[best] / total
}

// PeakMonth returns the label and value of the highest-total month.
func PeakMonth(ds *model.CalendarDataset, keys []string) (string, float64) {
	totals := MonthTotals(ds, keys)
	if len(totals) == 0 {
		return "", 0
	}
	peak := 0
	for i, t := range totals {
		if t > totals[peak] {
			peak = i
		}
	}
	return ds.Months[peak].Month, totals[peak]
}

// HourInsights builds the insight lines for a stacked hour view.
func HourInsights(ds *model.CalendarDataset, keys []string, labels map[string]string) []string {
	if ds == nil || len(ds.Months) == 0 {
		return nil
	}
	var out []string

	if key, share := DominantKey(ds, keys); key != "" {
		label := key
		if l, ok := labels[key]; ok {
			label = l
		}
		out = append(out, fmt.Sprintf(
			"**%s** is the largest bucket, holding %.0f%% of tracked hours.",
			label, share*100))
	}

	peakMonth, peakHours := PeakMonth(ds, keys)
	if peakMonth != "" {
		out = append(out, fmt.Sprintf(
			"The load peaks in **%s** at %.0f hours.", peakMonth, peakHours))
	}

	switch Classify(MonthTotals(ds, keys)) {
	case TrendRising:
		out = append(out, "Total hours are climbing over the year.")
	case TrendFalling:
		out = append(out, "Total hours are easing over the year.")
	default:
		out = append(out, "Total hours hold roughly steady across the year.")
	}
	return out
}

// CountInsights builds the insight lines for the meeting-count view. When
// counts and hours move together, meeting length is stable and the line
// says so.
func CountInsights(ds *model.CalendarDataset) []string {
	if ds == nil || len(ds.Months) == 0 {
		return nil
	}
	counts := make([]float64, len(ds.Months))
	hours := make([]float64, len(ds.Months))
	for i, m := range ds.Months {
		counts[i] = float64(m.Meetings)
		hours[i] = m.Total()
	}

	var out []string
	peakIdx := 0
	for i := range counts {
		if counts[i] > counts[peakIdx] {
			peakIdx = i
		}
	}
	out = append(out, fmt.Sprintf(
		"Meeting count peaks in **%s** with %d meetings.",
		ds.Months[peakIdx].Month, ds.Months[peakIdx].Meetings))

	if corr := stat.Correlation(counts, hours, nil); corr > 0.8 {
		out = append(out, "Counts track hours closely, so the average meeting length barely moves month to month.")
	} else {
		out = append(out, fmt.Sprintf(
			"Counts and hours diverge (correlation %.2f): the average meeting length shifts across the year.", corr))
	}

	switch Classify(counts) {
	case TrendRising:
		out = append(out, "The meeting count is trending up over the year.")
	case TrendFalling:
		out = append(out, "The meeting count is trending down over the year.")
	}
	return out
}
