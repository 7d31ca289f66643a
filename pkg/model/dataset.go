// Package model defines the calendar time-series data structures rendered by
// the chart engine. A dataset is loaded once (from an ICS export or a JSON
// file) and is read-only afterwards; every downstream computation works on
// copies of the numbers, never on shared mutable state.
package model

// MonthRecord is one month's aggregated meeting time, broken down by key.
// Values is keyed by category or tag identifier depending on which dataset
// the record belongs to. Hours is the work-relevant total for the month and
// Meetings the number of distinct meetings that contributed to it.
type MonthRecord struct {
	Month    string             `json:"month"`
	Values   map[string]float64 `json:"values"`
	Hours    float64            `json:"hours"`
	Meetings int                `json:"meetings"`
}

// ValueFor returns the record's value for key, or 0 when the key is absent.
func (r MonthRecord) ValueFor(key string) float64 {
	return r.Values[key]
}

// Total sums every keyed value in the record.
func (r MonthRecord) Total() float64 {
	var sum float64
	for _, v := range r.Values {
		sum += v
	}
	return sum
}

// CalendarDataset is an ordered sequence of monthly records. Month labels are
// unique and their order is significant: it defines the horizontal order of
// the chart's bands.
type CalendarDataset struct {
	Name   string        `json:"name"`
	Months []MonthRecord `json:"months"`
}

// MonthLabels returns the month labels in dataset order.
func (d *CalendarDataset) MonthLabels() []string {
	labels := make([]string, len(d.Months))
	for i, m := range d.Months {
		labels[i] = m.Month
	}
	return labels
}

// Record returns the record for the given month label.
func (d *CalendarDataset) Record(month string) (MonthRecord, bool) {
	for _, m := range d.Months {
		if m.Month == month {
			return m, true
		}
	}
	return MonthRecord{}, false
}

// ValueFor returns the value for (month, key), or 0 when either is unknown.
func (d *CalendarDataset) ValueFor(month, key string) float64 {
	rec, ok := d.Record(month)
	if !ok {
		return 0
	}
	return rec.ValueFor(key)
}

// TotalFor returns the sum of all keyed values for the month.
func (d *CalendarDataset) TotalFor(month string) float64 {
	rec, ok := d.Record(month)
	if !ok {
		return 0
	}
	return rec.Total()
}

// Collection bundles the datasets the view registry can select from.
// Categories and Tags carry hour breakdowns; meeting counts ride along on
// either dataset's MonthRecord.Meetings field.
type Collection struct {
	Source     string           `json:"source,omitempty"`
	Categories *CalendarDataset `json:"categories"`
	Tags       *CalendarDataset `json:"tags"`
}

// Dataset returns the dataset registered under the given selector.
// Selectors are defined by the views package; unknown selectors yield nil.
func (c *Collection) Dataset(selector string) *CalendarDataset {
	switch selector {
	case SelectorCategories, SelectorCounts:
		// Meeting counts are derived from the categories dataset's records.
		return c.Categories
	case SelectorTags:
		return c.Tags
	default:
		return nil
	}
}

// Dataset selectors used by view configurations.
const (
	SelectorCategories = "categories"
	SelectorTags       = "tags"
	SelectorCounts     = "counts"
)

// SegmentMeta carries the display metadata attached to a rendered chart
// segment. The tooltip derives its text from it on hover.
type SegmentMeta struct {
	Month      string
	Key        string
	Label      string
	Value      float64
	MonthTotal float64
}
