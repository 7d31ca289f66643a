// Package testutil provides deterministic dataset generators and shared
// assertions for chart tests. All generators are seeded for reproducibility.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/dfmore/calviz/pkg/model"
)

// CategoryKeys and TagKeys mirror the keys the shipped views stack.
var (
	CategoryKeys = []string{"general", "customer", "training", "planning", "oneOnOne"}
	TagKeys      = []string{"informational", "onboarding", "eba", "ai", "nonEba", "sales", "support"}
)

// Months returns n synthetic month labels: M01, M02, ...
func Months(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("M%02d", i+1)
	}
	return out
}

// RandomDataset builds a dataset with the given months and keys, values
// drawn uniformly from [0, maxValue).
func RandomDataset(seed int64, months, keys []string, maxValue float64) *model.CalendarDataset {
	rng := rand.New(rand.NewSource(seed))
	ds := &model.CalendarDataset{Name: "synthetic"}
	for _, m := range months {
		values := make(map[string]float64, len(keys))
		var hours float64
		for _, k := range keys {
			v := rng.Float64() * maxValue
			values[k] = v
			hours += v
		}
		ds.Months = append(ds.Months, model.MonthRecord{
			Month:    m,
			Values:   values,
			Hours:    hours,
			Meetings: 1 + rng.Intn(60),
		})
	}
	return ds
}

// RandomCollection builds a full collection with category and tag datasets
// over the same months.
func RandomCollection(seed int64, monthCount int) *model.Collection {
	months := Months(monthCount)
	return &model.Collection{
		Source:     "synthetic",
		Categories: RandomDataset(seed, months, CategoryKeys, 20),
		Tags:       RandomDataset(seed+1, months, TagKeys, 8),
	}
}
