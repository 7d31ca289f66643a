// Package loader turns calendar exports into chart-ready datasets. It parses
// ICS files, filters and categorizes events with keyword rules, buckets them
// into fiscal months and aggregates hours per category and per responsibility
// tag. Previously aggregated collections round-trip through JSON.
package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dfmore/calviz/pkg/debug"
	"github.com/dfmore/calviz/pkg/model"
)

// OwnerEnvVar names the environment variable holding the calendar owner's
// email address. It is the fallback when no owner is configured.
const OwnerEnvVar = "CV_CALENDAR_OWNER"

// FiscalMonths lists month labels in fiscal order, July first. Datasets are
// always emitted in this order, whether or not every month has events.
var FiscalMonths = []string{
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
}

// Load reads a dataset collection from path, dispatching on extension:
// .ics is parsed and aggregated, .json is decoded directly. The owner email
// resolves the owner's PARTSTAT from attendee lists; an empty owner falls
// back to OwnerEnvVar.
func Load(path, owner string) (*model.Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics":
		return LoadICS(path, owner)
	case ".json":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported data file %q (want .ics or .json)", path)
	}
}

// LoadICS parses and aggregates a calendar export.
func LoadICS(path, owner string) (*model.Collection, error) {
	defer debug.LogEnterExit("loader.LoadICS")()

	if owner == "" {
		owner = os.Getenv(OwnerEnvVar)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open calendar file: %w", err)
	}
	defer f.Close()

	events, err := ParseICS(f, owner)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	coll := Aggregate(events)
	coll.Source = filepath.Base(path)
	return coll, nil
}

// LoadJSON decodes a previously saved collection.
func LoadJSON(path string) (*model.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	var coll model.Collection
	if err := json.Unmarshal(data, &coll); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if coll.Categories == nil || coll.Tags == nil {
		return nil, fmt.Errorf("%s: missing categories or tags dataset", filepath.Base(path))
	}
	return &coll, nil
}

// SaveJSON writes the collection so later runs can skip ICS parsing.
func SaveJSON(path string, coll *model.Collection) error {
	data, err := json.MarshalIndent(coll, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Aggregate buckets work-relevant events into fiscal months and builds the
// category and tag datasets. Hours are rounded to one decimal so JSON
// round-trips stay stable.
func Aggregate(events []Event) *model.Collection {
	type bucket struct {
		categories map[string]float64
		tags       map[string]float64
		hours      float64
		meetings   int
		tagHours   float64
		tagCount   int
	}
	buckets := make(map[string]*bucket, len(FiscalMonths))
	for _, m := range FiscalMonths {
		buckets[m] = &bucket{
			categories: map[string]float64{},
			tags:       map[string]float64{},
		}
	}

	for _, e := range events {
		category := Categorize(e)
		if !WorkRelevant(category) || e.Start.IsZero() {
			continue
		}
		b := buckets[monthLabel(e.Start)]
		hours := e.DurationHours()
		b.categories[category] += hours
		b.hours += hours
		b.meetings++

		for _, raw := range e.Tags {
			if key := NormalizeTag(raw); key != "" {
				b.tags[key] += hours
				b.tagHours += hours
				b.tagCount++
			}
		}
	}

	coll := &model.Collection{
		Categories: &model.CalendarDataset{Name: "categories"},
		Tags:       &model.CalendarDataset{Name: "tags"},
	}
	for _, m := range FiscalMonths {
		b := buckets[m]
		coll.Categories.Months = append(coll.Categories.Months, model.MonthRecord{
			Month:    m,
			Values:   roundValues(b.categories),
			Hours:    round1(b.hours),
			Meetings: b.meetings,
		})
		coll.Tags.Months = append(coll.Tags.Months, model.MonthRecord{
			Month:    m,
			Values:   roundValues(b.tags),
			Hours:    round1(b.tagHours),
			Meetings: b.tagCount,
		})
	}
	return coll
}

func monthLabel(t time.Time) string {
	return t.Format("Jan")
}

func roundValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = round1(v)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
