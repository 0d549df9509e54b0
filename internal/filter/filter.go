// Package filter selects time entries by date window and tag set.
package filter

import (
	"slices"
	"time"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
)

// InRange reports whether the start of date falls within [start, end], both
// ends inclusive. Dates that do not parse are never in range.
func InRange(date string, start, end time.Time) bool {
	d, err := timecalc.ParseDate(date, start.Location())
	if err != nil {
		return false
	}
	d = timecalc.StartOfDay(d)
	return !d.Before(start) && !d.After(end)
}

// ByDateRange keeps the entries whose date lies within r.
func ByDateRange(entries []model.TimeEntry, r timecalc.Range) []model.TimeEntry {
	result := []model.TimeEntry{}
	for _, e := range entries {
		if InRange(e.Date, r.Start, r.End) {
			result = append(result, e)
		}
	}
	return result
}

// ByTags keeps entries sharing at least one tag with selected (OR logic).
// An empty selection means no filter and returns entries unchanged.
func ByTags(entries []model.TimeEntry, selected []string) []model.TimeEntry {
	if len(selected) == 0 {
		return entries
	}

	result := []model.TimeEntry{}
	for _, e := range entries {
		if slices.ContainsFunc(selected, e.HasTag) {
			result = append(result, e)
		}
	}
	return result
}

// Apply runs the date filter and then the tag filter.
func Apply(entries []model.TimeEntry, r timecalc.Range, selected []string) []model.TimeEntry {
	return ByTags(ByDateRange(entries, r), selected)
}
