// Package aggregate computes entry durations and the hour totals shown for a
// filtered view.
package aggregate

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
)

// DurationInHours returns end minus start of the entry, in fractional hours,
// both taken on the entry's date. A negative result means the entry ends
// before it starts and must not be treated as valid.
func DurationInHours(e model.TimeEntry) (float64, error) {
	start, err := timecalc.At(e.Date, e.StartTime, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("entry %s start: %w", e.ID, err)
	}
	end, err := timecalc.At(e.Date, e.EndTime, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("entry %s end: %w", e.ID, err)
	}
	return float64(end.Sub(start)) / float64(time.Hour), nil
}

// FormatDuration renders hours as "8.0h".
func FormatDuration(hours float64) string {
	return ToFixed1(hours) + "h"
}

// CalculateDuration is FormatDuration(DurationInHours(e)).
func CalculateDuration(e model.TimeEntry) (string, error) {
	h, err := DurationInHours(e)
	if err != nil {
		return "", err
	}
	return FormatDuration(h), nil
}

// TotalHours sums the durations of entries and renders one decimal.
func TotalHours(entries []model.TimeEntry) (string, error) {
	total, err := sumHours(entries)
	if err != nil {
		return "", err
	}
	return ToFixed1(total), nil
}

// AverageHoursPerDay divides the rounded total by the number of distinct
// dates. An empty set averages to "0.0".
func AverageHoursPerDay(entries []model.TimeEntry) (string, error) {
	s, err := Summarize(entries)
	if err != nil {
		return "", err
	}
	return ToFixed1(s.AverageHours), nil
}

// TagTotal is the hours booked against one tag.
type TagTotal struct {
	TagID   string
	Hours   float64
	Entries int
}

// Summary holds the numbers behind a report.
type Summary struct {
	Entries      int
	Days         int
	TotalHours   float64
	AverageHours float64
	// ByTag is sorted by hours, largest first. Entries with several tags
	// count towards each of them; untagged entries are not listed.
	ByTag []TagTotal
}

// Total renders TotalHours with one decimal.
func (s Summary) Total() string { return ToFixed1(s.TotalHours) }

// Average renders AverageHours with one decimal.
func (s Summary) Average() string { return ToFixed1(s.AverageHours) }

// Summarize computes totals, distinct days and the per-tag breakdown.
func Summarize(entries []model.TimeEntry) (Summary, error) {
	s := Summary{Entries: len(entries), ByTag: []TagTotal{}}
	if len(entries) == 0 {
		return s, nil
	}

	days := map[string]struct{}{}
	byTag := map[string]*TagTotal{}
	var order []string
	for _, e := range entries {
		h, err := DurationInHours(e)
		if err != nil {
			return Summary{}, err
		}
		s.TotalHours += h
		days[e.Date] = struct{}{}

		for _, id := range dedupe(e.Tags) {
			tt, ok := byTag[id]
			if !ok {
				tt = &TagTotal{TagID: id}
				byTag[id] = tt
				order = append(order, id)
			}
			tt.Hours += h
			tt.Entries++
		}
	}
	s.Days = len(days)

	// The average is taken from the displayed (rounded) total.
	rounded, err := strconv.ParseFloat(ToFixed1(s.TotalHours), 64)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing rounded total: %w", err)
	}
	s.AverageHours = rounded / float64(s.Days)

	for _, id := range order {
		s.ByTag = append(s.ByTag, *byTag[id])
	}
	sort.SliceStable(s.ByTag, func(i, j int) bool {
		return s.ByTag[i].Hours > s.ByTag[j].Hours
	})
	return s, nil
}

// ToFixed1 renders x with one decimal place. Rounding is done on the exact
// binary value, with halves going away from zero, so 0.25 gives "0.3" while
// 0.15 (stored just below .15) gives "0.1".
func ToFixed1(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(10))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}

	tenth := new(big.Int)
	units, _ := new(big.Int).QuoRem(whole, big.NewInt(10), tenth)
	return fmt.Sprintf("%s%s.%s", sign, units.String(), tenth.String())
}

func sumHours(entries []model.TimeEntry) (float64, error) {
	var total float64
	for _, e := range entries {
		h, err := DurationInHours(e)
		if err != nil {
			return 0, err
		}
		total += h
	}
	return total, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
