// Package seed generates demo tags and entries.
package seed

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/Tiliavir/timetags/internal/colors"
	"github.com/Tiliavir/timetags/internal/model"
)

// TagNames are the demo tags, in creation order.
var TagNames = []string{
	"Development", "Design", "Meeting", "Planning", "Backend",
	"Frontend", "Database", "API", "Security", "Performance",
}

const (
	DefaultEntries = 500

	minDurationMinutes = 15
	maxDurationMinutes = 240
	minTags            = 1
	maxTags            = 6
)

// Generate returns len(TagNames) tags with random colours and n entries on
// random days between from and to (inclusive). Entries are sorted by date.
func Generate(rng *rand.Rand, newID func() string, from, to time.Time, n int) ([]model.Tag, []model.TimeEntry) {
	tags := make([]model.Tag, 0, len(TagNames))
	for _, name := range TagNames {
		color := randomColor(rng)
		text, err := colors.ContrastingColor(color)
		if err != nil {
			// randomColor always yields a valid hex value.
			panic(err)
		}
		tags = append(tags, model.Tag{ID: newID(), Name: name, Color: color, TextColor: text})
	}

	days := calendarDays(from, to)
	if days < 1 {
		days = 1
	}

	entries := make([]model.TimeEntry, 0, n)
	for range n {
		date := from.AddDate(0, 0, rng.IntN(days)).Format(model.DateLayout)
		start, end := timeRange(rng)
		entries = append(entries, model.TimeEntry{
			ID:          newID(),
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			Description: "Task on " + date,
			Tags:        randomTags(rng, tags),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return tags, entries
}

// calendarDays counts the dates from..to inclusive, independent of DST
// changes in their location.
func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a)/(24*time.Hour)) + 1
}

func randomColor(rng *rand.Rand) string {
	return fmt.Sprintf("#%06X", rng.IntN(1<<24))
}

// timeRange starts between 09:00 and 16:45 on a quarter hour and never
// crosses midnight.
func timeRange(rng *rand.Rand) (string, string) {
	startMin := (9+rng.IntN(8))*60 + rng.IntN(4)*15
	endMin := startMin + minDurationMinutes + rng.IntN(maxDurationMinutes-minDurationMinutes+1)
	if endMin > 23*60+59 {
		endMin = 23*60 + 59
	}
	return clock(startMin), clock(endMin)
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func randomTags(rng *rand.Rand, tags []model.Tag) []string {
	count := minTags + rng.IntN(maxTags-minTags+1)
	if count > len(tags) {
		count = len(tags)
	}
	ids := make([]string, 0, count)
	for _, i := range rng.Perm(len(tags))[:count] {
		ids = append(ids, tags[i].ID)
	}
	return ids
}
