package timecalc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/timetags/internal/model"
)

var (
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date (want YYYY-MM-DD)")
	// ErrInvalidClock is returned for times not in HH:mm form.
	ErrInvalidClock = errors.New("invalid time (want HH:mm)")
	// ErrInvertedRange is returned when an explicit range ends before it starts.
	ErrInvertedRange = errors.New("range end is before range start")
)

// Range is an inclusive [Start, End] window covering whole days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// String renders the range as "2024-02-01 → 2024-02-29".
func (r Range) String() string {
	return r.Start.Format(model.DateLayout) + " → " + r.End.Format(model.DateLayout)
}

// Selection is the date picker state: a single reference date, or in week
// mode an explicit From..To window.
type Selection struct {
	From string
	To   string
}

// Resolver turns a view mode and selection into a concrete Range.
type Resolver struct {
	// Location is used to interpret dates. Nil means time.Local.
	Location *time.Location
	// WeekStart is the first day of a calendar week.
	WeekStart time.Weekday
}

// NewResolver returns a Resolver for loc with weeks starting on Sunday.
func NewResolver(loc *time.Location) Resolver {
	return Resolver{Location: loc, WeekStart: time.Sunday}
}

func (r Resolver) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// Resolve computes the inclusive range for mode and sel. An explicit To is
// honoured only in week mode; day and month use From as the reference.
func (r Resolver) Resolve(mode model.ViewMode, sel Selection) (Range, error) {
	from, err := ParseDate(sel.From, r.location())
	if err != nil {
		return Range{}, err
	}

	if mode == model.ViewWeek && strings.TrimSpace(sel.To) != "" {
		to, err := ParseDate(sel.To, r.location())
		if err != nil {
			return Range{}, err
		}
		if to.Before(from) {
			return Range{}, fmt.Errorf("%w: %s → %s", ErrInvertedRange, sel.From, sel.To)
		}
		return Range{Start: StartOfDay(from), End: EndOfDay(to)}, nil
	}

	switch mode {
	case model.ViewDay:
		return Range{Start: StartOfDay(from), End: EndOfDay(from)}, nil
	case model.ViewWeek:
		start, end := WeekRange(from, r.WeekStart)
		return Range{Start: start, End: end}, nil
	case model.ViewMonth:
		start, end := MonthRange(from)
		return Range{Start: start, End: end}, nil
	}
	return Range{}, fmt.Errorf("%w %q", model.ErrInvalidMode, mode)
}

// ParseDate parses a YYYY-MM-DD string in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// At combines a YYYY-MM-DD date and an HH:mm clock into one instant.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	c, err := time.Parse(model.ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// WeekRange returns the first and last instant of the week containing t.
func WeekRange(t time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	first := StartOfDay(t.AddDate(0, 0, -offset))
	return first, EndOfDay(first.AddDate(0, 0, 6))
}

// MonthRange returns the first and last instant of t's calendar month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, EndOfDay(last)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Label names a resolved range for report headings. Whole weeks starting on
// Monday get their ISO week number; other whole weeks are named by their
// first day.
func Label(mode model.ViewMode, r Range) string {
	lastDay := r.Start.AddDate(0, 0, 6).Format(model.DateLayout)
	wholeWeek := mode == model.ViewWeek && r.End.Format(model.DateLayout) == lastDay
	switch {
	case mode == model.ViewDay:
		return r.Start.Format("Mon 2006-01-02")
	case mode == model.ViewMonth:
		return r.Start.Format("January 2006")
	case wholeWeek && r.Start.Weekday() == time.Monday:
		return "Week " + ISOWeekLabel(r.Start)
	case wholeWeek:
		return "Week of " + r.Start.Format(model.DateLayout)
	}
	return r.String()
}
