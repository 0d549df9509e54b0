// Package validate checks user input for entries and tags. Failures are
// reported as a Result with human-readable messages, never as a panic.
package validate

import (
	"strings"
	"time"

	"github.com/Tiliavir/timetags/internal/colors"
	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
)

// Result is the outcome of a validation run.
type Result struct {
	Valid  bool
	Errors []string
}

func newResult(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Error wraps an invalid Result so services can return it as an error.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Result.Errors, ", ")
}

// Err returns nil for a valid result and *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Result: r}
}

// Entry validates the fields of an entry draft. Required-field checks come
// first, then format checks, then the ordering of start and end. An end time
// equal to the start time is rejected; entries crossing midnight are not
// supported.
func Entry(d model.EntryDraft) Result {
	var errs []string

	if strings.TrimSpace(d.Date) == "" {
		errs = append(errs, "Date is required")
	}
	if strings.TrimSpace(d.StartTime) == "" {
		errs = append(errs, "Start time is required")
	}
	if strings.TrimSpace(d.EndTime) == "" {
		errs = append(errs, "End time is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, "Description is required")
	}

	dateOK := false
	if strings.TrimSpace(d.Date) != "" {
		if _, err := timecalc.ParseDate(d.Date, time.UTC); err != nil {
			errs = append(errs, "Date must be in YYYY-MM-DD format")
		} else {
			dateOK = true
		}
	}

	start, startOK := clock(d.StartTime, "Start time", &errs)
	end, endOK := clock(d.EndTime, "End time", &errs)

	if dateOK && startOK && endOK && !end.After(start) {
		errs = append(errs, "End time must be after start time")
	}

	return newResult(errs)
}

// EntryFromModel validates a stored entry, e.g. after a patch was applied.
func EntryFromModel(e model.TimeEntry) Result {
	return Entry(model.EntryDraft{
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		Tags:        e.Tags,
	})
}

// Tag validates a tag name and colour.
func Tag(d model.TagDraft) Result {
	var errs []string

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "Tag name is required")
	}
	switch {
	case strings.TrimSpace(d.Color) == "":
		errs = append(errs, "Color is required")
	case !colors.Valid(d.Color):
		errs = append(errs, "Color must be a 6-digit hex value like #3B82F6")
	}

	return newResult(errs)
}

func clock(value, field string, errs *[]string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(model.ClockLayout, strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, field+" must be in HH:mm format")
		return time.Time{}, false
	}
	return t, true
}
