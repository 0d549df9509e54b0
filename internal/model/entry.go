package model

import (
	"errors"
	"fmt"
)

// Layouts used for the string-typed date and clock fields.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TimeEntry is a single logged span of time on one calendar day.
type TimeEntry struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HasTag reports whether the entry references the given tag id.
func (e TimeEntry) HasTag(id string) bool {
	for _, t := range e.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// EntryDraft carries the user-supplied fields of a new entry.
type EntryDraft struct {
	Date        string
	StartTime   string
	EndTime     string
	Description string
	Tags        []string
}

// EntryPatch is a shallow update; nil fields keep their current value.
type EntryPatch struct {
	Date        *string
	StartTime   *string
	EndTime     *string
	Description *string
	Tags        []string
	SetTags     bool
}

// Apply returns e with the non-nil patch fields merged in.
func (p EntryPatch) Apply(e TimeEntry) TimeEntry {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.SetTags {
		e.Tags = append([]string{}, p.Tags...)
	}
	return e
}

// Tag is a named, coloured category attachable to entries.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

// TagDraft carries the user-supplied fields of a new tag. The text colour is
// always derived from Color.
type TagDraft struct {
	Name  string
	Color string
}

// ViewMode is the aggregation granularity for filtering and display.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ErrInvalidMode is returned for view modes other than day, week and month.
var ErrInvalidMode = errors.New("unknown view mode")

// ParseViewMode converts a flag or config value into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewDay, ViewWeek, ViewMonth:
		return m, nil
	}
	return "", fmt.Errorf("%w %q (want day, week or month)", ErrInvalidMode, s)
}
