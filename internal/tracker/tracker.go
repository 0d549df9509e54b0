// Package tracker holds the in-memory snapshot of entries and tags, applies
// create/update/delete operations through a Repository, and answers view
// queries for the CLI.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tiliavir/timetags/internal/aggregate"
	"github.com/Tiliavir/timetags/internal/colors"
	"github.com/Tiliavir/timetags/internal/filter"
	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
	"github.com/Tiliavir/timetags/internal/validate"
)

// Fallback display values for tag ids that do not resolve.
const (
	UnknownTagName      = "Unknown"
	UnknownTagColor     = "#cbd5e1"
	UnknownTagTextColor = "#000000"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrTagNotFound   = errors.New("tag not found")
)

// Repository persists the two collections. Saves are full overwrites.
type Repository interface {
	Entries() ([]model.TimeEntry, error)
	SaveEntries(entries []model.TimeEntry) error
	Tags() ([]model.Tag, error)
	SaveTags(tags []model.Tag) error
}

// Collection names which snapshot a Change touched.
type Collection int

const (
	CollectionEntries Collection = iota + 1
	CollectionTags
)

func (c Collection) String() string {
	switch c {
	case CollectionEntries:
		return "entries"
	case CollectionTags:
		return "tags"
	}
	return "unknown"
}

// Change is passed to observers after a successful write.
type Change struct {
	Collection Collection
	Op         string
	ID         string
}

// Tracker is the single reader and writer of the snapshot.
type Tracker struct {
	repo      Repository
	newID     func() string
	resolver  timecalc.Resolver
	entries   []model.TimeEntry
	tags      []model.Tag
	observers map[int]func(Change)
	nextObs   int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithIDGenerator replaces the id source.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithResolver sets how view modes map to date ranges.
func WithResolver(r timecalc.Resolver) Option {
	return func(t *Tracker) { t.resolver = r }
}

// New returns a Tracker with an empty snapshot; call Load to read the
// repository.
func New(repo Repository, newID func() string, opts ...Option) *Tracker {
	t := &Tracker{
		repo:      repo,
		newID:     newID,
		resolver:  timecalc.NewResolver(time.Local),
		entries:   []model.TimeEntry{},
		tags:      []model.Tag{},
		observers: map[int]func(Change){},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Load replaces the snapshot with the repository contents.
func (t *Tracker) Load() error {
	entries, err := t.repo.Entries()
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}
	tags, err := t.repo.Tags()
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	t.entries, t.tags = entries, tags
	slog.Debug("snapshot loaded", "entries", len(entries), "tags", len(tags))
	return nil
}

// Subscribe registers fn for change notifications and returns a function
// that removes it again.
func (t *Tracker) Subscribe(fn func(Change)) func() {
	id := t.nextObs
	t.nextObs++
	t.observers[id] = fn
	return func() { delete(t.observers, id) }
}

func (t *Tracker) notify(c Change) {
	for _, fn := range t.observers {
		fn(c)
	}
}

// Entries returns a copy of all entries in stored order.
func (t *Tracker) Entries() []model.TimeEntry {
	return append([]model.TimeEntry{}, t.entries...)
}

// Tags returns a copy of all tags in stored order.
func (t *Tracker) Tags() []model.Tag {
	return append([]model.Tag{}, t.tags...)
}

// IsEmpty reports whether either collection is empty.
func (t *Tracker) IsEmpty() bool {
	return len(t.entries) == 0 || len(t.tags) == 0
}

// CreateEntry validates d, assigns an id and persists the new entry. An
// invalid draft yields a *validate.Error.
func (t *Tracker) CreateEntry(d model.EntryDraft) (model.TimeEntry, error) {
	d.Description = strings.TrimSpace(d.Description)
	if err := validate.Entry(d).Err(); err != nil {
		return model.TimeEntry{}, err
	}

	e := model.TimeEntry{
		ID:          t.newID(),
		Date:        strings.TrimSpace(d.Date),
		StartTime:   strings.TrimSpace(d.StartTime),
		EndTime:     strings.TrimSpace(d.EndTime),
		Description: d.Description,
		Tags:        uniqueIDs(d.Tags),
	}

	next := append(t.Entries(), e)
	if err := t.commitEntries(next, Change{Op: "create", ID: e.ID}); err != nil {
		return model.TimeEntry{}, err
	}
	return e, nil
}

// UpdateEntry merges patch into the entry with id and persists the result.
func (t *Tracker) UpdateEntry(id string, patch model.EntryPatch) (model.TimeEntry, error) {
	i := t.entryIndex(id)
	if i < 0 {
		return model.TimeEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	updated := patch.Apply(t.entries[i])
	updated.ID = id
	updated.Description = strings.TrimSpace(updated.Description)
	updated.Tags = uniqueIDs(updated.Tags)
	if err := validate.EntryFromModel(updated).Err(); err != nil {
		return model.TimeEntry{}, err
	}

	next := t.Entries()
	next[i] = updated
	if err := t.commitEntries(next, Change{Op: "update", ID: id}); err != nil {
		return model.TimeEntry{}, err
	}
	return updated, nil
}

// DeleteEntry removes the entry with id.
func (t *Tracker) DeleteEntry(id string) error {
	if t.entryIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	next := make([]model.TimeEntry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return t.commitEntries(next, Change{Op: "delete", ID: id})
}

// CreateTag validates d and persists a new tag whose text colour is derived
// from its background.
func (t *Tracker) CreateTag(d model.TagDraft) (model.Tag, error) {
	d.Name = strings.TrimSpace(d.Name)
	if err := validate.Tag(d).Err(); err != nil {
		return model.Tag{}, err
	}

	tag, err := withTextColor(model.Tag{ID: t.newID(), Name: d.Name, Color: d.Color})
	if err != nil {
		return model.Tag{}, err
	}

	next := append(t.Tags(), tag)
	if err := t.commitTags(next, Change{Op: "create", ID: tag.ID}); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// UpdateTag replaces the tag with the same id. The text colour is derived
// again from the new background.
func (t *Tracker) UpdateTag(tag model.Tag) (model.Tag, error) {
	i := t.tagIndex(tag.ID)
	if i < 0 {
		return model.Tag{}, fmt.Errorf("%w: %s", ErrTagNotFound, tag.ID)
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if err := validate.Tag(model.TagDraft{Name: tag.Name, Color: tag.Color}).Err(); err != nil {
		return model.Tag{}, err
	}

	tag, err := withTextColor(tag)
	if err != nil {
		return model.Tag{}, err
	}

	next := t.Tags()
	next[i] = tag
	if err := t.commitTags(next, Change{Op: "update", ID: tag.ID}); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// DeleteTag removes the tag. Entries keep the dangling id, which then
// resolves to the Unknown fallbacks.
func (t *Tracker) DeleteTag(id string) error {
	if t.tagIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}
	next := make([]model.Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		if tag.ID != id {
			next = append(next, tag)
		}
	}
	return t.commitTags(next, Change{Op: "delete", ID: id})
}

// Clear empties both collections. The two writes are not atomic together.
func (t *Tracker) Clear() error {
	if err := t.commitEntries([]model.TimeEntry{}, Change{Op: "clear"}); err != nil {
		return err
	}
	return t.commitTags([]model.Tag{}, Change{Op: "clear"})
}

// Replace overwrites both collections, e.g. with seed data.
func (t *Tracker) Replace(tags []model.Tag, entries []model.TimeEntry) error {
	if err := t.commitTags(tags, Change{Op: "replace"}); err != nil {
		return err
	}
	return t.commitEntries(entries, Change{Op: "replace"})
}

// Tag looks up a tag by id.
func (t *Tracker) Tag(id string) (model.Tag, bool) {
	if i := t.tagIndex(id); i >= 0 {
		return t.tags[i], true
	}
	return model.Tag{}, false
}

// ResolveTag returns the tag with id, or a placeholder carrying the Unknown
// fallbacks when no such tag exists.
func (t *Tracker) ResolveTag(id string) model.Tag {
	if tag, ok := t.Tag(id); ok {
		return tag
	}
	return model.Tag{ID: id, Name: UnknownTagName, Color: UnknownTagColor, TextColor: UnknownTagTextColor}
}

// TagName returns the tag's name or "Unknown".
func (t *Tracker) TagName(id string) string { return t.ResolveTag(id).Name }

// TagColor returns the tag's colour or the neutral fallback.
func (t *Tracker) TagColor(id string) string { return t.ResolveTag(id).Color }

// TagTextColor returns the tag's text colour or black.
func (t *Tracker) TagTextColor(id string) string { return t.ResolveTag(id).TextColor }

// FindTagID resolves a tag by id or, case-insensitively, by name.
func (t *Tracker) FindTagID(ref string) (string, bool) {
	if _, ok := t.Tag(ref); ok {
		return ref, true
	}
	for _, tag := range t.tags {
		if strings.EqualFold(tag.Name, ref) {
			return tag.ID, true
		}
	}
	return "", false
}

// Query selects a view: a mode, a date selection and an optional tag set.
type Query struct {
	Mode      model.ViewMode
	Selection timecalc.Selection
	TagIDs    []string
}

// View is the outcome of a Query.
type View struct {
	Range   timecalc.Range
	Label   string
	Entries []model.TimeEntry
}

// View resolves q's date range and filters the snapshot by range and tags.
func (t *Tracker) View(q Query) (View, error) {
	r, err := t.resolver.Resolve(q.Mode, q.Selection)
	if err != nil {
		return View{}, err
	}
	return View{
		Range:   r,
		Label:   timecalc.Label(q.Mode, r),
		Entries: filter.Apply(t.entries, r, q.TagIDs),
	}, nil
}

// Report is a View plus its aggregates.
type Report struct {
	View
	Summary aggregate.Summary
}

// Report runs View and summarises the selected entries.
func (t *Tracker) Report(q Query) (Report, error) {
	v, err := t.View(q)
	if err != nil {
		return Report{}, err
	}
	s, err := aggregate.Summarize(v.Entries)
	if err != nil {
		return Report{}, err
	}
	return Report{View: v, Summary: s}, nil
}

func (t *Tracker) commitEntries(next []model.TimeEntry, c Change) error {
	if err := t.repo.SaveEntries(next); err != nil {
		slog.Error("saving entries failed", "op", c.Op, "id", c.ID, "error", err)
		return err
	}
	t.entries = next
	c.Collection = CollectionEntries
	slog.Debug("entries changed", "op", c.Op, "id", c.ID, "count", len(next))
	t.notify(c)
	return nil
}

func (t *Tracker) commitTags(next []model.Tag, c Change) error {
	if err := t.repo.SaveTags(next); err != nil {
		slog.Error("saving tags failed", "op", c.Op, "id", c.ID, "error", err)
		return err
	}
	t.tags = next
	c.Collection = CollectionTags
	slog.Debug("tags changed", "op", c.Op, "id", c.ID, "count", len(next))
	t.notify(c)
	return nil
}

func (t *Tracker) entryIndex(id string) int {
	for i, e := range t.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) tagIndex(id string) int {
	for i, tag := range t.tags {
		if tag.ID == id {
			return i
		}
	}
	return -1
}

func withTextColor(tag model.Tag) (model.Tag, error) {
	text, err := colors.ContrastingColor(tag.Color)
	if err != nil {
		return model.Tag{}, err
	}
	if !strings.HasPrefix(tag.Color, "#") {
		tag.Color = "#" + tag.Color
	}
	tag.TextColor = text
	return tag, nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
