// Package render formats entries, tags and summaries for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/timetags/internal/aggregate"
	"github.com/Tiliavir/timetags/internal/model"
)

// TagResolver maps a tag id to a displayable tag, including fallbacks for
// ids that no longer exist.
type TagResolver interface {
	ResolveTag(id string) model.Tag
}

// Renderer writes styled output for one destination. Colour support is
// detected from the writer, so output to a pipe or buffer is plain text.
type Renderer struct {
	lg    *lipgloss.Renderer
	tags  TagResolver
	title lipgloss.Style
	muted lipgloss.Style
	label lipgloss.Style
}

// New returns a Renderer for w.
func New(w io.Writer, tags TagResolver) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg:    lg,
		tags:  tags,
		title: lg.NewStyle().Bold(true),
		muted: lg.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		label: lg.NewStyle().Width(10),
	}
}

// Chip renders a tag name on its own background colour.
func (r *Renderer) Chip(tag model.Tag) string {
	return r.lg.NewStyle().
		Background(lipgloss.Color(tag.Color)).
		Foreground(lipgloss.Color(tag.TextColor)).
		Padding(0, 1).
		Render(tag.Name)
}

// Chips renders the tags referenced by ids, separated by a space.
func (r *Renderer) Chips(ids []string) string {
	chips := make([]string, 0, len(ids))
	for _, id := range ids {
		chips = append(chips, r.Chip(r.tags.ResolveTag(id)))
	}
	return strings.Join(chips, " ")
}

// Entry renders one line: date, times, duration, description and tag chips.
func (r *Renderer) Entry(e model.TimeEntry) string {
	duration, err := aggregate.CalculateDuration(e)
	if err != nil {
		duration = "?"
	}
	line := fmt.Sprintf("%s  %s-%s  %5sh  %s",
		e.Date, e.StartTime, e.EndTime, duration, e.Description)
	if len(e.Tags) > 0 {
		line += "  " + r.Chips(e.Tags)
	}
	return line
}

// Entries renders a heading followed by one line per entry.
func (r *Renderer) Entries(heading string, entries []model.TimeEntry) string {
	var b strings.Builder
	b.WriteString(r.title.Render(heading))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(r.muted.Render("No entries."))
		b.WriteString("\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(r.Entry(e))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders totals and the per-tag breakdown.
func (r *Renderer) Summary(heading string, s aggregate.Summary) string {
	var b strings.Builder
	b.WriteString(r.title.Render(heading))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%sh\n", r.label.Render("Total"), s.Total())
	fmt.Fprintf(&b, "%s%sh\n", r.label.Render("Average"), s.Average())
	fmt.Fprintf(&b, "%s%d entries on %d days\n", r.label.Render("Count"), s.Entries, s.Days)

	if len(s.ByTag) > 0 {
		b.WriteString("\n")
		for _, tt := range s.ByTag {
			fmt.Fprintf(&b, "%6sh  %3d  %s\n",
				aggregate.ToFixed1(tt.Hours), tt.Entries, r.Chip(r.tags.ResolveTag(tt.TagID)))
		}
	}
	return b.String()
}

// Tags renders a tag table: chip, id and colours.
func (r *Renderer) Tags(tags []model.Tag) string {
	if len(tags) == 0 {
		return r.muted.Render("No tags.") + "\n"
	}
	var b strings.Builder
	for _, tag := range tags {
		fmt.Fprintf(&b, "%s  %s  %s/%s\n", r.Chip(tag), r.muted.Render(tag.ID), tag.Color, tag.TextColor)
	}
	return b.String()
}
