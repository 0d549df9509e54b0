package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/validate"
)

func TestEntry(t *testing.T) {
	valid := model.EntryDraft{
		Date:        "2024-01-01",
		StartTime:   "09:00",
		EndTime:     "17:00",
		Description: "Planning",
	}

	tests := []struct {
		name   string
		mutate func(d *model.EntryDraft)
		want   []string
	}{
		{"valid", func(d *model.EntryDraft) {}, nil},
		{"missing everything", func(d *model.EntryDraft) { *d = model.EntryDraft{} }, []string{
			"Date is required",
			"Start time is required",
			"End time is required",
			"Description is required",
		}},
		{"blank description", func(d *model.EntryDraft) { d.Description = "   " }, []string{"Description is required"}},
		{"end before start", func(d *model.EntryDraft) { d.EndTime = "08:00" }, []string{"End time must be after start time"}},
		{"end equals start", func(d *model.EntryDraft) { d.EndTime = "09:00" }, []string{"End time must be after start time"}},
		{"bad date", func(d *model.EntryDraft) { d.Date = "01.01.2024" }, []string{"Date must be in YYYY-MM-DD format"}},
		{"bad clock", func(d *model.EntryDraft) { d.StartTime = "9am" }, []string{"Start time must be in HH:mm format"}},
		{"out of range clock", func(d *model.EntryDraft) { d.EndTime = "24:30" }, []string{"End time must be in HH:mm format"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			got := validate.Entry(d)
			assert.Equal(t, len(tt.want) == 0, got.Valid)
			assert.Equal(t, tt.want, got.Errors)
		})
	}
}

func TestTag(t *testing.T) {
	got := validate.Tag(model.TagDraft{Name: "Design", Color: "#3B82F6"})
	assert.True(t, got.Valid)
	assert.Empty(t, got.Errors)

	got = validate.Tag(model.TagDraft{Name: " ", Color: ""})
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"Tag name is required", "Color is required"}, got.Errors)

	got = validate.Tag(model.TagDraft{Name: "Design", Color: "blue"})
	assert.False(t, got.Valid)
	assert.Len(t, got.Errors, 1)
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, validate.Tag(model.TagDraft{Name: "x", Color: "#000000"}).Err())

	err := validate.Tag(model.TagDraft{}).Err()
	require.Error(t, err)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Result.Valid)
	assert.Contains(t, err.Error(), "Tag name is required")
}
