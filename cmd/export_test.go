package cmd

import (
	"testing"

	"github.com/Tiliavir/timetags/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"Dev;API", "Dev;API"},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSortedEntries(t *testing.T) {
	in := []model.TimeEntry{
		{ID: "c", Date: "2024-09-03", StartTime: "08:00"},
		{ID: "b", Date: "2024-09-02", StartTime: "13:00"},
		{ID: "a", Date: "2024-09-02", StartTime: "09:00"},
	}
	got := sortedEntries(in)
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("sortedEntries()[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
	if in[0].ID != "c" {
		t.Error("sortedEntries modified its input")
	}
}
