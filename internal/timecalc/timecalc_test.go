package timecalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/timecalc"
)

func date(y int, m time.Month, d, h, min, s, ms int) time.Time {
	return time.Date(y, m, d, h, min, s, ms*int(time.Millisecond), time.UTC)
}

func TestResolve(t *testing.T) {
	r := timecalc.NewResolver(time.UTC)

	tests := []struct {
		name      string
		mode      model.ViewMode
		sel       timecalc.Selection
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "day",
			mode:      model.ViewDay,
			sel:       timecalc.Selection{From: "2024-09-15"},
			wantStart: date(2024, 9, 15, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 15, 23, 59, 59, 999),
		},
		{
			name:      "day ignores explicit end",
			mode:      model.ViewDay,
			sel:       timecalc.Selection{From: "2024-09-15", To: "2024-09-20"},
			wantStart: date(2024, 9, 15, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 15, 23, 59, 59, 999),
		},
		{
			name:      "month in leap year",
			mode:      model.ViewMonth,
			sel:       timecalc.Selection{From: "2024-02-10"},
			wantStart: date(2024, 2, 1, 0, 0, 0, 0),
			wantEnd:   date(2024, 2, 29, 23, 59, 59, 999),
		},
		{
			name:      "month in common year",
			mode:      model.ViewMonth,
			sel:       timecalc.Selection{From: "2023-02-28"},
			wantStart: date(2023, 2, 1, 0, 0, 0, 0),
			wantEnd:   date(2023, 2, 28, 23, 59, 59, 999),
		},
		{
			name:      "december rolls into next year boundary",
			mode:      model.ViewMonth,
			sel:       timecalc.Selection{From: "2024-12-31"},
			wantStart: date(2024, 12, 1, 0, 0, 0, 0),
			wantEnd:   date(2024, 12, 31, 23, 59, 59, 999),
		},
		{
			name:      "week with explicit range",
			mode:      model.ViewWeek,
			sel:       timecalc.Selection{From: "2024-09-04", To: "2024-09-12"},
			wantStart: date(2024, 9, 4, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 12, 23, 59, 59, 999),
		},
		{
			name:      "week with single date uses sunday calendar week",
			mode:      model.ViewWeek,
			sel:       timecalc.Selection{From: "2026-02-27"},
			wantStart: date(2026, 2, 22, 0, 0, 0, 0),
			wantEnd:   date(2026, 2, 28, 23, 59, 59, 999),
		},
		{
			name:      "midweek date",
			mode:      model.ViewWeek,
			sel:       timecalc.Selection{From: "2024-09-04"},
			wantStart: date(2024, 9, 1, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 7, 23, 59, 59, 999),
		},
		{
			name:      "sunday starts its own week",
			mode:      model.ViewWeek,
			sel:       timecalc.Selection{From: "2024-09-01"},
			wantStart: date(2024, 9, 1, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 7, 23, 59, 59, 999),
		},
		{
			name:      "week single day range",
			mode:      model.ViewWeek,
			sel:       timecalc.Selection{From: "2024-09-04", To: "2024-09-04"},
			wantStart: date(2024, 9, 4, 0, 0, 0, 0),
			wantEnd:   date(2024, 9, 4, 23, 59, 59, 999),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.mode, tt.sel)
			require.NoError(t, err)
			assert.True(t, got.Start.Equal(tt.wantStart), "start = %v, want %v", got.Start, tt.wantStart)
			assert.True(t, got.End.Equal(tt.wantEnd), "end = %v, want %v", got.End, tt.wantEnd)
		})
	}
}

func TestResolveMondayWeeks(t *testing.T) {
	r := timecalc.Resolver{Location: time.UTC, WeekStart: time.Monday}
	got, err := r.Resolve(model.ViewWeek, timecalc.Selection{From: "2026-02-27"})
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(date(2026, 2, 23, 0, 0, 0, 0)))
	assert.True(t, got.End.Equal(date(2026, 3, 1, 23, 59, 59, 999)))
}

func TestResolveErrors(t *testing.T) {
	r := timecalc.NewResolver(time.UTC)

	_, err := r.Resolve(model.ViewDay, timecalc.Selection{From: ""})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)

	_, err = r.Resolve(model.ViewMonth, timecalc.Selection{From: "2024-13-01"})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)

	_, err = r.Resolve(model.ViewWeek, timecalc.Selection{From: "2024-09-01", To: "not-a-date"})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)

	_, err = r.Resolve(model.ViewWeek, timecalc.Selection{From: "2024-09-10", To: "2024-09-01"})
	assert.ErrorIs(t, err, timecalc.ErrInvertedRange)

	_, err = r.Resolve(model.ViewMode("year"), timecalc.Selection{From: "2024-09-10"})
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	got, err := timecalc.At("2024-01-01", "09:30", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(date(2024, 1, 1, 9, 30, 0, 0)))

	_, err = timecalc.At("2024-01-01", "25:00", time.UTC)
	assert.ErrorIs(t, err, timecalc.ErrInvalidClock)

	_, err = timecalc.At("01/01/2024", "09:00", time.UTC)
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri, time.Monday)

	assert.True(t, monday.Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)), "monday = %v", monday)
	assert.True(t, sunday.Equal(date(2026, 3, 1, 23, 59, 59, 999)), "sunday = %v", sunday)

	// A Sunday belongs to the week that started the Monday before.
	sun := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	monday, _ = timecalc.WeekRange(sun, time.Monday)
	assert.True(t, monday.Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)))
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W09", timecalc.ISOWeekLabel(fri))
}

func TestLabel(t *testing.T) {
	r := timecalc.NewResolver(time.UTC)

	week, err := r.Resolve(model.ViewWeek, timecalc.Selection{From: "2026-02-27"})
	require.NoError(t, err)
	assert.Equal(t, "Week of 2026-02-22", timecalc.Label(model.ViewWeek, week))

	iso := timecalc.Resolver{Location: time.UTC, WeekStart: time.Monday}
	week, err = iso.Resolve(model.ViewWeek, timecalc.Selection{From: "2026-02-27"})
	require.NoError(t, err)
	assert.Equal(t, "Week 2026-W09", timecalc.Label(model.ViewWeek, week))

	month, err := r.Resolve(model.ViewMonth, timecalc.Selection{From: "2024-02-10"})
	require.NoError(t, err)
	assert.Equal(t, "February 2024", timecalc.Label(model.ViewMonth, month))

	custom, err := r.Resolve(model.ViewWeek, timecalc.Selection{From: "2024-09-04", To: "2024-09-12"})
	require.NoError(t, err)
	assert.Equal(t, "2024-09-04 → 2024-09-12", timecalc.Label(model.ViewWeek, custom))
}
