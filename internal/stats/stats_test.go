// ABOUTME: Tests for averages, trends, and streaks.
// ABOUTME: Uses fixed clocks and locations for determinism.
package stats

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	_, ok := Average(nil)
	assert.False(t, ok, "empty input has no average")

	avg, ok := Average([]float64{100, 120})
	require.True(t, ok)
	assert.Equal(t, 110.0, avg)
}

func TestTrendDecreasing(t *testing.T) {
	day0 := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	// Supplied out of order to check chronological sorting.
	points := []Point{
		{At: day0.AddDate(0, 0, 10), Value: 76},
		{At: day0, Value: 80},
	}

	got, ok := Trend(points)
	require.True(t, ok)
	assert.Equal(t, Decreasing, got.Direction)
	assert.Equal(t, -4.0, got.Change)
	assert.InDelta(t, -5.0, got.ChangePercentage, 1e-9)
}

func TestTrendDirections(t *testing.T) {
	day0 := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		first, end float64
		want       Direction
	}{
		{"increasing", 100, 110, Increasing},
		{"stable under one percent", 100, 100.9, Stable},
		{"stable decrease", 100, 99.5, Stable},
		{"two percent drop", 100, 98, Decreasing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Trend([]Point{{At: day0, Value: tt.first}, {At: day0.Add(time.Hour), Value: tt.end}})
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Direction)
		})
	}
}

func TestTrendNeedsTwoPoints(t *testing.T) {
	_, ok := Trend([]Point{{At: time.Now(), Value: 80}})
	assert.False(t, ok)
	_, ok = Trend(nil)
	assert.False(t, ok)
}

func TestTrendFromZero(t *testing.T) {
	got, ok := Trend([]Point{{At: time.Unix(0, 0), Value: 0}, {At: time.Unix(60, 0), Value: 5}})
	require.True(t, ok)
	assert.Equal(t, Increasing, got.Direction)
	assert.Zero(t, got.ChangePercentage)
}

func TestStreak(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
	day := func(offset int, hour int) time.Time {
		return time.Date(2025, 6, 10+offset, hour, 0, 0, 0, loc)
	}

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"three consecutive days then gap", []time.Time{day(0, 9), day(-1, 9), day(-2, 9), day(-4, 9)}, 3},
		{"gap yesterday", []time.Time{day(0, 9), day(-2, 9)}, 1},
		{"nothing today", []time.Time{day(-1, 9), day(-2, 9)}, 0},
		{"multiple readings same day count once", []time.Time{day(0, 7), day(0, 12), day(0, 20), day(-1, 8)}, 2},
		{"unsorted input", []time.Time{day(-2, 9), day(0, 9), day(-1, 9)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.times, now, loc))
		})
	}
}

func TestStreakUsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("east", 9*3600)
	now := time.Date(2025, 6, 10, 1, 0, 0, 0, loc)
	// 23:30 UTC on the 9th is 08:30 on the 10th in loc.
	logged := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, Streak([]time.Time{logged}, now, loc))
}

// Sao Paulo skipped 2018-11-04 00:00, jumping straight to 01:00.
func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestStartOfDayWhenMidnightIsSkipped(t *testing.T) {
	loc := saoPaulo(t)

	got := StartOfDay(time.Date(2018, 11, 4, 12, 0, 0, 0, loc), loc)
	assert.True(t, got.Equal(time.Date(2018, 11, 4, 1, 0, 0, 0, loc)), "got %s", got)
	_, _, d := got.Date()
	assert.Equal(t, 4, d)

	// Ordinary days are unaffected.
	assert.True(t, StartOfDay(time.Date(2018, 11, 5, 9, 0, 0, 0, loc), loc).Equal(time.Date(2018, 11, 5, 0, 0, 0, 0, loc)))
}

func TestDayBoundsAcrossSkippedMidnight(t *testing.T) {
	loc := saoPaulo(t)

	start, end := DayBounds(time.Date(2018, 11, 3, 20, 0, 0, 0, loc), loc)
	assert.True(t, start.Equal(time.Date(2018, 11, 3, 0, 0, 0, 0, loc)))
	assert.True(t, end.Equal(time.Date(2018, 11, 4, 1, 0, 0, 0, loc).Add(-time.Nanosecond)), "got %s", end)

	start, end = DayBounds(time.Date(2018, 11, 4, 10, 0, 0, 0, loc), loc)
	assert.True(t, start.Equal(time.Date(2018, 11, 4, 1, 0, 0, 0, loc)))
	assert.True(t, end.Equal(time.Date(2018, 11, 5, 0, 0, 0, 0, loc).Add(-time.Nanosecond)))
}

func TestStreakAcrossSkippedMidnight(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2018, 11, 5, 12, 0, 0, 0, loc)

	var times []time.Time
	for d := 2; d <= 5; d++ {
		times = append(times, time.Date(2018, 11, d, 12, 0, 0, 0, loc))
	}
	assert.Equal(t, 4, Streak(times, now, loc))

	// An entry made just after the jump still counts for the 4th.
	times[2] = time.Date(2018, 11, 4, 1, 5, 0, 0, loc)
	assert.Equal(t, 4, Streak(times, now, loc))
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	start, end := Window(now, 7)
	assert.Equal(t, time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)
}
