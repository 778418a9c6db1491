// ABOUTME: Statistics over loaded readings: averages, first/last trends, and streaks.
// ABOUTME: Pure functions with no I/O; callers supply already-filtered data.
package stats

import (
	"math"
	"sort"
	"time"
)

// Direction is the sign of a trend.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// StableThresholdPct is the absolute percentage change below which a trend is stable.
const StableThresholdPct = 1.0

// Point is one timestamped value.
type Point struct {
	At    time.Time
	Value float64
}

// TrendResult describes the change between the first and last points.
type TrendResult struct {
	Direction        Direction `json:"trend"`
	Change           float64   `json:"change"`
	ChangePercentage float64   `json:"changePercentage"`
	First            Point     `json:"-"`
	Last             Point     `json:"-"`
}

// Average returns the arithmetic mean, or false for no values.
func Average(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Trend compares the chronologically first and last points. It needs at
// least two points.
func Trend(points []Point) (TrendResult, bool) {
	if len(points) < 2 {
		return TrendResult{}, false
	}

	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	change := last.Value - first.Value

	// A zero baseline has no defined percentage; report 0 and take the
	// direction from the sign of the change.
	var pct float64
	if first.Value != 0 {
		pct = change / first.Value * 100
	}

	var dir Direction
	switch {
	case change == 0, first.Value != 0 && math.Abs(pct) < StableThresholdPct:
		dir = Stable
	case change > 0:
		dir = Increasing
	default:
		dir = Decreasing
	}

	return TrendResult{
		Direction:        dir,
		Change:           change,
		ChangePercentage: pct,
		First:            first,
		Last:             last,
	}, true
}

// DayStart returns the first instant of the calendar day y-m-d in loc.
// Out-of-range days normalise as in time.Date. Where a DST change skips
// midnight, the day starts when the clock jumps forward.
func DayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	y, m, d = noon.Date()

	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if _, _, got := t.Date(); got != d {
		_, before := t.Zone()
		_, after := noon.Zone()
		t = t.Add(time.Duration(after-before) * time.Second)
	}
	return t
}

// StartOfDay returns the first instant of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return DayStart(y, m, d, loc)
}

// DayBounds returns the first and last instants of t's calendar day in loc.
func DayBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := t.In(loc).Date()
	return DayStart(y, m, d, loc), DayStart(y, m, d+1, loc).Add(-time.Nanosecond)
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{y, m, d}
}

// Streak counts consecutive calendar days in loc, ending today, that have
// at least one timestamp. Multiple timestamps on a day count once. A day
// without any timestamp ends the streak; no entry today means zero.
func Streak(times []time.Time, now time.Time, loc *time.Location) int {
	days := make(map[civilDay]bool, len(times))
	for _, t := range times {
		days[dayOf(t, loc)] = true
	}

	streak := 0
	for day := dayOf(now, loc); days[day]; {
		streak++
		// Noon always exists, so stepping from it never skips or repeats a day.
		day = dayOf(time.Date(day.year, day.month, day.day-1, 12, 0, 0, 0, loc), loc)
	}
	return streak
}

// Window returns the [now-days, now] bounds used by period statistics.
func Window(now time.Time, days int) (start, end time.Time) {
	return now.AddDate(0, 0, -days), now
}
