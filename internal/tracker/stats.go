// ABOUTME: Period statistics: averages, trends, and streaks per metric.
// ABOUTME: Windows are [now-days, now]; weights are normalised before averaging.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/repository"
	"github.com/harperreed/healthlog/internal/stats"
)

// PressureAverage is the mean systolic and diastolic pressure of a period.
type PressureAverage struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

func (t *Tracker) window(days int) (time.Time, time.Time) {
	return stats.Window(t.clock(), days)
}

func inWindow[T models.Reading](ctx context.Context, repo *repository.Repository[T], start, end time.Time) []T {
	return repo.GetByDateRange(ctx, start, end)
}

// AverageGlucose returns the mean glucose value over the last days.
func (t *Tracker) AverageGlucose(ctx context.Context, days int) (float64, bool) {
	start, end := t.window(days)
	return averageGlucose(inWindow(ctx, t.Glucose, start, end))
}

// AveragePressure returns the mean systolic and diastolic over the last days.
func (t *Tracker) AveragePressure(ctx context.Context, days int) (PressureAverage, bool) {
	start, end := t.window(days)
	return averagePressure(inWindow(ctx, t.Pressure, start, end))
}

// AverageWeight returns the mean weight in kg over the last days. Readings
// recorded in lbs are converted first.
func (t *Tracker) AverageWeight(ctx context.Context, days int) (float64, bool) {
	start, end := t.window(days)
	return averageWeight(inWindow(ctx, t.Weight, start, end), models.UnitKg)
}

// GlucoseTrend compares the first and last glucose values of the period.
func (t *Tracker) GlucoseTrend(ctx context.Context, days int) (stats.TrendResult, bool) {
	start, end := t.window(days)
	return glucoseTrend(inWindow(ctx, t.Glucose, start, end))
}

// PressureTrend compares the first and last systolic values of the period.
func (t *Tracker) PressureTrend(ctx context.Context, days int) (stats.TrendResult, bool) {
	start, end := t.window(days)
	return pressureTrend(inWindow(ctx, t.Pressure, start, end))
}

// WeightTrend compares the first and last weights of the period in kg.
func (t *Tracker) WeightTrend(ctx context.Context, days int) (stats.TrendResult, bool) {
	start, end := t.window(days)
	return weightTrend(inWindow(ctx, t.Weight, start, end), models.UnitKg)
}

func averageGlucose(items []*models.GlucoseReading) (float64, bool) {
	values := make([]float64, len(items))
	for i, r := range items {
		values[i] = r.Value
	}
	return stats.Average(values)
}

func averagePressure(items []*models.PressureReading) (PressureAverage, bool) {
	sys := make([]float64, len(items))
	dia := make([]float64, len(items))
	for i, r := range items {
		sys[i], dia[i] = r.Systolic, r.Diastolic
	}
	s, ok := stats.Average(sys)
	if !ok {
		return PressureAverage{}, false
	}
	d, _ := stats.Average(dia)
	return PressureAverage{Systolic: s, Diastolic: d}, true
}

func averageWeight(items []*models.WeightReading, unit models.WeightUnit) (float64, bool) {
	values := make([]float64, len(items))
	for i, r := range items {
		values[i] = r.In(unit)
	}
	return stats.Average(values)
}

func glucoseTrend(items []*models.GlucoseReading) (stats.TrendResult, bool) {
	points := make([]stats.Point, len(items))
	for i, r := range items {
		points[i] = stats.Point{At: r.Timestamp, Value: r.Value}
	}
	return stats.Trend(points)
}

func pressureTrend(items []*models.PressureReading) (stats.TrendResult, bool) {
	points := make([]stats.Point, len(items))
	for i, r := range items {
		points[i] = stats.Point{At: r.Timestamp, Value: r.Systolic}
	}
	return stats.Trend(points)
}

func weightTrend(items []*models.WeightReading, unit models.WeightUnit) (stats.TrendResult, bool) {
	points := make([]stats.Point, len(items))
	for i, r := range items {
		points[i] = stats.Point{At: r.Timestamp, Value: r.In(unit)}
	}
	return stats.Trend(points)
}

func timestamps[T models.Reading](items []T) []time.Time {
	out := make([]time.Time, len(items))
	for i, r := range items {
		out[i] = r.GetTimestamp()
	}
	return out
}

// Streak counts consecutive local days, ending today, with at least one
// reading of metric.
func (t *Tracker) Streak(ctx context.Context, metric models.Metric) (int, error) {
	var times []time.Time
	switch metric {
	case models.MetricGlucose:
		times = timestamps(t.Glucose.GetAll(ctx))
	case models.MetricPressure:
		times = timestamps(t.Pressure.GetAll(ctx))
	case models.MetricWeight:
		times = timestamps(t.Weight.GetAll(ctx))
	case models.MetricActivity:
		times = timestamps(t.Activity.GetAll(ctx))
	default:
		return 0, fmt.Errorf("unknown metric: %s", metric)
	}
	return stats.Streak(times, t.clock(), t.location), nil
}

// ActivityStreak counts consecutive local days, ending today, with at
// least one activity of type at.
func (t *Tracker) ActivityStreak(ctx context.Context, at models.ActivityType) int {
	return stats.Streak(timestamps(t.ActivitiesByType(ctx, at)), t.clock(), t.location)
}

// ActivityStats totals the activities of the last days.
func (t *Tracker) ActivityStats(ctx context.Context, days int) stats.ActivitySummary {
	start, end := t.window(days)
	return stats.SummarizeActivities(inWindow(ctx, t.Activity, start, end))
}

// MetricStats is the period report for one metric.
type MetricStats struct {
	Metric models.Metric `json:"metric"`
	Days   int           `json:"days"`
	Count  int           `json:"count"`
	// Average is systolic for pressure and in Unit for weight.
	Average          *float64               `json:"average,omitempty"`
	AverageDiastolic *float64               `json:"averageDiastolic,omitempty"`
	Unit             string                 `json:"unit,omitempty"`
	Trend            *stats.TrendResult     `json:"trend,omitempty"`
	Activity         *stats.ActivitySummary `json:"activity,omitempty"`
}

func ptr[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// Stats builds the period report for metric over the last days. Each
// collection is read once and every figure comes from the same window.
func (t *Tracker) Stats(ctx context.Context, metric models.Metric, days int) (MetricStats, error) {
	start, end := t.window(days)
	ms := MetricStats{Metric: metric, Days: days}

	switch metric {
	case models.MetricGlucose:
		items := inWindow(ctx, t.Glucose, start, end)
		ms.Count = len(items)
		ms.Unit = "mg/dL"
		ms.Average = ptr(averageGlucose(items))
		ms.Trend = ptr(glucoseTrend(items))
	case models.MetricPressure:
		items := inWindow(ctx, t.Pressure, start, end)
		ms.Count = len(items)
		ms.Unit = "mmHg"
		if avg, ok := averagePressure(items); ok {
			ms.Average = &avg.Systolic
			ms.AverageDiastolic = &avg.Diastolic
		}
		ms.Trend = ptr(pressureTrend(items))
	case models.MetricWeight:
		items := inWindow(ctx, t.Weight, start, end)
		ms.Count = len(items)
		ms.Unit = string(t.weightUnit)
		ms.Average = ptr(averageWeight(items, t.weightUnit))
		ms.Trend = ptr(weightTrend(items, t.weightUnit))
	case models.MetricActivity:
		summary := stats.SummarizeActivities(inWindow(ctx, t.Activity, start, end))
		ms.Count = summary.TotalActivities
		ms.Activity = &summary
	default:
		return MetricStats{}, fmt.Errorf("unknown metric: %s", metric)
	}
	return ms, nil
}
