// ABOUTME: Tracker facade: wires the four metric repositories over one store.
// ABOUTME: Entry point for the CLI and MCP server.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/classify"
	"github.com/harperreed/healthlog/internal/gateway"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/repository"
	"github.com/harperreed/healthlog/internal/stats"
)

// Options configures a Tracker. The zero value uses time.Now, local time,
// kg display and no logging.
type Options struct {
	Clock    repository.Clock
	Location *time.Location
	Logger   *zap.Logger
	// HeightCm is used for BMI; nil falls back to the reference height.
	HeightCm *float64
	// WeightUnit is the unit weight statistics are reported in.
	WeightUnit models.WeightUnit
}

// Tracker holds one repository per metric.
type Tracker struct {
	Glucose  *repository.Repository[*models.GlucoseReading]
	Pressure *repository.Repository[*models.PressureReading]
	Weight   *repository.Repository[*models.WeightReading]
	Activity *repository.Repository[*models.ActivityEntry]

	gw         *gateway.Gateway
	clock      repository.Clock
	location   *time.Location
	heightCm   *float64
	weightUnit models.WeightUnit
	logger     *zap.Logger
}

// New creates a tracker over store.
func New(store kv.Store, opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.WeightUnit == "" {
		opts.WeightUnit = models.UnitKg
	}
	logger := logging.OrNop(opts.Logger)

	gw := gateway.New(store, logger)
	repoOpts := []repository.Option{
		repository.WithClock(opts.Clock),
		repository.WithLocation(opts.Location),
		repository.WithLogger(logger),
	}

	return &Tracker{
		Glucose:    repository.New[*models.GlucoseReading](gw, models.MetricGlucose, repoOpts...),
		Pressure:   repository.New[*models.PressureReading](gw, models.MetricPressure, repoOpts...),
		Weight:     repository.New[*models.WeightReading](gw, models.MetricWeight, repoOpts...),
		Activity:   repository.New[*models.ActivityEntry](gw, models.MetricActivity, repoOpts...),
		gw:         gw,
		clock:      opts.Clock,
		location:   opts.Location,
		heightCm:   opts.HeightCm,
		weightUnit: opts.WeightUnit,
		logger:     logger.Named(logging.NameTracker),
	}
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.clock()
}

// Location returns the zone used for calendar days.
func (t *Tracker) Location() *time.Location {
	return t.location
}

// WeightUnit returns the unit weight statistics are reported in.
func (t *Tracker) WeightUnit() models.WeightUnit {
	return t.weightUnit
}

// Diagnostics returns collections that failed to load since startup.
func (t *Tracker) Diagnostics() []gateway.Diagnostic {
	return t.gw.Diagnostics()
}

// Range selects which readings a listing returns. Today wins over Days;
// neither set means everything.
type Range struct {
	Days  int
	Today bool
}

func selectRange[T models.Reading](ctx context.Context, repo *repository.Repository[T], r Range) []T {
	switch {
	case r.Today:
		return repo.GetToday(ctx)
	case r.Days > 0:
		start, end := stats.Window(repo.Now(), r.Days)
		return repo.GetByDateRange(ctx, start, end)
	}
	return repo.GetAll(ctx)
}

func toReadings[T models.Reading](in []T) []models.Reading {
	out := make([]models.Reading, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// List returns the readings of one metric within r.
func (t *Tracker) List(ctx context.Context, metric models.Metric, r Range) ([]models.Reading, error) {
	switch metric {
	case models.MetricGlucose:
		return toReadings(selectRange(ctx, t.Glucose, r)), nil
	case models.MetricPressure:
		return toReadings(selectRange(ctx, t.Pressure, r)), nil
	case models.MetricWeight:
		return toReadings(selectRange(ctx, t.Weight, r)), nil
	case models.MetricActivity:
		return toReadings(selectRange(ctx, t.Activity, r)), nil
	}
	return nil, fmt.Errorf("unknown metric: %s", metric)
}

// NewestFirst sorts readings by descending timestamp, keeping storage
// order among equal timestamps.
func NewestFirst(readings []models.Reading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].GetTimestamp().After(readings[j].GetTimestamp())
	})
}

func latest[T models.Reading](ctx context.Context, repo *repository.Repository[T]) (models.Reading, bool) {
	r, ok := repo.GetLatest(ctx)
	if !ok {
		return nil, false
	}
	return r, true
}

// Latest returns the most recent reading of one metric.
func (t *Tracker) Latest(ctx context.Context, metric models.Metric) (models.Reading, bool, error) {
	var (
		r  models.Reading
		ok bool
	)
	switch metric {
	case models.MetricGlucose:
		r, ok = latest(ctx, t.Glucose)
	case models.MetricPressure:
		r, ok = latest(ctx, t.Pressure)
	case models.MetricWeight:
		r, ok = latest(ctx, t.Weight)
	case models.MetricActivity:
		r, ok = latest(ctx, t.Activity)
	default:
		return nil, false, fmt.Errorf("unknown metric: %s", metric)
	}
	return r, ok, nil
}

// Delete removes one reading. Unknown IDs are not an error.
func (t *Tracker) Delete(ctx context.Context, metric models.Metric, id string) error {
	switch metric {
	case models.MetricGlucose:
		return t.Glucose.Delete(ctx, id)
	case models.MetricPressure:
		return t.Pressure.Delete(ctx, id)
	case models.MetricWeight:
		return t.Weight.Delete(ctx, id)
	case models.MetricActivity:
		return t.Activity.Delete(ctx, id)
	}
	return fmt.Errorf("unknown metric: %s", metric)
}

// Classify returns the classification of a reading, or false for readings
// that have none (activities).
func (t *Tracker) Classify(r models.Reading) (classify.Result, bool) {
	switch v := r.(type) {
	case *models.GlucoseReading:
		return classify.GlucoseReading(v), true
	case *models.PressureReading:
		return classify.PressureReading(v), true
	case *models.WeightReading:
		return classify.WeightReading(v, t.heightCm), true
	}
	return classify.Result{}, false
}

// ActivitiesByType returns every activity of one type.
func (t *Tracker) ActivitiesByType(ctx context.Context, at models.ActivityType) []*models.ActivityEntry {
	return t.Activity.Filter(ctx, func(e *models.ActivityEntry) bool {
		return e.Type == at
	})
}

// SearchActivities matches query case-insensitively against activity
// names and notes.
func (t *Tracker) SearchActivities(ctx context.Context, query string) []*models.ActivityEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	return t.Activity.Filter(ctx, func(e *models.ActivityEntry) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.NotesText()), q)
	})
}
