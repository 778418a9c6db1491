// ABOUTME: Generic reading repository: CRUD and date queries over one metric's collection.
// ABOUTME: Built on the persistence gateway; performs no validation of its own.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/gateway"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/stats"
)

// Clock returns the current time.
type Clock func() time.Time

// Patch merges a partial update into a reading.
type Patch[T models.Reading] interface {
	Apply(r T) error
}

type options struct {
	clock    Clock
	location *time.Location
	logger   *zap.Logger
	newID    func() string
}

// Option configures a Repository.
type Option func(*options)

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLocation sets the zone used for calendar-day queries.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// WithLogger sets the parent logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// Repository stores readings of one metric. It keeps no state between
// calls; every operation re-reads the collection.
type Repository[T models.Reading] struct {
	metric models.Metric
	coll   *gateway.Collection[T]
	opts   options
	logger *zap.Logger
}

// New creates the repository for metric over g.
func New[T models.Reading](g *gateway.Gateway, metric models.Metric, opts ...Option) *Repository[T] {
	o := options{
		clock:    time.Now,
		location: time.Local,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository[T]{
		metric: metric,
		coll:   gateway.NewCollection[T](g, models.StorageKeys[metric]),
		opts:   o,
		logger: logging.OrNop(o.logger).Named(logging.NameRepository).With(zap.String("metric", string(metric))),
	}
}

// Metric returns the metric this repository stores.
func (r *Repository[T]) Metric() models.Metric {
	return r.metric
}

// Now returns the repository clock's current time.
func (r *Repository[T]) Now() time.Time {
	return r.opts.clock()
}

// Location returns the zone used for calendar-day queries.
func (r *Repository[T]) Location() *time.Location {
	return r.opts.location
}

// Save assigns a new ID, sets a zero timestamp to now, and appends the
// reading to the collection. If the write fails the reading is left as it
// was passed in.
func (r *Repository[T]) Save(ctx context.Context, reading T) (T, error) {
	prevID, prevTS := reading.GetID(), reading.GetTimestamp()

	reading.SetID(r.opts.newID())
	if prevTS.IsZero() {
		reading.SetTimestamp(r.opts.clock())
	}

	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		return append(items, reading), nil
	})
	if err != nil {
		reading.SetID(prevID)
		reading.SetTimestamp(prevTS)
		var zero T
		return zero, fmt.Errorf("save %s reading: %w", r.metric, err)
	}

	r.logger.Debug("saved reading", zap.String("id", reading.GetID()))
	return reading, nil
}

// GetAll returns every reading in storage order.
func (r *Repository[T]) GetAll(ctx context.Context) []T {
	items := r.coll.Load(ctx)
	if items == nil {
		return []T{}
	}
	return items
}

// Get returns the reading with the given ID.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, bool) {
	for _, item := range r.GetAll(ctx) {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the readings matching keep, in storage order.
func (r *Repository[T]) Filter(ctx context.Context, keep func(T) bool) []T {
	out := []T{}
	for _, item := range r.GetAll(ctx) {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// GetByDateRange returns readings with start <= timestamp <= end.
func (r *Repository[T]) GetByDateRange(ctx context.Context, start, end time.Time) []T {
	return r.Filter(ctx, func(item T) bool {
		ts := item.GetTimestamp()
		return !ts.Before(start) && !ts.After(end)
	})
}

// GetToday returns readings from the start of the local calendar day up to,
// not including, the start of the next one.
func (r *Repository[T]) GetToday(ctx context.Context) []T {
	start, end := stats.DayBounds(r.opts.clock(), r.opts.location)
	return r.GetByDateRange(ctx, start, end)
}

// GetLatest returns the reading with the greatest timestamp. Among equal
// timestamps the earliest stored wins.
func (r *Repository[T]) GetLatest(ctx context.Context) (T, bool) {
	var latest T
	found := false
	for _, item := range r.GetAll(ctx) {
		if !found || item.GetTimestamp().After(latest.GetTimestamp()) {
			latest = item
			found = true
		}
	}
	return latest, found
}

// Update merges patch into the reading with the given ID. The ID is kept
// regardless of what the patch does. Returns false if no reading matches.
func (r *Repository[T]) Update(ctx context.Context, id string, patch Patch[T]) (T, bool, error) {
	var updated T
	found := false

	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		for _, item := range items {
			if item.GetID() != id {
				continue
			}
			if err := patch.Apply(item); err != nil {
				return nil, err
			}
			item.SetID(id)
			updated, found = item, true
			return items, nil
		}
		return nil, errNoMatch
	})

	var zero T
	switch {
	case err == errNoMatch:
		return zero, false, nil
	case err != nil:
		return zero, false, fmt.Errorf("update %s reading %s: %w", r.metric, id, err)
	}

	r.logger.Debug("updated reading", zap.String("id", id))
	return updated, found, nil
}

// Delete removes the reading with the given ID. Deleting an unknown ID is
// a no-op and writes nothing.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if item.GetID() != id {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			return nil, errNoMatch
		}
		return kept, nil
	})
	if err == errNoMatch {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %s reading %s: %w", r.metric, id, err)
	}

	r.logger.Debug("deleted reading", zap.String("id", id))
	return nil
}

// Import appends readings whose IDs are not already stored, keeping their
// IDs. Readings without an ID are given one. Returns the number added.
func (r *Repository[T]) Import(ctx context.Context, readings []T) (int, error) {
	added := 0
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			seen[item.GetID()] = true
		}
		for _, reading := range readings {
			if reading.GetID() == "" {
				reading.SetID(r.opts.newID())
			}
			if seen[reading.GetID()] {
				continue
			}
			seen[reading.GetID()] = true
			items = append(items, reading)
			added++
		}
		if added == 0 {
			return nil, errNoMatch
		}
		return items, nil
	})
	if err == errNoMatch {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("import %s readings: %w", r.metric, err)
	}
	return added, nil
}
