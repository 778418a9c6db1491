// ABOUTME: Validated logging of new readings.
// ABOUTME: Invalid readings are reported in the result and never stored.
package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/repository"
	"github.com/harperreed/healthlog/internal/validate"
)

func logReading[T models.Reading](
	ctx context.Context,
	t *Tracker,
	repo *repository.Repository[T],
	r T,
	res validate.Result,
) (T, validate.Result, error) {
	var zero T
	if !res.Valid {
		t.logger.Debug("rejected reading",
			zap.String("metric", string(repo.Metric())),
			zap.Strings("errors", res.Errors))
		return zero, res, nil
	}
	saved, err := repo.Save(ctx, r)
	if err != nil {
		return zero, res, err
	}
	return saved, res, nil
}

// LogGlucose validates and stores a glucose reading.
func (t *Tracker) LogGlucose(ctx context.Context, r *models.GlucoseReading) (*models.GlucoseReading, validate.Result, error) {
	return logReading(ctx, t, t.Glucose, r, validate.GlucoseReading(r))
}

// LogPressure validates and stores a blood pressure reading.
func (t *Tracker) LogPressure(ctx context.Context, r *models.PressureReading) (*models.PressureReading, validate.Result, error) {
	return logReading(ctx, t, t.Pressure, r, validate.PressureReading(r))
}

// LogWeight validates and stores a weight reading.
func (t *Tracker) LogWeight(ctx context.Context, r *models.WeightReading) (*models.WeightReading, validate.Result, error) {
	return logReading(ctx, t, t.Weight, r, validate.WeightReading(r))
}

// LogActivity validates and stores an activity entry.
func (t *Tracker) LogActivity(ctx context.Context, e *models.ActivityEntry) (*models.ActivityEntry, validate.Result, error) {
	return logReading(ctx, t, t.Activity, e, validate.Activity(e))
}
