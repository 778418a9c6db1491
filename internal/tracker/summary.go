// ABOUTME: Cross-metric dashboard summary.
// ABOUTME: Loads every metric concurrently with an errgroup.
package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/healthlog/internal/classify"
	"github.com/harperreed/healthlog/internal/models"
)

// MetricOverview is one metric's block in a Summary.
type MetricOverview struct {
	MetricStats
	Latest         models.Reading   `json:"latest,omitempty"`
	Classification *classify.Result `json:"classification,omitempty"`
	Streak         int              `json:"streak"`
}

// Summary is the dashboard across all metrics.
type Summary struct {
	Days        int            `json:"days"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Glucose     MetricOverview `json:"glucose"`
	Pressure    MetricOverview `json:"pressure"`
	Weight      MetricOverview `json:"weight"`
	Activity    MetricOverview `json:"activity"`
}

func (t *Tracker) overview(ctx context.Context, metric models.Metric, days int) (MetricOverview, error) {
	ms, err := t.Stats(ctx, metric, days)
	if err != nil {
		return MetricOverview{}, err
	}
	ov := MetricOverview{MetricStats: ms}

	latest, ok, err := t.Latest(ctx, metric)
	if err != nil {
		return MetricOverview{}, err
	}
	if ok {
		ov.Latest = latest
		if c, ok := t.Classify(latest); ok {
			ov.Classification = &c
		}
	}

	if ov.Streak, err = t.Streak(ctx, metric); err != nil {
		return MetricOverview{}, err
	}
	return ov, ctx.Err()
}

// Summary reports every metric over the last days.
func (t *Tracker) Summary(ctx context.Context, days int) (Summary, error) {
	s := Summary{Days: days, GeneratedAt: t.clock()}

	targets := map[models.Metric]*MetricOverview{
		models.MetricGlucose:  &s.Glucose,
		models.MetricPressure: &s.Pressure,
		models.MetricWeight:   &s.Weight,
		models.MetricActivity: &s.Activity,
	}

	g, gctx := errgroup.WithContext(ctx)
	for metric, dst := range targets {
		g.Go(func() error {
			ov, err := t.overview(gctx, metric, days)
			if err != nil {
				return fmt.Errorf("summarise %s: %w", metric, err)
			}
			*dst = ov
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	t.logger.Debug("built summary", zap.Int("days", days))
	return s, nil
}
