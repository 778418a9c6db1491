// ABOUTME: Tests for export and import.
// ABOUTME: Verifies JSON, YAML, and Markdown output and duplicate-safe import.
package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
)

var now = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func newTracker() *tracker.Tracker {
	return tracker.New(kv.NewMemory(), tracker.Options{
		Clock:    func() time.Time { return now },
		Location: time.UTC,
	})
}

func seed(t *testing.T, tr *tracker.Tracker) {
	t.Helper()
	ctx := context.Background()

	g := models.NewGlucoseReading(105, models.MealBeforeMeal, now.Add(-time.Hour))
	g.WithNotes("pre | lunch")
	_, err := tr.Glucose.Save(ctx, g)
	require.NoError(t, err)

	_, err = tr.Pressure.Save(ctx, models.NewPressureReading(118, 76, now).WithHeartRate(64))
	require.NoError(t, err)

	_, err = tr.Weight.Save(ctx, models.NewWeightReading(182, models.UnitLbs, now))
	require.NoError(t, err)

	wake := now.Add(-2 * time.Hour)
	_, err = tr.Activity.Save(ctx, models.NewSleep(models.SleepDetails{
		Bedtime:  wake.Add(-8 * time.Hour),
		WakeTime: wake,
		Quality:  "good",
	}))
	require.NoError(t, err)
}

func TestExportJSON(t *testing.T) {
	tr := newTracker()
	seed(t, tr)

	raw, err := Encode(Collect(context.Background(), tr), FormatJSON)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "1.0", got["version"])
	assert.Equal(t, "healthlog", got["tool"])
	assert.Len(t, got["glucose"], 1)
	assert.Len(t, got["pressure"], 1)
	assert.Len(t, got["weight"], 1)
	assert.Len(t, got["activity"], 1)
}

func TestExportEmptyHasArrays(t *testing.T) {
	raw, err := Encode(Collect(context.Background(), newTracker()), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"glucose": []`)
}

func TestExportYAML(t *testing.T) {
	tr := newTracker()
	seed(t, tr)

	raw, err := Encode(Collect(context.Background(), tr), FormatYAML)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, "1.0", got["version"])
	assert.Contains(t, string(raw), "mealContext: before-meal")
}

func TestExportMarkdown(t *testing.T) {
	tr := newTracker()
	seed(t, tr)

	raw, err := Encode(Collect(context.Background(), tr), FormatMarkdown)
	require.NoError(t, err)
	md := string(raw)

	assert.True(t, strings.HasPrefix(md, "# Health Export - 2025-05-01"))
	assert.Contains(t, md, "## Blood Sugar")
	assert.Contains(t, md, `pre \| lunch`)
	assert.Contains(t, md, "118/76 mmHg")
	assert.Contains(t, md, "182.0 lbs")
	assert.Contains(t, md, "| sleep | Sleep | 480 min |")
}

func TestRoundTripIntoFreshStore(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			src := newTracker()
			seed(t, src)

			raw, err := Encode(Collect(ctx, src), format)
			require.NoError(t, err)
			data, err := Decode(raw)
			require.NoError(t, err)

			dst := newTracker()
			res, err := Import(ctx, dst, data)
			require.NoError(t, err)
			assert.Equal(t, 4, res.Total())

			want := src.Glucose.GetAll(ctx)[0]
			got := dst.Glucose.GetAll(ctx)[0]
			assert.Equal(t, want.ID, got.ID)
			assert.True(t, want.Timestamp.Equal(got.Timestamp))
			assert.Equal(t, want.NotesText(), got.NotesText())

			sleep := dst.Activity.GetAll(ctx)[0]
			require.NotNil(t, sleep.Sleep)
			assert.Equal(t, models.ActivitySleep, sleep.Type)
			assert.Equal(t, 8.0, sleep.Sleep.Hours())

			res, err = Import(ctx, dst, data)
			require.NoError(t, err)
			assert.Zero(t, res.Total(), "re-import adds nothing")
		})
	}
}

func TestImportRejectsMismatchedActivity(t *testing.T) {
	ctx := context.Background()
	tr := newTracker()

	bad := models.NewMeal("Lunch", models.MealDetails{}, now)
	bad.ID = "bad"
	bad.Sleep = &models.SleepDetails{}

	_, err := Import(ctx, tr, &Data{
		Glucose:  []*models.GlucoseReading{models.NewGlucoseReading(90, "", now)},
		Activity: []*models.ActivityEntry{bad},
	})
	require.ErrorIs(t, err, models.ErrVariantMismatch)
	assert.Empty(t, tr.Glucose.GetAll(ctx))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YML": FormatYAML, "md": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}
