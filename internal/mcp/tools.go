// ABOUTME: MCP tool implementations for the healthlog journal.
// ABOUTME: Logging, listing, deleting, and statistics across all metrics.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/classify"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
	"github.com/harperreed/healthlog/internal/validate"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_glucose",
		Description: "Record a blood sugar reading in mg/dL",
	}, s.handleLogGlucose)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_pressure",
		Description: "Record a blood pressure reading (systolic/diastolic mmHg)",
	}, s.handleLogPressure)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record a body weight reading in kg or lbs",
	}, s.handleLogWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_activity",
		Description: "Record an exercise, meal, medication, sleep, or other activity",
	}, s.handleLogActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_readings",
		Description: "List recent readings of one metric, newest first",
	}, s.handleListReadings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_reading",
		Description: "Delete a reading by ID",
	}, s.handleDeleteReading)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_latest",
		Description: "Get the most recent reading for one or more metrics, with its classification",
	}, s.handleGetLatest)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get averages and trends for a metric, or a summary of all metrics",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_activities",
		Description: "Search activity names and notes",
	}, s.handleSearchActivities)
}

// Tool input/output types

type logGlucoseInput struct {
	Value     float64 `json:"value" jsonschema:"Blood sugar in mg/dL (20-600)"`
	Context   string  `json:"context,omitempty" jsonschema:"Meal context: fasting, before-meal, after-meal, or bedtime"`
	Timestamp string  `json:"timestamp,omitempty" jsonschema:"When the reading was taken (RFC 3339 or YYYY-MM-DD HH:MM), defaults to now"`
	Notes     string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logPressureInput struct {
	Systolic  float64  `json:"systolic" jsonschema:"Systolic pressure in mmHg (60-250)"`
	Diastolic float64  `json:"diastolic" jsonschema:"Diastolic pressure in mmHg (40-150)"`
	HeartRate *float64 `json:"heart_rate,omitempty" jsonschema:"Pulse in bpm"`
	Timestamp string   `json:"timestamp,omitempty" jsonschema:"When the reading was taken, defaults to now"`
	Notes     string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logWeightInput struct {
	Weight     float64  `json:"weight" jsonschema:"Body weight"`
	Unit       string   `json:"unit,omitempty" jsonschema:"kg (default) or lbs"`
	BodyFat    *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	MuscleMass *float64 `json:"muscle_mass,omitempty" jsonschema:"Muscle mass in the same unit as weight"`
	Timestamp  string   `json:"timestamp,omitempty" jsonschema:"When the reading was taken, defaults to now"`
	Notes      string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logActivityInput struct {
	Type         string   `json:"type" jsonschema:"exercise, meal, medication, sleep, or other"`
	Name         string   `json:"name,omitempty" jsonschema:"Activity name; the medication name for medication"`
	Duration     *float64 `json:"duration,omitempty" jsonschema:"Duration in minutes"`
	Calories     *float64 `json:"calories,omitempty" jsonschema:"Calories burned or eaten"`
	ExerciseType string   `json:"exercise_type,omitempty" jsonschema:"Exercise kind, e.g. cardio or strength"`
	Intensity    string   `json:"intensity,omitempty" jsonschema:"Exercise intensity: low, moderate, or high"`
	HeartRate    *float64 `json:"heart_rate,omitempty" jsonschema:"Average exercise heart rate in bpm"`
	MealType     string   `json:"meal_type,omitempty" jsonschema:"breakfast, lunch, dinner, or snack"`
	Carbs        *float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams"`
	Protein      *float64 `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Fat          *float64 `json:"fat,omitempty" jsonschema:"Fat in grams"`
	Dosage       string   `json:"dosage,omitempty" jsonschema:"Medication dosage, e.g. 500mg"`
	Taken        *bool    `json:"taken,omitempty" jsonschema:"Whether the medication was taken (default true)"`
	Bedtime      string   `json:"bedtime,omitempty" jsonschema:"Sleep start time"`
	WakeTime     string   `json:"wake_time,omitempty" jsonschema:"Sleep end time"`
	Quality      string   `json:"quality,omitempty" jsonschema:"Sleep quality: poor, fair, good, or excellent"`
	Timestamp    string   `json:"timestamp,omitempty" jsonschema:"When the activity happened, defaults to now"`
	Notes        string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logOutput struct {
	ID             string `json:"id"`
	Message        string `json:"message"`
	Category       string `json:"category,omitempty"`
	Classification string `json:"classification,omitempty"`
	Color          string `json:"color,omitempty"`
	Note           string `json:"note,omitempty"`
}

type listReadingsInput struct {
	Metric string `json:"metric" jsonschema:"glucose, pressure, weight, or activity"`
	Days   int    `json:"days,omitempty" jsonschema:"Only readings from the last N days"`
	Today  bool   `json:"today,omitempty" jsonschema:"Only readings from today"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteReadingInput struct {
	Metric string `json:"metric" jsonschema:"glucose, pressure, weight, or activity"`
	ID     string `json:"id" jsonschema:"Reading ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getLatestInput struct {
	Metrics []string `json:"metrics,omitempty" jsonschema:"Metrics to get the latest reading for, defaults to all"`
}

type getStatsInput struct {
	Metric string `json:"metric,omitempty" jsonschema:"glucose, pressure, weight, or activity; omit for a summary of all"`
	Days   int    `json:"days,omitempty" jsonschema:"Period in days (default 7)"`
}

type searchActivitiesInput struct {
	Query string `json:"query" jsonschema:"Text to find in activity names and notes"`
	Type  string `json:"type,omitempty" jsonschema:"Only activities of this type"`
}

// readingView pairs a reading with its classification for output.
type readingView struct {
	Reading        models.Reading   `json:"reading"`
	Classification *classify.Result `json:"classification,omitempty"`
}

func (s *Server) view(r models.Reading) readingView {
	v := readingView{Reading: r}
	if c, ok := s.tracker.Classify(r); ok {
		v.Classification = &c
	}
	return v
}

func (s *Server) timestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return models.ParseTimestamp(value, s.tracker.Location())
}

func invalid(res validate.Result) error {
	return fmt.Errorf("invalid reading: %s", res.Error())
}

func (s *Server) logged(metric models.Metric, r models.Reading, message string) logOutput {
	out := logOutput{ID: r.GetID(), Message: message}
	if c, ok := s.tracker.Classify(r); ok {
		out.Category = string(c.Category)
		out.Classification = c.Label
		out.Color = c.Color
		out.Note = c.Note
	}
	s.logger.Info("logged reading", zap.String("metric", string(metric)), zap.String("id", r.GetID()))
	return out
}

// Tool handlers

func (s *Server) handleLogGlucose(ctx context.Context, req *mcp.CallToolRequest, input logGlucoseInput) (*mcp.CallToolResult, logOutput, error) {
	mc, err := models.ParseMealContext(input.Context)
	if err != nil {
		return nil, logOutput{}, err
	}
	at, err := s.timestamp(input.Timestamp)
	if err != nil {
		return nil, logOutput{}, err
	}

	r := models.NewGlucoseReading(input.Value, mc, at)
	r.WithNotes(input.Notes)

	saved, res, err := s.tracker.LogGlucose(ctx, r)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to save reading: %w", err)
	}
	if !res.Valid {
		return nil, logOutput{}, invalid(res)
	}

	return nil, s.logged(models.MetricGlucose, saved,
		fmt.Sprintf("Logged blood sugar %.0f mg/dL (ID: %s)", saved.Value, saved.ID)), nil
}

func (s *Server) handleLogPressure(ctx context.Context, req *mcp.CallToolRequest, input logPressureInput) (*mcp.CallToolResult, logOutput, error) {
	at, err := s.timestamp(input.Timestamp)
	if err != nil {
		return nil, logOutput{}, err
	}

	r := models.NewPressureReading(input.Systolic, input.Diastolic, at)
	r.HeartRate = input.HeartRate
	r.WithNotes(input.Notes)

	saved, res, err := s.tracker.LogPressure(ctx, r)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to save reading: %w", err)
	}
	if !res.Valid {
		return nil, logOutput{}, invalid(res)
	}

	return nil, s.logged(models.MetricPressure, saved,
		fmt.Sprintf("Logged blood pressure %.0f/%.0f mmHg (ID: %s)", saved.Systolic, saved.Diastolic, saved.ID)), nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, logOutput, error) {
	unit, err := models.ParseWeightUnit(input.Unit)
	if err != nil {
		return nil, logOutput{}, err
	}
	at, err := s.timestamp(input.Timestamp)
	if err != nil {
		return nil, logOutput{}, err
	}

	r := models.NewWeightReading(input.Weight, unit, at)
	r.BodyFatPct = input.BodyFat
	r.MuscleMass = input.MuscleMass
	r.WithNotes(input.Notes)

	saved, res, err := s.tracker.LogWeight(ctx, r)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to save reading: %w", err)
	}
	if !res.Valid {
		return nil, logOutput{}, invalid(res)
	}

	return nil, s.logged(models.MetricWeight, saved,
		fmt.Sprintf("Logged weight %.1f %s (ID: %s)", saved.Weight, saved.Unit, saved.ID)), nil
}

func (s *Server) handleLogActivity(ctx context.Context, req *mcp.CallToolRequest, input logActivityInput) (*mcp.CallToolResult, logOutput, error) {
	at, err := models.ParseActivityType(input.Type)
	if err != nil {
		return nil, logOutput{}, err
	}

	fields := models.ActivityFields{
		Duration:     input.Duration,
		Calories:     input.Calories,
		Notes:        input.Notes,
		ExerciseType: input.ExerciseType,
		Intensity:    input.Intensity,
		HeartRate:    input.HeartRate,
		MealType:     input.MealType,
		Carbs:        input.Carbs,
		Protein:      input.Protein,
		Fat:          input.Fat,
		Dosage:       input.Dosage,
		Taken:        input.Taken == nil || *input.Taken,
		Quality:      input.Quality,
	}
	if fields.Timestamp, err = s.timestamp(input.Timestamp); err != nil {
		return nil, logOutput{}, err
	}
	if fields.Bedtime, err = s.timestamp(input.Bedtime); err != nil {
		return nil, logOutput{}, err
	}
	if fields.WakeTime, err = s.timestamp(input.WakeTime); err != nil {
		return nil, logOutput{}, err
	}

	e, err := models.BuildActivity(at, input.Name, fields)
	if err != nil {
		return nil, logOutput{}, err
	}

	saved, res, err := s.tracker.LogActivity(ctx, e)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to save activity: %w", err)
	}
	if !res.Valid {
		return nil, logOutput{}, invalid(res)
	}

	return nil, s.logged(models.MetricActivity, saved,
		fmt.Sprintf("Logged %s: %s (ID: %s)", saved.Type, saved.Name, saved.ID)), nil
}

func (s *Server) handleListReadings(ctx context.Context, req *mcp.CallToolRequest, input listReadingsInput) (*mcp.CallToolResult, any, error) {
	metric, err := models.ParseMetric(input.Metric)
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	readings, err := s.tracker.List(ctx, metric, tracker.Range{Days: input.Days, Today: input.Today})
	if err != nil {
		return nil, nil, err
	}
	if len(readings) == 0 {
		return nil, map[string]any{"message": fmt.Sprintf("No %s readings found.", metric)}, nil
	}

	tracker.NewestFirst(readings)
	total := len(readings)
	if len(readings) > input.Limit {
		readings = readings[:input.Limit]
	}

	views := make([]readingView, len(readings))
	for i, r := range readings {
		views[i] = s.view(r)
	}
	return nil, map[string]any{
		"metric":   metric,
		"total":    total,
		"readings": views,
	}, nil
}

func (s *Server) handleDeleteReading(ctx context.Context, req *mcp.CallToolRequest, input deleteReadingInput) (*mcp.CallToolResult, simpleOutput, error) {
	metric, err := models.ParseMetric(input.Metric)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.tracker.Delete(ctx, metric, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete reading: %w", err)
	}

	s.logger.Info("deleted reading", zap.String("metric", string(metric)), zap.String("id", input.ID))
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s reading: %s", metric, input.ID),
	}, nil
}

func (s *Server) handleGetLatest(ctx context.Context, req *mcp.CallToolRequest, input getLatestInput) (*mcp.CallToolResult, any, error) {
	metrics := models.AllMetrics
	if len(input.Metrics) > 0 {
		metrics = make([]models.Metric, 0, len(input.Metrics))
		for _, name := range input.Metrics {
			m, err := models.ParseMetric(name)
			if err != nil {
				return nil, nil, err
			}
			metrics = append(metrics, m)
		}
	}

	out := make(map[string]any, len(metrics))
	for _, m := range metrics {
		r, ok, err := s.tracker.Latest(ctx, m)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			out[string(m)] = nil
			continue
		}
		out[string(m)] = s.view(r)
	}
	return nil, out, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, any, error) {
	if input.Days <= 0 {
		input.Days = 7
	}

	if input.Metric == "" {
		summary, err := s.tracker.Summary(ctx, input.Days)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build summary: %w", err)
		}
		return nil, summary, nil
	}

	metric, err := models.ParseMetric(input.Metric)
	if err != nil {
		return nil, nil, err
	}
	ms, err := s.tracker.Stats(ctx, metric, input.Days)
	if err != nil {
		return nil, nil, err
	}
	return nil, ms, nil
}

func (s *Server) handleSearchActivities(ctx context.Context, req *mcp.CallToolRequest, input searchActivitiesInput) (*mcp.CallToolResult, any, error) {
	var want models.ActivityType
	if input.Type != "" {
		at, err := models.ParseActivityType(input.Type)
		if err != nil {
			return nil, nil, err
		}
		want = at
	}

	var matches []*models.ActivityEntry
	for _, e := range s.tracker.SearchActivities(ctx, input.Query) {
		if want == "" || e.Type == want {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil, map[string]any{"message": "No matching activities found."}, nil
	}
	return nil, map[string]any{"count": len(matches), "activities": matches}, nil
}
