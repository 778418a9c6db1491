// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
)

var testNow = time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

// setupTestServer creates a server over an in-memory store.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tr := tracker.New(kv.NewMemory(), tracker.Options{
		Clock:    func() time.Time { return testNow },
		Location: time.UTC,
	})
	server, err := NewServer(tr, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.tracker == nil {
		t.Error("Expected non-nil tracker")
	}
}

func TestHandleLogGlucose(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logGlucoseInput
		wantErr   bool
		errSubstr string
		category  string
	}{
		{
			name:     "fasting normal",
			input:    logGlucoseInput{Value: 92, Context: "fasting"},
			category: "normal",
		},
		{
			name:     "after meal high",
			input:    logGlucoseInput{Value: 210, Context: "after-meal", Notes: "pizza"},
			category: "high",
		},
		{
			name:     "with simple timestamp",
			input:    logGlucoseInput{Value: 65, Timestamp: "2025-06-01 07:30"},
			category: "low",
		},
		{
			name:      "out of range",
			input:     logGlucoseInput{Value: 900},
			wantErr:   true,
			errSubstr: "Value should be between 20-600 mg/dL",
		},
		{
			name:      "unknown context",
			input:     logGlucoseInput{Value: 100, Context: "brunch"},
			wantErr:   true,
			errSubstr: "unknown meal context",
		},
		{
			name:      "bad timestamp",
			input:     logGlucoseInput{Value: 100, Timestamp: "last tuesday"},
			wantErr:   true,
			errSubstr: "invalid timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogGlucose(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if output.Category != tt.category {
				t.Errorf("Category = %q, want %q", output.Category, tt.category)
			}
		})
	}

	if got := len(server.tracker.Glucose.GetAll(ctx)); got != 3 {
		t.Errorf("stored %d readings, want 3", got)
	}
}

func TestHandleLogPressure(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	hr := 72.0
	_, output, err := server.handleLogPressure(ctx, &mcp.CallToolRequest{}, logPressureInput{
		Systolic: 135, Diastolic: 85, HeartRate: &hr,
	})
	if err != nil {
		t.Fatalf("handleLogPressure failed: %v", err)
	}
	if output.Category != "stage1" {
		t.Errorf("Category = %q, want stage1", output.Category)
	}

	_, _, err = server.handleLogPressure(ctx, &mcp.CallToolRequest{}, logPressureInput{Systolic: 80, Diastolic: 90})
	if err == nil || !contains(err.Error(), "Systolic pressure should be higher than diastolic pressure") {
		t.Errorf("expected ordering error, got %v", err)
	}
}

func TestHandleLogWeight(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, logWeightInput{Weight: 165, Unit: "lbs"})
	if err != nil {
		t.Fatalf("handleLogWeight failed: %v", err)
	}
	if output.Note == "" {
		t.Error("Expected estimated-height note without configured height")
	}

	if _, _, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, logWeightInput{Weight: 70, Unit: "stone"}); err == nil {
		t.Error("Expected error for unknown unit")
	}
}

func TestHandleLogActivity(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	duration := 30.0
	notTaken := false

	tests := []struct {
		name    string
		input   logActivityInput
		wantErr bool
	}{
		{"exercise", logActivityInput{Type: "exercise", Name: "Run", Duration: &duration}, false},
		{"exercise without duration", logActivityInput{Type: "exercise", Name: "Run"}, true},
		{"meal", logActivityInput{Type: "meal", Name: "Oatmeal", MealType: "breakfast"}, false},
		{"medication", logActivityInput{Type: "medication", Name: "Metformin", Dosage: "500mg", Taken: &notTaken}, false},
		{"medication without dosage", logActivityInput{Type: "medication", Name: "Metformin"}, true},
		{"sleep", logActivityInput{Type: "sleep", Bedtime: "2025-06-01 23:00", WakeTime: "2025-06-02 07:00"}, false},
		{"sleep without times", logActivityInput{Type: "sleep"}, true},
		{"other", logActivityInput{Type: "other", Name: "Meditation"}, false},
		{"unknown type", logActivityInput{Type: "yoga", Name: "Flow"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogActivity(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
		})
	}

	meds := server.tracker.ActivitiesByType(ctx, models.ActivityMedication)
	if len(meds) != 1 || meds[0].Medication.Taken {
		t.Errorf("medication entries = %+v, want one not taken", meds)
	}
}

func TestHandleListReadings(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ts := testNow.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)
		if _, _, err := server.handleLogGlucose(ctx, &mcp.CallToolRequest{}, logGlucoseInput{Value: float64(100 + i), Timestamp: ts}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	_, output, err := server.handleListReadings(ctx, &mcp.CallToolRequest{}, listReadingsInput{Metric: "glucose", Limit: 2})
	if err != nil {
		t.Fatalf("handleListReadings failed: %v", err)
	}
	result := output.(map[string]any)
	views := result["readings"].([]readingView)
	if len(views) != 2 {
		t.Fatalf("got %d readings, want 2", len(views))
	}
	if result["total"] != 5 {
		t.Errorf("total = %v, want 5", result["total"])
	}
	if v := views[0].Reading.(*models.GlucoseReading).Value; v != 100 {
		t.Errorf("newest value = %v, want 100", v)
	}

	if _, _, err := server.handleListReadings(ctx, &mcp.CallToolRequest{}, listReadingsInput{Metric: "steps"}); err == nil {
		t.Error("Expected error for unknown metric")
	}
}

func TestHandleListReadingsEmpty(t *testing.T) {
	server := setupTestServer(t)

	_, output, err := server.handleListReadings(context.Background(), &mcp.CallToolRequest{}, listReadingsInput{Metric: "bp"})
	if err != nil {
		t.Fatalf("handleListReadings failed: %v", err)
	}
	msg := output.(map[string]any)["message"].(string)
	if !contains(msg, "No pressure readings") {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleDeleteReading(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, logged, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, logWeightInput{Weight: 80})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, output, err := server.handleDeleteReading(ctx, &mcp.CallToolRequest{}, deleteReadingInput{Metric: "weight", ID: logged.ID})
	if err != nil {
		t.Fatalf("handleDeleteReading failed: %v", err)
	}
	if !contains(output.Message, logged.ID) {
		t.Errorf("Message %q should mention ID", output.Message)
	}
	if got := len(server.tracker.Weight.GetAll(ctx)); got != 0 {
		t.Errorf("stored %d readings after delete", got)
	}

	// Unknown IDs are a no-op.
	if _, _, err := server.handleDeleteReading(ctx, &mcp.CallToolRequest{}, deleteReadingInput{Metric: "weight", ID: "nope"}); err != nil {
		t.Errorf("delete of unknown ID should not error: %v", err)
	}
}

func TestHandleGetLatest(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleLogPressure(ctx, &mcp.CallToolRequest{}, logPressureInput{Systolic: 118, Diastolic: 75}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, output, err := server.handleGetLatest(ctx, &mcp.CallToolRequest{}, getLatestInput{})
	if err != nil {
		t.Fatalf("handleGetLatest failed: %v", err)
	}
	result := output.(map[string]any)
	if len(result) != 4 {
		t.Errorf("got %d metrics, want 4", len(result))
	}
	if result["glucose"] != nil {
		t.Errorf("glucose latest = %v, want nil", result["glucose"])
	}
	bp := result["pressure"].(readingView)
	if bp.Classification == nil || bp.Classification.Label != "Normal" {
		t.Errorf("pressure classification = %+v", bp.Classification)
	}

	if _, _, err := server.handleGetLatest(ctx, &mcp.CallToolRequest{}, getLatestInput{Metrics: []string{"cholesterol"}}); err == nil {
		t.Error("Expected error for unknown metric")
	}
}

func TestHandleGetStats(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for _, v := range []float64{100, 110, 120} {
		if _, _, err := server.handleLogGlucose(ctx, &mcp.CallToolRequest{}, logGlucoseInput{Value: v}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	_, output, err := server.handleGetStats(ctx, &mcp.CallToolRequest{}, getStatsInput{Metric: "glucose"})
	if err != nil {
		t.Fatalf("handleGetStats failed: %v", err)
	}
	ms := output.(tracker.MetricStats)
	if ms.Count != 3 || ms.Average == nil || *ms.Average != 110 {
		t.Errorf("stats = %+v", ms)
	}
	if ms.Days != 7 {
		t.Errorf("Days = %d, want default 7", ms.Days)
	}

	_, output, err = server.handleGetStats(ctx, &mcp.CallToolRequest{}, getStatsInput{Days: 30})
	if err != nil {
		t.Fatalf("handleGetStats summary failed: %v", err)
	}
	summary := output.(tracker.Summary)
	if summary.Days != 30 || summary.Glucose.Count != 3 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestHandleSearchActivities(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	duration := 20.0

	if _, _, err := server.handleLogActivity(ctx, &mcp.CallToolRequest{}, logActivityInput{Type: "exercise", Name: "Evening walk", Duration: &duration}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, _, err := server.handleLogActivity(ctx, &mcp.CallToolRequest{}, logActivityInput{Type: "other", Name: "Walk the dog"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, output, err := server.handleSearchActivities(ctx, &mcp.CallToolRequest{}, searchActivitiesInput{Query: "walk"})
	if err != nil {
		t.Fatalf("handleSearchActivities failed: %v", err)
	}
	if n := output.(map[string]any)["count"]; n != 2 {
		t.Errorf("count = %v, want 2", n)
	}

	_, output, err = server.handleSearchActivities(ctx, &mcp.CallToolRequest{}, searchActivitiesInput{Query: "walk", Type: "other"})
	if err != nil {
		t.Fatalf("handleSearchActivities failed: %v", err)
	}
	if n := output.(map[string]any)["count"]; n != 1 {
		t.Errorf("count = %v, want 1", n)
	}
}

func readResource(t *testing.T, text string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("resource is not JSON: %v", err)
	}
	return out
}

func TestHandleTodayResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleLogGlucose(ctx, &mcp.CallToolRequest{}, logGlucoseInput{Value: 99}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, _, err := server.handleLogGlucose(ctx, &mcp.CallToolRequest{}, logGlucoseInput{Value: 99, Timestamp: "2025-05-30 08:00"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	res, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	if res.Contents[0].URI != uriToday {
		t.Errorf("URI = %q", res.Contents[0].URI)
	}
	out := readResource(t, res.Contents[0].Text)
	if out["date"] != "2025-06-02" {
		t.Errorf("date = %v", out["date"])
	}
	counts := out["counts"].(map[string]any)
	if counts["glucose"] != 1.0 {
		t.Errorf("glucose count = %v, want 1", counts["glucose"])
	}
}

func TestHandleRecentResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < recentPerMetric+2; i++ {
		if _, _, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, logWeightInput{Weight: 80}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	res, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleRecentResource failed: %v", err)
	}
	out := readResource(t, res.Contents[0].Text)
	if n := len(out["weight"].([]any)); n != recentPerMetric {
		t.Errorf("weight entries = %d, want %d", n, recentPerMetric)
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	res, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleSummaryResource failed: %v", err)
	}
	out := readResource(t, res.Contents[0].Text)
	if out["days"] != float64(summaryDays) {
		t.Errorf("days = %v", out["days"])
	}
	if _, ok := out["unreadable"]; ok {
		t.Error("healthy store should not report unreadable collections")
	}
}

func TestHandleSummaryResourceReportsCorruption(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, models.StorageKeys[models.MetricWeight], []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	tr := tracker.New(store, tracker.Options{Clock: func() time.Time { return testNow }, Location: time.UTC})
	server, _ := NewServer(tr, nil)

	res, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleSummaryResource failed: %v", err)
	}
	out := readResource(t, res.Contents[0].Text)
	if _, ok := out["unreadable"]; !ok {
		t.Error("expected unreadable collections to be reported")
	}
}
