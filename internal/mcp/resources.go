// ABOUTME: MCP resource implementations for the healthlog journal.
// ABOUTME: Provides healthlog://recent, healthlog://today, and healthlog://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/stats"
	"github.com/harperreed/healthlog/internal/tracker"
)

const (
	uriRecent  = "healthlog://recent"
	uriToday   = "healthlog://today"
	uriSummary = "healthlog://summary"

	recentPerMetric = 5
	summaryDays     = 7
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriRecent,
		Name:        "Recent Health Entries",
		Description: "Last few readings of every metric",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriToday,
		Name:        "Today's Health Data",
		Description: "Every reading and activity logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriSummary,
		Name:        "Health Summary Dashboard",
		Description: "Latest reading, averages, trends, and streaks for each metric over the last week",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := make(map[string][]readingView, len(models.AllMetrics))
	for _, m := range models.AllMetrics {
		readings, err := s.tracker.List(ctx, m, tracker.Range{})
		if err != nil {
			return nil, err
		}
		tracker.NewestFirst(readings)
		if len(readings) > recentPerMetric {
			readings = readings[:recentPerMetric]
		}
		views := make([]readingView, len(readings))
		for i, r := range readings {
			views[i] = s.view(r)
		}
		result[string(m)] = views
	}
	return jsonResource(uriRecent, result)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := stats.StartOfDay(s.tracker.Now(), s.tracker.Location())

	readings := make(map[string][]readingView, len(models.AllMetrics))
	counts := make(map[string]int, len(models.AllMetrics))
	for _, m := range models.AllMetrics {
		list, err := s.tracker.List(ctx, m, tracker.Range{Today: true})
		if err != nil {
			return nil, err
		}
		views := make([]readingView, len(list))
		for i, r := range list {
			views[i] = s.view(r)
		}
		readings[string(m)] = views
		counts[string(m)] = len(list)
	}

	return jsonResource(uriToday, map[string]any{
		"date":     today.Format("2006-01-02"),
		"readings": readings,
		"counts":   counts,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.tracker.Summary(ctx, summaryDays)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	diags := s.tracker.Diagnostics()
	if len(diags) == 0 {
		return jsonResource(uriSummary, summary)
	}

	unreadable := make([]string, 0, len(diags))
	for _, d := range diags {
		unreadable = append(unreadable, fmt.Sprintf("%s (%s): %v", d.Key, d.Kind, d.Err))
	}
	return jsonResource(uriSummary, struct {
		tracker.Summary
		Unreadable []string `json:"unreadable"`
	}{summary, unreadable})
}
