// ABOUTME: Markdown rendering of an export for reading or sharing.
// ABOUTME: One table per metric, oldest first.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/healthlog/internal/models"
)

const mdTime = "2006-01-02 15:04"

func sortedByTime[T models.Reading](items []T) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GetTimestamp().Before(out[j].GetTimestamp())
	})
	return out
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Markdown renders data as Markdown tables. Empty metrics are omitted.
func Markdown(data *Data) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Health Export - %s\n\n", data.ExportedAt.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339))

	if len(data.Glucose) > 0 {
		sb.WriteString("## Blood Sugar\n\n")
		sb.WriteString("| Date | Value | Context | Notes |\n")
		sb.WriteString("|------|-------|---------|-------|\n")
		for _, r := range sortedByTime(data.Glucose) {
			fmt.Fprintf(&sb, "| %s | %.0f mg/dL | %s | %s |\n",
				r.Timestamp.Format(mdTime), r.Value, r.MealContext, cell(r.NotesText()))
		}
		sb.WriteString("\n")
	}

	if len(data.Pressure) > 0 {
		sb.WriteString("## Blood Pressure\n\n")
		sb.WriteString("| Date | Reading | Heart Rate | Notes |\n")
		sb.WriteString("|------|---------|------------|-------|\n")
		for _, r := range sortedByTime(data.Pressure) {
			hr := ""
			if r.HeartRate != nil {
				hr = fmt.Sprintf("%.0f bpm", *r.HeartRate)
			}
			fmt.Fprintf(&sb, "| %s | %.0f/%.0f mmHg | %s | %s |\n",
				r.Timestamp.Format(mdTime), r.Systolic, r.Diastolic, hr, cell(r.NotesText()))
		}
		sb.WriteString("\n")
	}

	if len(data.Weight) > 0 {
		sb.WriteString("## Weight\n\n")
		sb.WriteString("| Date | Weight | Body Fat | Notes |\n")
		sb.WriteString("|------|--------|----------|-------|\n")
		for _, r := range sortedByTime(data.Weight) {
			fat := ""
			if r.BodyFatPct != nil {
				fat = fmt.Sprintf("%.1f%%", *r.BodyFatPct)
			}
			fmt.Fprintf(&sb, "| %s | %.1f %s | %s | %s |\n",
				r.Timestamp.Format(mdTime), r.Weight, r.Unit, fat, cell(r.NotesText()))
		}
		sb.WriteString("\n")
	}

	if len(data.Activity) > 0 {
		sb.WriteString("## Activities\n\n")
		sb.WriteString("| Date | Type | Name | Duration | Notes |\n")
		sb.WriteString("|------|------|------|----------|-------|\n")
		for _, e := range sortedByTime(data.Activity) {
			duration := ""
			if e.Duration != nil {
				duration = fmt.Sprintf("%.0f min", *e.Duration)
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				e.Timestamp.Format(mdTime), e.Type, cell(e.Name), duration, cell(e.NotesText()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
