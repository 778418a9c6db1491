// ABOUTME: Output helpers shared by the CLI commands.
// ABOUTME: Timestamp parsing, column padding, and colored classifications.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/healthlog/internal/classify"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/validate"
)

const listTimeFormat = "2006-01-02 15:04"

var faint = color.New(color.Faint)

// errNotSaved is returned after validation errors have been printed.
var errNotSaved = errors.New("reading not saved")

func parseTime(s string) (time.Time, error) {
	return models.ParseTimestamp(s, time.Local)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var hexColors = map[string]*color.Color{
	classify.ColorBlue:    color.New(color.FgBlue),
	classify.ColorGreen:   color.New(color.FgGreen),
	classify.ColorAmber:   color.New(color.FgYellow),
	classify.ColorOrange:  color.New(color.FgHiYellow),
	classify.ColorRed:     color.New(color.FgRed),
	classify.ColorDeepRed: color.New(color.FgHiRed, color.Bold),
}

// label renders a classification in its display color.
func label(c classify.Result) string {
	text := c.Label
	if c.Estimated {
		text += "*"
	}
	if col, ok := hexColors[c.Color]; ok {
		return col.Sprint(text)
	}
	return text
}

// describe summarises the measured values of a reading on one line.
func describe(r models.Reading) string {
	switch v := r.(type) {
	case *models.GlucoseReading:
		s := fmt.Sprintf("%.0f mg/dL", v.Value)
		if v.MealContext != "" {
			s += " " + string(v.MealContext)
		}
		return s
	case *models.PressureReading:
		s := fmt.Sprintf("%.0f/%.0f mmHg", v.Systolic, v.Diastolic)
		if v.HeartRate != nil {
			s += fmt.Sprintf(" %.0f bpm", *v.HeartRate)
		}
		return s
	case *models.WeightReading:
		s := fmt.Sprintf("%.1f %s", v.Weight, v.Unit)
		if v.BodyFatPct != nil {
			s += fmt.Sprintf(" %.1f%% fat", *v.BodyFatPct)
		}
		return s
	case *models.ActivityEntry:
		s := padRight(string(v.Type), 11) + v.Name
		if v.Duration != nil {
			s += fmt.Sprintf(" %.0f min", *v.Duration)
		}
		return s
	}
	return ""
}

// printReading writes one list line: ID, time, values, classification, notes.
func printReading(w io.Writer, r models.Reading) {
	line := fmt.Sprintf("%s %s %s",
		faint.Sprint(shortID(r.GetID())),
		faint.Sprint(r.GetTimestamp().Local().Format(listTimeFormat)),
		padRight(describe(r), 28))
	if c, ok := trk.Classify(r); ok {
		line += " " + label(c)
	}
	if notes := r.NotesText(); notes != "" {
		line += faint.Sprintf(" (%s)", truncate(notes, 30))
	}
	fmt.Fprintln(w, line)
}

// printValidation lists validation errors and returns errNotSaved.
func printValidation(w io.Writer, res validate.Result) error {
	color.New(color.FgRed).Fprintln(w, "✗ Invalid reading:")
	for _, msg := range res.Errors {
		fmt.Fprintf(w, "  • %s\n", msg)
	}
	return errNotSaved
}
