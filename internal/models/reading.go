// ABOUTME: Shared reading shape and metric identifiers for the health journal.
// ABOUTME: Every metric-specific reading embeds Base and satisfies Reading.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Metric identifies one tracked health metric.
type Metric string

const (
	MetricGlucose  Metric = "glucose"
	MetricPressure Metric = "pressure"
	MetricWeight   Metric = "weight"
	MetricActivity Metric = "activity"
)

// AllMetrics lists every metric in display order.
var AllMetrics = []Metric{MetricGlucose, MetricPressure, MetricWeight, MetricActivity}

// StorageKeys maps each metric to the key its collection lives under.
var StorageKeys = map[Metric]string{
	MetricGlucose:  "blood_sugar_readings",
	MetricPressure: "blood_pressure_readings",
	MetricWeight:   "weight_readings",
	MetricActivity: "activity_entries",
}

// ParseMetric accepts a metric name or one of its short aliases.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "glucose", "sugar", "bg":
		return MetricGlucose, nil
	case "pressure", "bp":
		return MetricPressure, nil
	case "weight", "w":
		return MetricWeight, nil
	case "activity", "activities":
		return MetricActivity, nil
	}
	return "", fmt.Errorf("unknown metric: %s (use glucose, bp, weight, or activity)", s)
}

// ErrVariantMismatch is returned when activity details do not match the entry type.
var ErrVariantMismatch = errors.New("activity details do not match activity type")

// Reading is implemented by every stored reading.
type Reading interface {
	GetID() string
	SetID(id string)
	GetTimestamp() time.Time
	SetTimestamp(t time.Time)
	NotesText() string
}

// Base holds the fields every reading shares.
type Base struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Notes     *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (b *Base) GetID() string            { return b.ID }
func (b *Base) SetID(id string)          { b.ID = id }
func (b *Base) GetTimestamp() time.Time  { return b.Timestamp }
func (b *Base) SetTimestamp(t time.Time) { b.Timestamp = t }

// WithNotes sets notes; an empty string clears them.
func (b *Base) WithNotes(notes string) {
	if notes == "" {
		b.Notes = nil
		return
	}
	b.Notes = &notes
}

// NotesText returns the notes or an empty string.
func (b *Base) NotesText() string {
	if b.Notes == nil {
		return ""
	}
	return *b.Notes
}

// BasePatch carries the optional shared fields of an update.
type BasePatch struct {
	Timestamp *time.Time
	Notes     *string
}

func (p BasePatch) apply(b *Base) {
	if p.Timestamp != nil {
		b.Timestamp = *p.Timestamp
	}
	if p.Notes != nil {
		b.WithNotes(*p.Notes)
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }
