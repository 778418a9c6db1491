// ABOUTME: Blood pressure reading model.
// ABOUTME: Systolic and diastolic are mmHg; heart rate is optional bpm.
package models

import "time"

// PressureReading is a single blood pressure measurement.
type PressureReading struct {
	Base      `yaml:",inline"`
	Systolic  float64  `json:"systolic" yaml:"systolic"`
	Diastolic float64  `json:"diastolic" yaml:"diastolic"`
	HeartRate *float64 `json:"heartRate,omitempty" yaml:"heartRate,omitempty"`
}

// NewPressureReading creates an unsaved reading taken at t.
func NewPressureReading(systolic, diastolic float64, t time.Time) *PressureReading {
	return &PressureReading{
		Base:      Base{Timestamp: t},
		Systolic:  systolic,
		Diastolic: diastolic,
	}
}

// WithHeartRate sets the pulse recorded alongside the reading.
func (r *PressureReading) WithHeartRate(bpm float64) *PressureReading {
	r.HeartRate = &bpm
	return r
}

// PressurePatch lists the pressure fields an update may change.
type PressurePatch struct {
	BasePatch
	Systolic  *float64
	Diastolic *float64
	HeartRate *float64
}

// Apply merges the set fields into r.
func (p PressurePatch) Apply(r *PressureReading) error {
	p.BasePatch.apply(&r.Base)
	if p.Systolic != nil {
		r.Systolic = *p.Systolic
	}
	if p.Diastolic != nil {
		r.Diastolic = *p.Diastolic
	}
	if p.HeartRate != nil {
		r.HeartRate = p.HeartRate
	}
	return nil
}
