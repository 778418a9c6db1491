// ABOUTME: Body weight reading model and unit conversion.
// ABOUTME: Weight may be recorded in kg or lbs; conversions use 2.20462 lbs/kg.
package models

import (
	"fmt"
	"time"
)

// WeightUnit is the unit a weight was recorded in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// LbsPerKg is the conversion factor between the two weight units.
const LbsPerKg = 2.20462

// ParseWeightUnit accepts kg, lbs, or lb. Empty defaults to kg.
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch s {
	case "", "kg":
		return UnitKg, nil
	case "lbs", "lb":
		return UnitLbs, nil
	}
	return "", fmt.Errorf("unknown weight unit: %s (use kg or lbs)", s)
}

// ConvertWeight converts a weight between units.
func ConvertWeight(weight float64, from, to WeightUnit) float64 {
	if from == to {
		return weight
	}
	switch {
	case from == UnitKg && to == UnitLbs:
		return weight * LbsPerKg
	case from == UnitLbs && to == UnitKg:
		return weight / LbsPerKg
	}
	return weight
}

// WeightReading is a single body weight measurement.
type WeightReading struct {
	Base       `yaml:",inline"`
	Weight     float64    `json:"weight" yaml:"weight"`
	Unit       WeightUnit `json:"unit" yaml:"unit"`
	BodyFatPct *float64   `json:"bodyFat,omitempty" yaml:"bodyFat,omitempty"`
	MuscleMass *float64   `json:"muscleMass,omitempty" yaml:"muscleMass,omitempty"`
}

// NewWeightReading creates an unsaved reading taken at t.
func NewWeightReading(weight float64, unit WeightUnit, t time.Time) *WeightReading {
	return &WeightReading{
		Base:   Base{Timestamp: t},
		Weight: weight,
		Unit:   unit,
	}
}

// InKilograms returns the weight normalised to kg.
func (r *WeightReading) InKilograms() float64 {
	return ConvertWeight(r.Weight, r.Unit, UnitKg)
}

// In returns the weight in the given unit.
func (r *WeightReading) In(unit WeightUnit) float64 {
	return ConvertWeight(r.Weight, r.Unit, unit)
}

// WeightPatch lists the weight fields an update may change.
type WeightPatch struct {
	BasePatch
	Weight     *float64
	Unit       *WeightUnit
	BodyFatPct *float64
	MuscleMass *float64
}

// Apply merges the set fields into r.
func (p WeightPatch) Apply(r *WeightReading) error {
	p.BasePatch.apply(&r.Base)
	if p.Weight != nil {
		r.Weight = *p.Weight
	}
	if p.Unit != nil {
		r.Unit = *p.Unit
	}
	if p.BodyFatPct != nil {
		r.BodyFatPct = p.BodyFatPct
	}
	if p.MuscleMass != nil {
		r.MuscleMass = p.MuscleMass
	}
	return nil
}
