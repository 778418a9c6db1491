// ABOUTME: Blood glucose reading model with meal context.
// ABOUTME: Values are stored in mg/dL.
package models

import (
	"fmt"
	"time"
)

// MealContext describes when a glucose reading was taken relative to food.
type MealContext string

const (
	MealFasting    MealContext = "fasting"
	MealBeforeMeal MealContext = "before-meal"
	MealAfterMeal  MealContext = "after-meal"
	MealBedtime    MealContext = "bedtime"
)

// AllMealContexts lists the valid meal contexts.
var AllMealContexts = []MealContext{MealFasting, MealBeforeMeal, MealAfterMeal, MealBedtime}

// ParseMealContext validates a meal context string. Empty means unspecified.
func ParseMealContext(s string) (MealContext, error) {
	if s == "" {
		return "", nil
	}
	for _, mc := range AllMealContexts {
		if string(mc) == s {
			return mc, nil
		}
	}
	return "", fmt.Errorf("unknown meal context: %s (use fasting, before-meal, after-meal, or bedtime)", s)
}

// GlucoseReading is a single blood sugar measurement.
type GlucoseReading struct {
	Base        `yaml:",inline"`
	Value       float64     `json:"value" yaml:"value"`
	MealContext MealContext `json:"mealContext,omitempty" yaml:"mealContext,omitempty"`
}

// NewGlucoseReading creates an unsaved reading taken at t.
func NewGlucoseReading(value float64, mc MealContext, t time.Time) *GlucoseReading {
	return &GlucoseReading{
		Base:        Base{Timestamp: t},
		Value:       value,
		MealContext: mc,
	}
}

// GlucosePatch lists the glucose fields an update may change.
type GlucosePatch struct {
	BasePatch
	Value       *float64
	MealContext *MealContext
}

// Apply merges the set fields into r.
func (p GlucosePatch) Apply(r *GlucoseReading) error {
	p.BasePatch.apply(&r.Base)
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.MealContext != nil {
		r.MealContext = *p.MealContext
	}
	return nil
}
