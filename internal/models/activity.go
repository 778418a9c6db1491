// ABOUTME: Activity entry model: exercise, meals, medication, sleep, and other events.
// ABOUTME: Entries are a tagged union; Type is fixed by the constructor.
package models

import (
	"fmt"
	"time"
)

// ActivityType is the discriminant of an ActivityEntry.
type ActivityType string

const (
	ActivityExercise   ActivityType = "exercise"
	ActivityMeal       ActivityType = "meal"
	ActivityMedication ActivityType = "medication"
	ActivitySleep      ActivityType = "sleep"
	ActivityOther      ActivityType = "other"
)

// AllActivityTypes lists the valid activity types.
var AllActivityTypes = []ActivityType{
	ActivityExercise, ActivityMeal, ActivityMedication, ActivitySleep, ActivityOther,
}

// ParseActivityType validates an activity type string.
func ParseActivityType(s string) (ActivityType, error) {
	for _, at := range AllActivityTypes {
		if string(at) == s {
			return at, nil
		}
	}
	return "", fmt.Errorf("unknown activity type: %s (use exercise, meal, medication, sleep, or other)", s)
}

// ExerciseDetails are the exercise-only fields.
type ExerciseDetails struct {
	ExerciseType string   `json:"exerciseType,omitempty" yaml:"exerciseType,omitempty"`
	Intensity    string   `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	HeartRate    *float64 `json:"heartRate,omitempty" yaml:"heartRate,omitempty"`
}

// MealDetails are the meal-only fields. Macros are grams.
type MealDetails struct {
	MealType string   `json:"mealType,omitempty" yaml:"mealType,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Protein  *float64 `json:"protein,omitempty" yaml:"protein,omitempty"`
	Fat      *float64 `json:"fat,omitempty" yaml:"fat,omitempty"`
}

// MedicationDetails are the medication-only fields.
type MedicationDetails struct {
	MedicationName string `json:"medicationName" yaml:"medicationName"`
	Dosage         string `json:"dosage" yaml:"dosage"`
	Taken          bool   `json:"taken" yaml:"taken"`
}

// SleepDetails are the sleep-only fields.
type SleepDetails struct {
	Bedtime  time.Time `json:"bedtime" yaml:"bedtime"`
	WakeTime time.Time `json:"wakeTime" yaml:"wakeTime"`
	Quality  string    `json:"quality,omitempty" yaml:"quality,omitempty"`
}

// Hours returns the time slept.
func (s *SleepDetails) Hours() float64 {
	return s.WakeTime.Sub(s.Bedtime).Hours()
}

// ActivityEntry is one logged event. Exactly one of the detail pointers
// matching Type may be set; ActivityOther carries none.
type ActivityEntry struct {
	Base       `yaml:",inline"`
	Type       ActivityType       `json:"type" yaml:"type"`
	Name       string             `json:"name" yaml:"name"`
	Duration   *float64           `json:"duration,omitempty" yaml:"duration,omitempty"`
	Calories   *float64           `json:"calories,omitempty" yaml:"calories,omitempty"`
	Exercise   *ExerciseDetails   `json:"exercise,omitempty" yaml:"exercise,omitempty"`
	Meal       *MealDetails       `json:"meal,omitempty" yaml:"meal,omitempty"`
	Medication *MedicationDetails `json:"medication,omitempty" yaml:"medication,omitempty"`
	Sleep      *SleepDetails      `json:"sleep,omitempty" yaml:"sleep,omitempty"`
}

func newActivity(at ActivityType, name string, t time.Time) *ActivityEntry {
	return &ActivityEntry{Base: Base{Timestamp: t}, Type: at, Name: name}
}

// NewExercise creates an exercise entry lasting minutes.
func NewExercise(name string, minutes float64, d ExerciseDetails, t time.Time) *ActivityEntry {
	e := newActivity(ActivityExercise, name, t)
	e.Duration = &minutes
	e.Exercise = &d
	return e
}

// NewMeal creates a meal entry.
func NewMeal(name string, d MealDetails, t time.Time) *ActivityEntry {
	e := newActivity(ActivityMeal, name, t)
	e.Meal = &d
	return e
}

// NewMedication creates a medication entry.
func NewMedication(d MedicationDetails, t time.Time) *ActivityEntry {
	e := newActivity(ActivityMedication, d.MedicationName, t)
	e.Medication = &d
	return e
}

// NewSleep creates a sleep entry. The timestamp is the wake time.
func NewSleep(d SleepDetails) *ActivityEntry {
	e := newActivity(ActivitySleep, "Sleep", d.WakeTime)
	e.Sleep = &d
	minutes := d.WakeTime.Sub(d.Bedtime).Minutes()
	e.Duration = &minutes
	return e
}

// NewOther creates an untyped entry.
func NewOther(name string, t time.Time) *ActivityEntry {
	return newActivity(ActivityOther, name, t)
}

// CheckVariant reports ErrVariantMismatch if a detail payload other than
// the one Type selects is present.
func (e *ActivityEntry) CheckVariant() error {
	set := map[ActivityType]bool{
		ActivityExercise:   e.Exercise != nil,
		ActivityMeal:       e.Meal != nil,
		ActivityMedication: e.Medication != nil,
		ActivitySleep:      e.Sleep != nil,
	}
	for at, present := range set {
		if present && at != e.Type {
			return fmt.Errorf("%w: %s entry carries %s details", ErrVariantMismatch, e.Type, at)
		}
	}
	return nil
}

// ActivityPatch lists the activity fields an update may change. Detail
// payloads replace the existing ones and must match the entry's type.
type ActivityPatch struct {
	BasePatch
	Name       *string
	Duration   *float64
	Calories   *float64
	Exercise   *ExerciseDetails
	Meal       *MealDetails
	Medication *MedicationDetails
	Sleep      *SleepDetails
}

// Apply merges the set fields into e.
func (p ActivityPatch) Apply(e *ActivityEntry) error {
	probe := ActivityEntry{
		Type:       e.Type,
		Exercise:   p.Exercise,
		Meal:       p.Meal,
		Medication: p.Medication,
		Sleep:      p.Sleep,
	}
	if err := probe.CheckVariant(); err != nil {
		return err
	}

	p.BasePatch.apply(&e.Base)
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Duration != nil {
		e.Duration = p.Duration
	}
	if p.Calories != nil {
		e.Calories = p.Calories
	}
	if p.Exercise != nil {
		e.Exercise = p.Exercise
	}
	if p.Meal != nil {
		e.Meal = p.Meal
	}
	if p.Medication != nil {
		e.Medication = p.Medication
	}
	if p.Sleep != nil {
		e.Sleep = p.Sleep
	}
	return nil
}
