// ABOUTME: Builds activity entries from flat, optional fields.
// ABOUTME: Used by the CLI flags and MCP tool inputs.
package models

import (
	"errors"
	"time"
)

// ActivityFields are the optional inputs of every activity variant. Only
// the fields of the chosen type are used.
type ActivityFields struct {
	Timestamp time.Time
	Duration  *float64
	Calories  *float64
	Notes     string

	ExerciseType string
	Intensity    string
	HeartRate    *float64

	MealType string
	Carbs    *float64
	Protein  *float64
	Fat      *float64

	Dosage string
	Taken  bool

	Bedtime  time.Time
	WakeTime time.Time
	Quality  string
}

// BuildActivity creates an unsaved entry of type at. For medication the
// name is the medication name. Sleep needs both bedtime and wake time.
func BuildActivity(at ActivityType, name string, f ActivityFields) (*ActivityEntry, error) {
	var e *ActivityEntry

	switch at {
	case ActivityExercise:
		var minutes float64
		if f.Duration != nil {
			minutes = *f.Duration
		}
		e = NewExercise(name, minutes, ExerciseDetails{
			ExerciseType: f.ExerciseType,
			Intensity:    f.Intensity,
			HeartRate:    f.HeartRate,
		}, f.Timestamp)
	case ActivityMeal:
		e = NewMeal(name, MealDetails{
			MealType: f.MealType,
			Carbs:    f.Carbs,
			Protein:  f.Protein,
			Fat:      f.Fat,
		}, f.Timestamp)
		e.Duration = f.Duration
	case ActivityMedication:
		e = NewMedication(MedicationDetails{
			MedicationName: name,
			Dosage:         f.Dosage,
			Taken:          f.Taken,
		}, f.Timestamp)
	case ActivitySleep:
		if f.Bedtime.IsZero() || f.WakeTime.IsZero() {
			return nil, errors.New("sleep requires bedtime and wake time")
		}
		e = NewSleep(SleepDetails{Bedtime: f.Bedtime, WakeTime: f.WakeTime, Quality: f.Quality})
		if name != "" {
			e.Name = name
		}
	case ActivityOther:
		e = NewOther(name, f.Timestamp)
		e.Duration = f.Duration
	default:
		_, err := ParseActivityType(string(at))
		return nil, err
	}

	e.Calories = f.Calories
	e.WithNotes(f.Notes)
	return e, nil
}
