// ABOUTME: Validation for activity entries.
// ABOUTME: Variant fields are required only for the matching activity type.
package validate

import (
	"math"
	"strings"

	"github.com/harperreed/healthlog/internal/models"
)

func negative(p *float64) bool {
	return p != nil && (math.IsNaN(*p) || *p < 0)
}

// Activity validates an activity entry against its own type.
func Activity(e *models.ActivityEntry) Result {
	var errs []string

	if _, err := models.ParseActivityType(string(e.Type)); err != nil {
		return result([]string{err.Error()})
	}
	if err := e.CheckVariant(); err != nil {
		errs = append(errs, err.Error())
	}
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "Activity name is required")
	}
	if negative(e.Duration) {
		errs = append(errs, "Duration cannot be negative")
	}
	if negative(e.Calories) {
		errs = append(errs, "Calories cannot be negative")
	}

	switch e.Type {
	case models.ActivityExercise:
		if e.Duration == nil || *e.Duration <= 0 {
			errs = append(errs, "Exercise duration must be greater than zero")
		}
	case models.ActivityMeal:
		if e.Meal != nil && (negative(e.Meal.Carbs) || negative(e.Meal.Protein) || negative(e.Meal.Fat)) {
			errs = append(errs, "Meal macros cannot be negative")
		}
	case models.ActivityMedication:
		if e.Medication == nil || strings.TrimSpace(e.Medication.MedicationName) == "" {
			errs = append(errs, "Medication name is required")
		}
		if e.Medication == nil || strings.TrimSpace(e.Medication.Dosage) == "" {
			errs = append(errs, "Dosage is required")
		}
	case models.ActivitySleep:
		if e.Sleep == nil {
			errs = append(errs, "Bedtime and wake time are required")
		} else if !e.Sleep.WakeTime.After(e.Sleep.Bedtime) {
			errs = append(errs, "Wake time must be after bedtime")
		}
	case models.ActivityOther:
	}

	return result(errs)
}
