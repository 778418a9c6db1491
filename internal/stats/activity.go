// ABOUTME: Aggregate activity statistics for a window of entries.
// ABOUTME: Matches exhaustively on the activity type.
package stats

import "github.com/harperreed/healthlog/internal/models"

// ActivitySummary totals the entries of a period.
type ActivitySummary struct {
	TotalActivities   int     `json:"totalActivities"`
	ExerciseMinutes   float64 `json:"exerciseMinutes"`
	CaloriesBurned    float64 `json:"caloriesBurned"`
	MealsLogged       int     `json:"mealsLogged"`
	CarbsGrams        float64 `json:"carbsGrams"`
	MedicationsTaken  int     `json:"medicationsTaken"`
	MedicationsMissed int     `json:"medicationsMissed"`
	AverageSleepHours float64 `json:"averageSleepHours"`
	OtherLogged       int     `json:"otherLogged"`
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// SummarizeActivities totals entries by type.
func SummarizeActivities(entries []*models.ActivityEntry) ActivitySummary {
	s := ActivitySummary{TotalActivities: len(entries)}
	var sleepHours []float64

	for _, e := range entries {
		switch e.Type {
		case models.ActivityExercise:
			s.ExerciseMinutes += value(e.Duration)
			s.CaloriesBurned += value(e.Calories)
		case models.ActivityMeal:
			s.MealsLogged++
			if e.Meal != nil {
				s.CarbsGrams += value(e.Meal.Carbs)
			}
		case models.ActivityMedication:
			if e.Medication != nil && e.Medication.Taken {
				s.MedicationsTaken++
			} else {
				s.MedicationsMissed++
			}
		case models.ActivitySleep:
			if e.Sleep != nil {
				sleepHours = append(sleepHours, e.Sleep.Hours())
			}
		case models.ActivityOther:
			s.OtherLogged++
		}
	}

	if avg, ok := Average(sleepHours); ok {
		s.AverageSleepHours = avg
	}
	return s
}
