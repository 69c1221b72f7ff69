// internal/nutrition/calculator.go
package nutrition

import (
	"math"
	"time"

	"chatfit/internal/models"
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.Sedentary:        1.2,
	models.LightlyActive:    1.375,
	models.ModeratelyActive: 1.55,
	models.VeryActive:       1.725,
	models.ExtremelyActive:  1.9,
}

var goalAdjustments = map[models.Goal]float64{
	models.WeightLoss:  -500,
	models.Maintenance: 0,
	models.MuscleGain:  300,
}

// BMR estimates basal metabolic rate with the Mifflin-St Jeor equation.
// Returns 0 when any required attribute is missing. The result is left
// unrounded; callers round where they need integers.
func BMR(profile *models.UserProfile) float64 {
	if profile.Weight == 0 || profile.Height == 0 || profile.Age == 0 || profile.Gender == "" {
		return 0
	}

	base := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age)
	if profile.Gender == "male" {
		return base + 5
	}
	return base - 161
}

// TDEE scales BMR by the profile's activity multiplier, rounded to the
// nearest calorie. An unset activity level leaves BMR unscaled.
func TDEE(profile *models.UserProfile) int {
	bmr := BMR(profile)
	multiplier, ok := activityMultipliers[profile.ActivityLevel]
	if !ok {
		return int(math.Round(bmr))
	}
	return int(math.Round(bmr * multiplier))
}

// DailyCalorieTarget applies the goal's fixed calorie adjustment to TDEE.
func DailyCalorieTarget(profile *models.UserProfile) int {
	tdee := TDEE(profile)
	adjustment, ok := goalAdjustments[profile.Goal]
	if !ok {
		return tdee
	}
	return int(math.Round(float64(tdee) + adjustment))
}

// MacroTargets splits a calorie total into protein/carb/fat grams using
// the goal's fixed percentage split. Each gram figure is rounded
// independently; rounding error is not redistributed.
func MacroTargets(totalCalories int, goal models.Goal) models.Macros {
	var proteinPct, fatPct, carbPct float64

	switch goal {
	case models.WeightLoss:
		proteinPct, fatPct, carbPct = 0.40, 0.30, 0.30
	case models.MuscleGain:
		proteinPct, fatPct, carbPct = 0.35, 0.25, 0.40
	default: // maintenance split
		proteinPct, fatPct, carbPct = 0.30, 0.30, 0.40
	}

	total := float64(totalCalories)

	// Protein and carbs are 4 kcal/g, fat is 9 kcal/g.
	return models.Macros{
		Protein: math.Round(total * proteinPct / 4),
		Fat:     math.Round(total * fatPct / 9),
		Carbs:   math.Round(total * carbPct / 4),
	}
}

// ApplyTargets recomputes the derived daily targets in place.
func ApplyTargets(profile *models.UserProfile) {
	profile.DailyCalories = DailyCalorieTarget(profile)
	profile.DailyMacros = MacroTargets(profile.DailyCalories, profile.Goal)
}

// SummarizeMeal builds a Meal whose aggregates are the exact sums over
// the given foods. The food slice is used as-is, not copied.
func SummarizeMeal(name string, foods []models.Food) models.Meal {
	meal := models.Meal{
		Name:  name,
		Time:  time.Now(),
		Foods: foods,
	}
	for _, food := range foods {
		meal.TotalCalories += food.Calories
		meal.TotalMacros = meal.TotalMacros.Add(food.Macros)
	}
	return meal
}
