// internal/models/models.go
package models

import (
	"time"
)

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly active"
	ModeratelyActive ActivityLevel = "moderately active"
	VeryActive       ActivityLevel = "very active"
	ExtremelyActive  ActivityLevel = "extremely active"
)

type Goal string

const (
	WeightLoss  Goal = "weight loss"
	Maintenance Goal = "maintenance"
	MuscleGain  Goal = "muscle gain"
)

type Intensity string

const (
	LowIntensity      Intensity = "low"
	ModerateIntensity Intensity = "moderate"
	HighIntensity     Intensity = "high"
)

// Macros holds macronutrient amounts in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func (m Macros) Add(other Macros) Macros {
	return Macros{
		Protein: m.Protein + other.Protein,
		Carbs:   m.Carbs + other.Carbs,
		Fat:     m.Fat + other.Fat,
	}
}

// UserProfile carries the physical attributes the calculators need plus
// the derived daily targets. DailyCalories and DailyMacros are always
// recomputed from the other fields, never edited directly.
type UserProfile struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name,omitempty"`
	Age                int           `json:"age,omitempty"`
	Weight             float64       `json:"weight,omitempty"` // kg
	Height             float64       `json:"height,omitempty"` // cm
	Gender             string        `json:"gender,omitempty"` // "male", "female", "other"
	ActivityLevel      ActivityLevel `json:"activity_level,omitempty"`
	Goal               Goal          `json:"goal,omitempty"`
	DietaryPreferences []string      `json:"dietary_preferences,omitempty"`
	Allergies          []string      `json:"allergies,omitempty"`
	Dislikes           []string      `json:"dislikes,omitempty"`
	DailyCalories      int           `json:"daily_calories"`
	DailyMacros        Macros        `json:"daily_macros"`
	OnboardingComplete bool          `json:"onboarding_complete"`
}

type Food struct {
	Name        string  `json:"name"`
	ServingSize string  `json:"serving_size"`
	Calories    float64 `json:"calories"`
	Macros      Macros  `json:"macros"`
}

// Meal aggregates are the exact sum over Foods and must be recomputed
// whenever Foods changes.
type Meal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Time          time.Time `json:"time"`
	Foods         []Food    `json:"foods"`
	TotalCalories float64   `json:"total_calories"`
	TotalMacros   Macros    `json:"total_macros"`
}

// NutritionLog is the per-day record of meals, keyed by an ISO date
// string (YYYY-MM-DD). One log per user per day.
type NutritionLog struct {
	Date          string  `json:"date"`
	Meals         []Meal  `json:"meals"`
	TotalCalories float64 `json:"total_calories"`
	TotalMacros   Macros  `json:"total_macros"`
}

// Recompute restores the aggregate invariant from the meal list.
func (l *NutritionLog) Recompute() {
	l.TotalCalories = 0
	l.TotalMacros = Macros{}
	for _, meal := range l.Meals {
		l.TotalCalories += meal.TotalCalories
		l.TotalMacros = l.TotalMacros.Add(meal.TotalMacros)
	}
}

type Workout struct {
	Type           string    `json:"type"`
	Duration       int       `json:"duration"` // minutes
	Intensity      Intensity `json:"intensity,omitempty"`
	CaloriesBurned int       `json:"calories_burned,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

// WorkoutLog is the per-day record of workouts, keyed like NutritionLog.
type WorkoutLog struct {
	Date     string    `json:"date"`
	Workouts []Workout `json:"workouts"`
}

// DateKey formats a time as the log date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
