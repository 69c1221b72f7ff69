// internal/fitness/calculator.go
package fitness

import (
	"math"
	"math/rand"
	"strings"

	"chatfit/internal/models"
)

const referenceWeightKg = 70

// CaloriesBurned estimates calories burned for a workout. Catalog
// exercises use their per-minute rate at the workout's intensity,
// scaled by body weight relative to a 70kg reference when the profile
// has one. Unknown exercise types fall back to a generic per-minute
// rate with no weight scaling.
func CaloriesBurned(workout models.Workout, profile *models.UserProfile) int {
	exercise, ok := LookupExercise(workout.Type)
	if !ok {
		rate := 7.5
		switch workout.Intensity {
		case models.LowIntensity:
			rate = 5
		case models.HighIntensity:
			rate = 10
		}
		return int(math.Round(float64(workout.Duration) * rate))
	}

	intensity := workout.Intensity
	if intensity == "" {
		intensity = models.ModerateIntensity
	}
	perMinute := exercise.CaloriesPerMinute[intensity]

	weightMultiplier := 1.0
	if profile != nil && profile.Weight > 0 {
		weightMultiplier = profile.Weight / referenceWeightKg
	}

	return int(math.Round(float64(workout.Duration) * perMinute * weightMultiplier))
}

var goalPools = map[models.Goal][]string{
	models.WeightLoss:  {"hiit", "running", "swimming"},
	models.MuscleGain:  {"weightTraining", "hiit", "pilates"},
	models.Maintenance: {"walking", "cycling", "yoga", "swimming"},
}

// SuggestWorkout picks an exercise suited to the available time,
// intensity and goal. Short sessions favor dense exercises, long
// low-intensity sessions favor steady-state cardio. The pick among the
// remaining candidates is uniform-random from rng.
func SuggestWorkout(minutes int, intensity models.Intensity, goal models.Goal, rng *rand.Rand) models.Workout {
	pool, ok := goalPools[goal]
	if !ok {
		pool = make([]string, 0, len(Exercises))
		for id := range Exercises {
			pool = append(pool, id)
		}
	}

	if minutes < 20 {
		pool = restrictPool(pool, []string{"hiit", "weightTraining"})
	}

	if minutes > 40 && intensity == models.LowIntensity {
		pool = restrictPool(pool, []string{"walking", "cycling", "swimming"})
	}

	exercise := Exercises[pool[rng.Intn(len(pool))]]

	return models.Workout{
		Type:      exercise.Name,
		Duration:  minutes,
		Intensity: intensity,
		Notes:     strings.Join(exercise.Benefits, ". "),
	}
}

// restrictPool intersects pool with allowed; an empty intersection
// falls back to the full allowed set.
func restrictPool(pool, allowed []string) []string {
	restricted := make([]string, 0, len(allowed))
	for _, id := range pool {
		for _, want := range allowed {
			if id == want {
				restricted = append(restricted, id)
				break
			}
		}
	}
	if len(restricted) == 0 {
		return allowed
	}
	return restricted
}
