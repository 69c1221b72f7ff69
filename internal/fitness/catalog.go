// internal/fitness/catalog.go
package fitness

import (
	"strings"

	"chatfit/internal/models"
)

// ExerciseInfo describes one catalog entry: estimated calories burned
// per minute at each intensity, plus the benefits used in suggestions.
type ExerciseInfo struct {
	Name              string
	CaloriesPerMinute map[models.Intensity]float64
	Benefits          []string
}

// Exercises is the built-in exercise catalog, keyed by a short id.
var Exercises = map[string]ExerciseInfo{
	"walking": {
		Name: "Walking",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      3,
			models.ModerateIntensity: 4,
			models.HighIntensity:     5,
		},
		Benefits: []string{"Improves cardiovascular health", "Low impact", "Burns fat", "Reduces stress"},
	},
	"running": {
		Name: "Running",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      8,
			models.ModerateIntensity: 10,
			models.HighIntensity:     12,
		},
		Benefits: []string{"Builds endurance", "Burns calories efficiently", "Strengthens legs", "Improves cardiovascular health"},
	},
	"cycling": {
		Name: "Cycling",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      5,
			models.ModerateIntensity: 7,
			models.HighIntensity:     10,
		},
		Benefits: []string{"Low impact", "Builds leg strength", "Improves cardiovascular health", "Can be done indoors or outdoors"},
	},
	"swimming": {
		Name: "Swimming",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      6,
			models.ModerateIntensity: 8,
			models.HighIntensity:     10,
		},
		Benefits: []string{"Full body workout", "No impact on joints", "Builds endurance", "Improves flexibility"},
	},
	"yoga": {
		Name: "Yoga",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      3,
			models.ModerateIntensity: 4,
			models.HighIntensity:     6,
		},
		Benefits: []string{"Improves flexibility", "Reduces stress", "Builds strength", "Enhances mind-body connection"},
	},
	"weightTraining": {
		Name: "Weight Training",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      4,
			models.ModerateIntensity: 6,
			models.HighIntensity:     8,
		},
		Benefits: []string{"Builds muscle", "Increases metabolism", "Improves bone density", "Enhances functional strength"},
	},
	"hiit": {
		Name: "HIIT",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      8,
			models.ModerateIntensity: 12,
			models.HighIntensity:     15,
		},
		Benefits: []string{"Efficient calorie burn", "Improves metabolic rate", "Quick workout option", "Burns fat"},
	},
	"pilates": {
		Name: "Pilates",
		CaloriesPerMinute: map[models.Intensity]float64{
			models.LowIntensity:      3,
			models.ModerateIntensity: 5,
			models.HighIntensity:     7,
		},
		Benefits: []string{"Improves core strength", "Enhances posture", "Increases flexibility", "Low impact"},
	},
}

// LookupExercise finds a catalog entry by canonical name,
// case-insensitively. Returns false when the name is unknown.
func LookupExercise(name string) (ExerciseInfo, bool) {
	for _, info := range Exercises {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return ExerciseInfo{}, false
}
