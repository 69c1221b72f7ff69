// internal/nutrition/suggest.go
package nutrition

import (
	"math/rand"
	"strings"

	"chatfit/internal/models"
)

// Candidate food index sets per meal type. Indexes refer to CommonFoods.
var mealTemplates = map[string][][]int{
	"breakfast": {
		{4, 5, 6}, // egg, greek yogurt, banana
		{4, 6, 9}, // egg, banana, sweet potato
	},
	"lunch": {
		{0, 2, 3}, // chicken breast, brown rice, broccoli
		{0, 9, 3}, // chicken breast, sweet potato, broccoli
	},
	"dinner": {
		{1, 2, 8}, // salmon, brown rice, avocado
		{1, 9, 3}, // salmon, sweet potato, broccoli
	},
	"snack": {
		{7, 6}, // almonds, banana
		{5, 6}, // greek yogurt, banana
	},
}

// SuggestMeal assembles a meal of the given type from the food catalog.
// When several templates are eligible one is picked uniformly at random
// from rng, so results are only reproducible under a seeded source.
func SuggestMeal(mealType string, rng *rand.Rand) models.Meal {
	templates, ok := mealTemplates[mealType]
	if !ok {
		mealType = "snack"
		templates = mealTemplates["snack"]
	}

	indexes := templates[rng.Intn(len(templates))]
	foods := make([]models.Food, 0, len(indexes))
	for _, i := range indexes {
		foods = append(foods, CommonFoods[i])
	}

	meal := SummarizeMeal(capitalize(mealType), foods)
	return meal
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
