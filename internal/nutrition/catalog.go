// internal/nutrition/catalog.go
package nutrition

import (
	"chatfit/internal/models"
)

// CommonFoods is the built-in reference catalog. Values are per the
// serving size in the label, not normalized to 100g.
var CommonFoods = []models.Food{
	{
		Name:        "Chicken Breast (100g)",
		ServingSize: "100g",
		Calories:    165,
		Macros:      models.Macros{Protein: 31, Carbs: 0, Fat: 3.6},
	},
	{
		Name:        "Salmon (100g)",
		ServingSize: "100g",
		Calories:    208,
		Macros:      models.Macros{Protein: 20, Carbs: 0, Fat: 13},
	},
	{
		Name:        "Brown Rice (cooked, 100g)",
		ServingSize: "100g",
		Calories:    112,
		Macros:      models.Macros{Protein: 2.6, Carbs: 23, Fat: 0.9},
	},
	{
		Name:        "Broccoli (100g)",
		ServingSize: "100g",
		Calories:    34,
		Macros:      models.Macros{Protein: 2.8, Carbs: 7, Fat: 0.4},
	},
	{
		Name:        "Egg (1 large)",
		ServingSize: "1 large",
		Calories:    72,
		Macros:      models.Macros{Protein: 6.3, Carbs: 0.4, Fat: 5},
	},
	{
		Name:        "Greek Yogurt (100g)",
		ServingSize: "100g",
		Calories:    59,
		Macros:      models.Macros{Protein: 10, Carbs: 3.6, Fat: 0.4},
	},
	{
		Name:        "Banana (medium)",
		ServingSize: "1 medium",
		Calories:    105,
		Macros:      models.Macros{Protein: 1.3, Carbs: 27, Fat: 0.4},
	},
	{
		Name:        "Almonds (28g)",
		ServingSize: "28g",
		Calories:    164,
		Macros:      models.Macros{Protein: 6, Carbs: 6, Fat: 14},
	},
	{
		Name:        "Avocado (half)",
		ServingSize: "1/2 fruit",
		Calories:    161,
		Macros:      models.Macros{Protein: 2, Carbs: 8.5, Fat: 15},
	},
	{
		Name:        "Sweet Potato (medium)",
		ServingSize: "1 medium",
		Calories:    112,
		Macros:      models.Macros{Protein: 2, Carbs: 26, Fat: 0.1},
	},
}
