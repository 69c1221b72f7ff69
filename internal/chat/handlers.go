// internal/chat/handlers.go
package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatfit/internal/fitness"
	"chatfit/internal/models"
	"chatfit/internal/nutrition"
)

func (b *Bot) handleGreeting(profile *models.UserProfile, msg string) string {
	return "Hello! How can I help you today with your fitness and nutrition goals?"
}

func (b *Bot) handleNutritionQuestion(profile *models.UserProfile, msg string) string {
	log, err := b.logs.NutritionLogFor(b.logs.Today())
	if err != nil {
		b.log.Error("failed to read nutrition log", zap.Error(err))
		return "I couldn't look up your nutrition log right now. Please try again."
	}

	if containsAny(msg, "how many", "how much") {
		if log == nil {
			return fmt.Sprintf(`You haven't logged any food today yet. Your daily targets are:
- Calories: %d calories
- Protein: %gg
- Carbs: %gg
- Fat: %gg`,
				profile.DailyCalories,
				profile.DailyMacros.Protein,
				profile.DailyMacros.Carbs,
				profile.DailyMacros.Fat)
		}

		if strings.Contains(msg, "calorie") {
			remaining := float64(profile.DailyCalories) - log.TotalCalories
			status := "You've reached your calorie goal for today."
			if remaining > 0 {
				status = fmt.Sprintf("You have %.0f calories remaining.", remaining)
			}
			return fmt.Sprintf("So far today you've consumed %.0f calories out of your %d calorie goal. %s",
				log.TotalCalories, profile.DailyCalories, status)
		}

		if strings.Contains(msg, "protein") {
			return fmt.Sprintf("So far today you've consumed %gg of protein out of your %gg goal.",
				log.TotalMacros.Protein, profile.DailyMacros.Protein)
		}

		if strings.Contains(msg, "carb") {
			return fmt.Sprintf("So far today you've consumed %gg of carbs out of your %gg goal.",
				log.TotalMacros.Carbs, profile.DailyMacros.Carbs)
		}

		if strings.Contains(msg, "fat") {
			return fmt.Sprintf("So far today you've consumed %gg of fat out of your %gg goal.",
				log.TotalMacros.Fat, profile.DailyMacros.Fat)
		}
	}

	return fmt.Sprintf(`Based on your profile, your daily targets are:
- Calories: %d calories
- Protein: %gg
- Carbs: %gg
- Fat: %gg

These targets are calculated based on your age, weight, height, activity level, and fitness goal.`,
		profile.DailyCalories,
		profile.DailyMacros.Protein,
		profile.DailyMacros.Carbs,
		profile.DailyMacros.Fat)
}

func (b *Bot) handleWorkoutLogging(profile *models.UserProfile, msg string) string {
	exerciseType := extractExerciseType(msg)
	if exerciseType == "" {
		return "I couldn't identify the type of workout you did. Can you tell me what type of exercise it was?"
	}

	duration, ok := extractDuration(msg)
	if !ok {
		return fmt.Sprintf("How long did you do %s for?", exerciseType)
	}

	workout := models.Workout{
		Type:      exerciseType,
		Duration:  duration,
		Intensity: extractIntensity(msg),
	}
	workout.CaloriesBurned = fitness.CaloriesBurned(workout, profile)

	if err := b.logs.AppendWorkout(workout); err != nil {
		b.log.Error("failed to log workout", zap.Error(err))
		return "Something went wrong saving your workout. Please try again."
	}

	response := fmt.Sprintf("Great job! I've logged your %s intensity %s workout for %d minutes.\n\n",
		workout.Intensity, workout.Type, workout.Duration)
	response += fmt.Sprintf("You burned approximately %d calories! 💪", workout.CaloriesBurned)

	streak, err := b.logs.WorkoutStreak()
	if err != nil {
		b.log.Warn("failed to compute workout streak", zap.Error(err))
		return response
	}
	if streak > 1 {
		response += fmt.Sprintf("\n\nAmazing! You're on a %d-day workout streak! Keep it up!", streak)
	}

	return response
}

func (b *Bot) handleMealSuggestion(profile *models.UserProfile, msg string) string {
	mealType := "snack"
	if strings.Contains(msg, "breakfast") {
		mealType = "breakfast"
	} else if strings.Contains(msg, "lunch") {
		mealType = "lunch"
	} else if strings.Contains(msg, "dinner") {
		mealType = "dinner"
	}

	meal := nutrition.SuggestMeal(mealType, b.rng)

	if budget, ok := extractCalorieBudget(msg); ok && float64(budget) < meal.TotalCalories {
		return fmt.Sprintf("I don't have a %s suggestion under %d calories at the moment. Let me know if you'd like other options!",
			mealType, budget)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's a suggested %s (%.0f calories):\n\n", mealType, meal.TotalCalories)
	for _, food := range meal.Foods {
		fmt.Fprintf(&sb, "• %s: %.0f calories (P: %gg, C: %gg, F: %gg)\n",
			food.Name, food.Calories, food.Macros.Protein, food.Macros.Carbs, food.Macros.Fat)
	}
	fmt.Fprintf(&sb, "\nTotal macros: Protein: %gg, Carbs: %gg, Fat: %gg",
		meal.TotalMacros.Protein, meal.TotalMacros.Carbs, meal.TotalMacros.Fat)

	return sb.String()
}

func (b *Bot) handleWorkoutSuggestion(profile *models.UserProfile, msg string) string {
	duration := extractMinutes(msg, 30)
	intensity := extractIntensity(msg)

	goal := profile.Goal
	if goal == "" {
		goal = models.Maintenance
	}

	workout := fitness.SuggestWorkout(duration, intensity, goal, b.rng)
	caloriesBurned := fitness.CaloriesBurned(workout, profile)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's a %s intensity %s workout for %d minutes:\n\n",
		workout.Intensity, workout.Type, workout.Duration)
	fmt.Fprintf(&sb, "This will burn approximately %d calories based on your profile.\n\n", caloriesBurned)
	fmt.Fprintf(&sb, "Benefits: %s", workout.Notes)

	return sb.String()
}

func (b *Bot) handleFoodLogging(profile *models.UserProfile, msg string) string {
	var identified []models.Food
	for _, food := range nutrition.CommonFoods {
		lowerName := strings.ToLower(food.Name)
		simpleName := strings.TrimSpace(strings.SplitN(lowerName, "(", 2)[0])

		if strings.Contains(msg, lowerName) || strings.Contains(msg, simpleName) {
			identified = append(identified, food)
		}
	}

	if len(identified) == 0 {
		return "I couldn't identify the specific foods you ate. Can you tell me what you had, one item at a time?"
	}

	meal := nutrition.SummarizeMeal("Logged Meal", identified)
	meal.ID = uuid.NewString()

	log, err := b.logs.AppendMeal(meal)
	if err != nil {
		b.log.Error("failed to log meal", zap.Error(err))
		return "Something went wrong saving your meal. Please try again."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "I've logged your meal (%.0f calories) with:\n\n", meal.TotalCalories)
	for _, food := range identified {
		fmt.Fprintf(&sb, "• %s: %.0f calories\n", food.Name, food.Calories)
	}

	remaining := float64(profile.DailyCalories) - log.TotalCalories
	status := "You've reached your calorie goal for today."
	if remaining > 0 {
		status = fmt.Sprintf("You have %.0f calories remaining.", remaining)
	}
	fmt.Fprintf(&sb, "\nYou've consumed %.0f out of %d calories today. %s",
		log.TotalCalories, profile.DailyCalories, status)

	return sb.String()
}
