// internal/chat/bot_test.go
package chat

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatfit/internal/logstore"
	"chatfit/internal/models"
	"chatfit/internal/nutrition"
	"chatfit/internal/storage"
)

var testToday = time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

func newTestBot(t *testing.T) (*Bot, *logstore.Service) {
	t.Helper()
	local, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	tiered := storage.NewTiered(nil, local, zap.NewNop())
	logs := logstore.New(tiered, "u1", zap.NewNop(),
		logstore.WithClock(func() time.Time { return testToday }))

	bot := NewBot(logs, zap.NewNop(), WithRand(rand.New(rand.NewSource(1))))
	return bot, logs
}

func testProfile() *models.UserProfile {
	profile := &models.UserProfile{
		Name:               "Sam",
		Age:                30,
		Weight:             70,
		Height:             175,
		Gender:             "male",
		ActivityLevel:      models.ModeratelyActive,
		Goal:               models.WeightLoss,
		OnboardingComplete: true,
	}
	nutrition.ApplyTargets(profile)
	return profile
}

func TestGreeting(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "Hello there")
	assert.Equal(t, "Hello! How can I help you today with your fitness and nutrition goals?", reply)
}

func TestGreetingTakesPrecedenceOverNutritionQuery(t *testing.T) {
	bot, _ := newTestBot(t)

	// Contains both a greeting word and "calories"; the greeting branch
	// is checked first, so it wins.
	reply := bot.Reply(testProfile(), "hi, how many calories do I have left?")
	assert.Equal(t, "Hello! How can I help you today with your fitness and nutrition goals?", reply)
}

func TestGreetingRequiresWholeWord(t *testing.T) {
	bot, _ := newTestBot(t)

	// "chicken" contains the letters "hi"; it must not read as a greeting.
	reply := bot.Reply(testProfile(), "I had chicken breast and a banana")
	assert.Contains(t, reply, "I've logged your meal")
}

func TestNutritionTargetSummary(t *testing.T) {
	bot, _ := newTestBot(t)
	profile := testProfile()

	reply := bot.Reply(profile, "what are my macros?")
	assert.Contains(t, reply, "your daily targets are")
	assert.Contains(t, reply, "Calories: 2056 calories")
	assert.Contains(t, reply, "Protein: 206g")
	assert.Contains(t, reply, "Carbs: 154g")
	assert.Contains(t, reply, "Fat: 69g")
}

func TestNutritionRemainingCaloriesEmptyDay(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "how many calories can I eat?")
	assert.Contains(t, reply, "You haven't logged any food today yet")
	assert.Contains(t, reply, "Calories: 2056 calories")
}

func TestNutritionRemainingCaloriesAfterLogging(t *testing.T) {
	bot, logs := newTestBot(t)
	profile := testProfile()

	meal := nutrition.SummarizeMeal("Lunch", []models.Food{nutrition.CommonFoods[0]}) // 165 kcal
	_, err := logs.AppendMeal(meal)
	require.NoError(t, err)

	reply := bot.Reply(profile, "how many calories do I have left today?")
	assert.Contains(t, reply, "you've consumed 165 calories out of your 2056 calorie goal")
	assert.Contains(t, reply, "You have 1891 calories remaining.")
}

func TestNutritionProteinConsumed(t *testing.T) {
	bot, logs := newTestBot(t)

	meal := nutrition.SummarizeMeal("Lunch", []models.Food{nutrition.CommonFoods[0]}) // 31g protein
	_, err := logs.AppendMeal(meal)
	require.NoError(t, err)

	reply := bot.Reply(testProfile(), "how much protein macros have I eaten?")
	assert.Contains(t, reply, "31g of protein out of your 206g goal")
}

func TestWorkoutLogging(t *testing.T) {
	bot, logs := newTestBot(t)

	reply := bot.Reply(testProfile(), "I ran for 30 minutes, easy pace")
	assert.Contains(t, reply, "I've logged your low intensity Running workout for 30 minutes")
	assert.Contains(t, reply, "approximately 240 calories") // round(30 * 8 * 70/70)

	log, err := logs.WorkoutLogFor(logs.Today())
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Len(t, log.Workouts, 1)
	assert.Equal(t, "Running", log.Workouts[0].Type)
	assert.Equal(t, 30, log.Workouts[0].Duration)
	assert.Equal(t, models.LowIntensity, log.Workouts[0].Intensity)
	assert.Equal(t, 240, log.Workouts[0].CaloriesBurned)
}

func TestWorkoutLoggingHoursConverted(t *testing.T) {
	bot, logs := newTestBot(t)

	bot.Reply(testProfile(), "i did yoga for 1 hour")

	log, err := logs.WorkoutLogFor(logs.Today())
	require.NoError(t, err)
	require.Len(t, log.Workouts, 1)
	assert.Equal(t, "Yoga", log.Workouts[0].Type)
	assert.Equal(t, 60, log.Workouts[0].Duration)
}

func TestWorkoutLoggingMissingDurationAsksBack(t *testing.T) {
	bot, logs := newTestBot(t)

	reply := bot.Reply(testProfile(), "i did some swimming today")
	assert.Equal(t, "How long did you do Swimming for?", reply)

	// no partial log is written
	log, err := logs.WorkoutLogFor(logs.Today())
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestWorkoutLoggingUnknownTypeAsksBack(t *testing.T) {
	bot, logs := newTestBot(t)

	reply := bot.Reply(testProfile(), "i did zumba for 30 minutes")
	assert.Contains(t, reply, "couldn't identify the type of workout")

	log, err := logs.WorkoutLogFor(logs.Today())
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestWorkoutLoggingStreakNote(t *testing.T) {
	local, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	// Yesterday already has a workout, so logging today makes a 2-day streak.
	require.NoError(t, local.SaveWorkoutLog("u1", &models.WorkoutLog{
		Date:     "2026-08-29",
		Workouts: []models.Workout{{Type: "Running", Duration: 30}},
	}))

	tiered := storage.NewTiered(nil, local, zap.NewNop())
	logs := logstore.New(tiered, "u1", zap.NewNop(),
		logstore.WithClock(func() time.Time { return testToday }))
	bot := NewBot(logs, zap.NewNop(), WithRand(rand.New(rand.NewSource(1))))

	reply := bot.Reply(testProfile(), "I went running for 20 minutes")
	assert.Contains(t, reply, "You're on a 2-day workout streak!")
}

func TestWorkoutLoggingFirstDayHasNoStreakNote(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "I went running for 20 minutes")
	assert.NotContains(t, reply, "workout streak")
}

func TestFoodLogging(t *testing.T) {
	bot, logs := newTestBot(t)
	profile := testProfile()

	reply := bot.Reply(profile, "I had chicken breast and a banana")
	assert.Contains(t, reply, "I've logged your meal (270 calories)")
	assert.Contains(t, reply, "Chicken Breast (100g): 165 calories")
	assert.Contains(t, reply, "Banana (medium): 105 calories")
	assert.Contains(t, reply, "You've consumed 270 out of 2056 calories today.")
	assert.Contains(t, reply, "You have 1786 calories remaining.")

	log, err := logs.NutritionLogFor(logs.Today())
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Len(t, log.Meals, 1)
	assert.Equal(t, 270.0, log.TotalCalories)
	assert.InDelta(t, 32.3, log.TotalMacros.Protein, 1e-9)
	assert.InDelta(t, 27.0, log.TotalMacros.Carbs, 1e-9)
	assert.InDelta(t, 4.0, log.TotalMacros.Fat, 1e-9)
}

func TestFoodLoggingUnknownFoodAsksBack(t *testing.T) {
	bot, logs := newTestBot(t)

	reply := bot.Reply(testProfile(), "I ate a mystery casserole")
	assert.Contains(t, reply, "couldn't identify the specific foods")

	log, err := logs.NutritionLogFor(logs.Today())
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestMealSuggestion(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "can you suggest a breakfast?")
	assert.Contains(t, reply, "Here's a suggested breakfast")
	assert.Contains(t, reply, "Total macros:")
}

func TestMealSuggestionDefaultsToSnack(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "suggest something to eat")
	assert.Contains(t, reply, "Here's a suggested snack")
}

func TestCalorieWordRoutesToNutritionQueryBeforeSuggestion(t *testing.T) {
	bot, _ := newTestBot(t)

	// The word "calories" satisfies the nutrition-query predicate, which
	// sits ahead of meal suggestion in the priority order.
	reply := bot.Reply(testProfile(), "suggest a dinner under 100 calories")
	assert.Contains(t, reply, "your daily targets are")
}

func TestMealSuggestionDeclinesOverBudget(t *testing.T) {
	bot, _ := newTestBot(t)

	// Every dinner candidate is well over 100 calories.
	reply := bot.handleMealSuggestion(testProfile(), "suggest a dinner under 100 calories")
	assert.Contains(t, reply, "I don't have a dinner suggestion under 100 calories")
}

func TestWorkoutSuggestion(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "suggest a workout for 25 minutes")
	assert.Contains(t, reply, "workout for 25 minutes")
	assert.Contains(t, reply, "Benefits:")
	// weight-loss pool
	assert.Regexp(t, "HIIT|Running|Swimming", reply)
}

func TestWorkoutSuggestionDefaults(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "suggest an exercise")
	assert.Contains(t, reply, "workout for 30 minutes")
	assert.Contains(t, reply, "moderate intensity")
}

func TestFallbackHelpMenu(t *testing.T) {
	bot, _ := newTestBot(t)

	reply := bot.Reply(testProfile(), "what's the weather like?")
	assert.Contains(t, reply, "You can ask me to:")
	assert.Contains(t, reply, "Suggest meals or workouts")
}

func TestMealSuggestionPrecedenceOverFoodLogging(t *testing.T) {
	bot, logs := newTestBot(t)

	// "had" would also satisfy the food-logging predicate, but meal
	// suggestion is checked first.
	reply := bot.Reply(testProfile(), "suggest a lunch like the one I had")
	assert.Contains(t, reply, "Here's a suggested lunch")

	log, err := logs.NutritionLogFor(logs.Today())
	require.NoError(t, err)
	assert.Nil(t, log)
}
