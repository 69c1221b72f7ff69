// internal/chat/bot.go
package chat

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"chatfit/internal/models"
)

// Greeting words are matched on word boundaries: a plain substring test
// would fire on "chicken" (contains "hi") and misroute food logging.
var greetingPattern = regexp.MustCompile(`\b(hello|hi|hey)\b`)

// LogStore is the daily log capability the handlers need. Satisfied by
// logstore.Service.
type LogStore interface {
	Today() string
	NutritionLogFor(date string) (*models.NutritionLog, error)
	AppendMeal(meal models.Meal) (*models.NutritionLog, error)
	AppendWorkout(workout models.Workout) error
	WorkoutStreak() (int, error)
}

// intent pairs a predicate over the normalized message with its
// handler. Predicates are plain substring tests and are not mutually
// exclusive; the classifier's fixed evaluation order is what
// disambiguates, so the order of the intents slice is part of the
// contract.
type intent struct {
	name   string
	match  func(msg string) bool
	handle func(profile *models.UserProfile, msg string) string
}

// Bot classifies one free-text message per call and produces a text
// reply, logging meals and workouts as a side effect. Messages are
// handled one at a time; the mutex serializes concurrent callers.
type Bot struct {
	logs    LogStore
	rng     *rand.Rand
	log     *zap.Logger
	intents []intent

	mu sync.Mutex
}

type Option func(*Bot)

// WithRand replaces the suggestion randomness source; tests pass a
// seeded one since multi-candidate suggestions are otherwise
// non-deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) { b.rng = rng }
}

func NewBot(logs LogStore, log *zap.Logger, opts ...Option) *Bot {
	b := &Bot{
		logs: logs,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  log,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.intents = []intent{
		{
			name:   "greeting",
			match:  greetingPattern.MatchString,
			handle: b.handleGreeting,
		},
		{
			name:   "nutrition_query",
			match:  func(msg string) bool { return containsAny(msg, "calorie", "macro") },
			handle: b.handleNutritionQuestion,
		},
		{
			name: "workout_logging",
			match: func(msg string) bool {
				return containsAny(msg, "i did", "i completed", "i finished", "i went", "i ran", "i walked")
			},
			handle: b.handleWorkoutLogging,
		},
		{
			name: "meal_suggestion",
			match: func(msg string) bool {
				return strings.Contains(msg, "suggest") &&
					containsAny(msg, "meal", "breakfast", "lunch", "dinner", "snack", "eat")
			},
			handle: b.handleMealSuggestion,
		},
		{
			name: "workout_suggestion",
			match: func(msg string) bool {
				return strings.Contains(msg, "suggest") &&
					containsAny(msg, "workout", "exercise", "training")
			},
			handle: b.handleWorkoutSuggestion,
		},
		{
			name: "food_logging",
			match: func(msg string) bool {
				return containsAny(msg, "ate", "had", "consumed") ||
					(strings.Contains(msg, "log") && strings.Contains(msg, "food"))
			},
			handle: b.handleFoodLogging,
		},
	}

	return b
}

// Reply classifies the message and runs the first matching handler.
// Unmatched messages get the help menu.
func (b *Bot) Reply(profile *models.UserProfile, message string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg := strings.ToLower(message)

	for _, in := range b.intents {
		if in.match(msg) {
			b.log.Debug("message classified",
				zap.String("intent", in.name))
			return in.handle(profile, msg)
		}
	}

	b.log.Debug("message classified", zap.String("intent", "fallback"))
	return helpMenu
}

const helpMenu = `I'm here to help with your fitness and nutrition goals. You can ask me to:
- Suggest meals or workouts
- Log your food and exercise
- Track your progress
- Answer questions about nutrition

What would you like to do?`

func containsAny(msg string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}
