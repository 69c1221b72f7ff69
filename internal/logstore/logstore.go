// internal/logstore/logstore.go
package logstore

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"chatfit/internal/models"
	"chatfit/internal/nutrition"
	"chatfit/internal/storage"
)

// Service is the daily log store: per-day nutrition and workout records
// with whole-record persistence and derived streak computation. All
// operations are scoped to a single user.
type Service struct {
	store  *storage.Tiered
	userID string
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*Service)

// WithClock overrides the wall clock, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store *storage.Tiered, userID string, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		userID: userID,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Today() string {
	return models.DateKey(s.now())
}

// Profile returns the stored profile, or nil when the user has not
// completed onboarding yet.
func (s *Service) Profile() (*models.UserProfile, error) {
	profile, _, err := s.store.GetProfile(s.userID)
	return profile, err
}

// SaveProfile recomputes the derived daily targets before persisting,
// so stored targets can never drift from the physical attributes.
func (s *Service) SaveProfile(profile *models.UserProfile) error {
	profile.ID = s.userID
	nutrition.ApplyTargets(profile)
	return s.store.SaveProfile(profile)
}

func (s *Service) NutritionLogFor(date string) (*models.NutritionLog, error) {
	log, _, err := s.store.GetNutritionLog(s.userID, date)
	return log, err
}

func (s *Service) WorkoutLogFor(date string) (*models.WorkoutLog, error) {
	log, _, err := s.store.GetWorkoutLog(s.userID, date)
	return log, err
}

// AppendMeal adds a meal to today's nutrition log, creating the log on
// first use, recomputes the day's aggregates and persists the whole
// record. Returns the updated log.
func (s *Service) AppendMeal(meal models.Meal) (*models.NutritionLog, error) {
	today := s.Today()

	log, _, err := s.store.GetNutritionLog(s.userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's nutrition log: %w", err)
	}
	if log == nil {
		log = &models.NutritionLog{Date: today}
	}

	log.Meals = append(log.Meals, meal)
	log.Recompute()

	if err := s.store.SaveNutritionLog(s.userID, log); err != nil {
		return nil, fmt.Errorf("failed to save nutrition log: %w", err)
	}

	s.log.Info("meal logged",
		zap.String("date", today),
		zap.String("meal", meal.Name),
		zap.Float64("calories", meal.TotalCalories))
	return log, nil
}

// AppendWorkout adds a workout to today's workout log, creating the log
// on first use.
func (s *Service) AppendWorkout(workout models.Workout) error {
	today := s.Today()

	log, _, err := s.store.GetWorkoutLog(s.userID, today)
	if err != nil {
		return fmt.Errorf("failed to load today's workout log: %w", err)
	}
	if log == nil {
		log = &models.WorkoutLog{Date: today}
	}

	log.Workouts = append(log.Workouts, workout)

	if err := s.store.SaveWorkoutLog(s.userID, log); err != nil {
		return fmt.Errorf("failed to save workout log: %w", err)
	}

	s.log.Info("workout logged",
		zap.String("date", today),
		zap.String("type", workout.Type),
		zap.Int("duration", workout.Duration))
	return nil
}

// WorkoutStreak counts consecutive calendar days ending today that have
// a workout log. No workout today means no streak, regardless of
// history.
func (s *Service) WorkoutStreak() (int, error) {
	logs, _, err := s.store.ListWorkoutLogs(s.userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list workout logs: %w", err)
	}
	if len(logs) == 0 {
		return 0, nil
	}

	// Logs arrive in descending date order from the store.
	if logs[0].Date != s.Today() {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(logs); i++ {
		current, err := time.Parse("2006-01-02", logs[i-1].Date)
		if err != nil {
			return 0, fmt.Errorf("failed to parse log date %q: %w", logs[i-1].Date, err)
		}
		previous, err := time.Parse("2006-01-02", logs[i].Date)
		if err != nil {
			return 0, fmt.Errorf("failed to parse log date %q: %w", logs[i].Date, err)
		}

		if int(current.Sub(previous).Hours()/24) == 1 {
			streak++
		} else {
			break
		}
	}

	return streak, nil
}
