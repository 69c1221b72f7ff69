// internal/storage/postgres.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatfit/internal/models"
)

// PostgresStore is the remote tier. Log headers are upserted by their
// natural key (user_id + date); child rows (meals with their foods,
// workouts) are deleted and reinserted on every save. The rewrite is
// not wrapped in a transaction, so a failure between delete and insert
// loses child rows remotely — a known limitation of the sync protocol,
// tolerated because the local tier still holds the full record.
type PostgresStore struct {
	db  *gorm.DB
	log *zap.Logger
}

type profileRow struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             string    `gorm:"uniqueIndex;not null"`
	Name               string
	Age                int
	Weight             float64
	Height             float64
	Gender             string
	ActivityLevel      string
	Goal               string
	Preferences        string // JSON-encoded dietary lists
	DailyCalories      int
	DailyProtein       float64
	DailyCarbs         float64
	DailyFat           float64
	OnboardingComplete bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type nutritionLogRow struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        string    `gorm:"index:idx_nutrition_user_date,unique;not null"`
	Date          string    `gorm:"index:idx_nutrition_user_date,unique;not null"`
	TotalCalories float64
	TotalProtein  float64
	TotalCarbs    float64
	TotalFat      float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type mealRow struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NutritionLogID uuid.UUID `gorm:"type:uuid;index;not null"`
	Position       int
	Name           string
	Time           time.Time
	TotalCalories  float64
	TotalProtein   float64
	TotalCarbs     float64
	TotalFat       float64
	CreatedAt      time.Time
}

type foodRow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MealID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Position    int
	Name        string
	ServingSize string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	CreatedAt   time.Time
}

type workoutLogRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"index:idx_workout_user_date,unique;not null"`
	Date      string    `gorm:"index:idx_workout_user_date,unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type workoutRow struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkoutLogID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Position       int
	Type           string
	Duration       int
	Intensity      string
	CaloriesBurned int
	Notes          string
	CreatedAt      time.Time
}

func (r *profileRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *nutritionLogRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *workoutLogRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func NewPostgresStore(dsn string, log *zap.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&profileRow{}, &nutritionLogRow{}, &mealRow{}, &foodRow{},
		&workoutLogRow{}, &workoutRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &PostgresStore{db: db, log: log}, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) SaveProfile(profile *models.UserProfile) error {
	prefs, err := json.Marshal(map[string][]string{
		"preferences": profile.DietaryPreferences,
		"allergies":   profile.Allergies,
		"dislikes":    profile.Dislikes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dietary lists: %w", err)
	}

	row := profileRow{}
	err = s.db.Where("user_id = ?", profile.ID).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query profile: %w", err)
	}

	row.UserID = profile.ID
	row.Name = profile.Name
	row.Age = profile.Age
	row.Weight = profile.Weight
	row.Height = profile.Height
	row.Gender = profile.Gender
	row.ActivityLevel = string(profile.ActivityLevel)
	row.Goal = string(profile.Goal)
	row.Preferences = string(prefs)
	row.DailyCalories = profile.DailyCalories
	row.DailyProtein = profile.DailyMacros.Protein
	row.DailyCarbs = profile.DailyMacros.Carbs
	row.DailyFat = profile.DailyMacros.Fat
	row.OnboardingComplete = profile.OnboardingComplete

	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetProfile(id string) (*models.UserProfile, error) {
	row := profileRow{}
	err := s.db.Where("user_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile := &models.UserProfile{
		ID:                 row.UserID,
		Name:               row.Name,
		Age:                row.Age,
		Weight:             row.Weight,
		Height:             row.Height,
		Gender:             row.Gender,
		ActivityLevel:      models.ActivityLevel(row.ActivityLevel),
		Goal:               models.Goal(row.Goal),
		DailyCalories:      row.DailyCalories,
		DailyMacros:        models.Macros{Protein: row.DailyProtein, Carbs: row.DailyCarbs, Fat: row.DailyFat},
		OnboardingComplete: row.OnboardingComplete,
	}

	if row.Preferences != "" {
		lists := map[string][]string{}
		if err := json.Unmarshal([]byte(row.Preferences), &lists); err != nil {
			s.log.Warn("discarding malformed dietary lists", zap.String("user_id", id), zap.Error(err))
		} else {
			profile.DietaryPreferences = lists["preferences"]
			profile.Allergies = lists["allergies"]
			profile.Dislikes = lists["dislikes"]
		}
	}

	return profile, nil
}

func (s *PostgresStore) SaveNutritionLog(userID string, log *models.NutritionLog) error {
	header := nutritionLogRow{}
	err := s.db.Where("user_id = ? AND date = ?", userID, log.Date).First(&header).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query nutrition log: %w", err)
	}

	header.UserID = userID
	header.Date = log.Date
	header.TotalCalories = log.TotalCalories
	header.TotalProtein = log.TotalMacros.Protein
	header.TotalCarbs = log.TotalMacros.Carbs
	header.TotalFat = log.TotalMacros.Fat

	if err := s.db.Save(&header).Error; err != nil {
		return fmt.Errorf("failed to save nutrition log: %w", err)
	}

	// Rewrite children: collect the meal ids, drop their foods, drop the
	// meals, then reinsert everything from the in-memory record.
	var mealIDs []uuid.UUID
	if err := s.db.Model(&mealRow{}).Where("nutrition_log_id = ?", header.ID).
		Pluck("id", &mealIDs).Error; err != nil {
		return fmt.Errorf("failed to list meals: %w", err)
	}
	if len(mealIDs) > 0 {
		if err := s.db.Where("meal_id IN ?", mealIDs).Delete(&foodRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete foods: %w", err)
		}
	}
	if err := s.db.Where("nutrition_log_id = ?", header.ID).Delete(&mealRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}

	for i, meal := range log.Meals {
		mr := mealRow{
			ID:             uuid.New(),
			NutritionLogID: header.ID,
			Position:       i,
			Name:           meal.Name,
			Time:           meal.Time,
			TotalCalories:  meal.TotalCalories,
			TotalProtein:   meal.TotalMacros.Protein,
			TotalCarbs:     meal.TotalMacros.Carbs,
			TotalFat:       meal.TotalMacros.Fat,
		}
		if err := s.db.Create(&mr).Error; err != nil {
			return fmt.Errorf("failed to insert meal: %w", err)
		}

		for j, food := range meal.Foods {
			fr := foodRow{
				ID:          uuid.New(),
				MealID:      mr.ID,
				Position:    j,
				Name:        food.Name,
				ServingSize: food.ServingSize,
				Calories:    food.Calories,
				Protein:     food.Macros.Protein,
				Carbs:       food.Macros.Carbs,
				Fat:         food.Macros.Fat,
			}
			if err := s.db.Create(&fr).Error; err != nil {
				return fmt.Errorf("failed to insert food: %w", err)
			}
		}
	}

	return nil
}

func (s *PostgresStore) GetNutritionLog(userID, date string) (*models.NutritionLog, error) {
	header := nutritionLogRow{}
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query nutrition log: %w", err)
	}

	log := &models.NutritionLog{
		Date:          header.Date,
		TotalCalories: header.TotalCalories,
		TotalMacros:   models.Macros{Protein: header.TotalProtein, Carbs: header.TotalCarbs, Fat: header.TotalFat},
	}

	var mealRows []mealRow
	if err := s.db.Where("nutrition_log_id = ?", header.ID).
		Order("position").Find(&mealRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}

	for _, mr := range mealRows {
		meal := models.Meal{
			ID:            mr.ID.String(),
			Name:          mr.Name,
			Time:          mr.Time,
			TotalCalories: mr.TotalCalories,
			TotalMacros:   models.Macros{Protein: mr.TotalProtein, Carbs: mr.TotalCarbs, Fat: mr.TotalFat},
		}

		var foodRows []foodRow
		if err := s.db.Where("meal_id = ?", mr.ID).
			Order("position").Find(&foodRows).Error; err != nil {
			return nil, fmt.Errorf("failed to load foods: %w", err)
		}
		for _, fr := range foodRows {
			meal.Foods = append(meal.Foods, models.Food{
				Name:        fr.Name,
				ServingSize: fr.ServingSize,
				Calories:    fr.Calories,
				Macros:      models.Macros{Protein: fr.Protein, Carbs: fr.Carbs, Fat: fr.Fat},
			})
		}

		log.Meals = append(log.Meals, meal)
	}

	return log, nil
}

func (s *PostgresStore) SaveWorkoutLog(userID string, log *models.WorkoutLog) error {
	header := workoutLogRow{}
	err := s.db.Where("user_id = ? AND date = ?", userID, log.Date).First(&header).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query workout log: %w", err)
	}

	header.UserID = userID
	header.Date = log.Date
	if err := s.db.Save(&header).Error; err != nil {
		return fmt.Errorf("failed to save workout log: %w", err)
	}

	if err := s.db.Where("workout_log_id = ?", header.ID).Delete(&workoutRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete workouts: %w", err)
	}

	for i, workout := range log.Workouts {
		wr := workoutRow{
			ID:             uuid.New(),
			WorkoutLogID:   header.ID,
			Position:       i,
			Type:           workout.Type,
			Duration:       workout.Duration,
			Intensity:      string(workout.Intensity),
			CaloriesBurned: workout.CaloriesBurned,
			Notes:          workout.Notes,
		}
		if err := s.db.Create(&wr).Error; err != nil {
			return fmt.Errorf("failed to insert workout: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) GetWorkoutLog(userID, date string) (*models.WorkoutLog, error) {
	header := workoutLogRow{}
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query workout log: %w", err)
	}

	return s.loadWorkoutLog(&header)
}

func (s *PostgresStore) ListWorkoutLogs(userID string) ([]*models.WorkoutLog, error) {
	var headers []workoutLogRow
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&headers).Error; err != nil {
		return nil, fmt.Errorf("failed to query workout logs: %w", err)
	}

	logs := make([]*models.WorkoutLog, 0, len(headers))
	for i := range headers {
		log, err := s.loadWorkoutLog(&headers[i])
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

func (s *PostgresStore) loadWorkoutLog(header *workoutLogRow) (*models.WorkoutLog, error) {
	log := &models.WorkoutLog{Date: header.Date}

	var rows []workoutRow
	if err := s.db.Where("workout_log_id = ?", header.ID).
		Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}

	for _, wr := range rows {
		log.Workouts = append(log.Workouts, models.Workout{
			Type:           wr.Type,
			Duration:       wr.Duration,
			Intensity:      models.Intensity(wr.Intensity),
			CaloriesBurned: wr.CaloriesBurned,
			Notes:          wr.Notes,
		})
	}

	return log, nil
}
