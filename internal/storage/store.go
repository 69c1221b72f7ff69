// internal/storage/store.go
package storage

import (
	"chatfit/internal/models"
)

// Store is one persistence tier. Reads return (nil, nil) when no record
// exists; absence is not an error. Writes carry full-record overwrite
// semantics, never deltas.
type Store interface {
	SaveProfile(profile *models.UserProfile) error
	GetProfile(id string) (*models.UserProfile, error)

	SaveNutritionLog(userID string, log *models.NutritionLog) error
	GetNutritionLog(userID, date string) (*models.NutritionLog, error)

	SaveWorkoutLog(userID string, log *models.WorkoutLog) error
	GetWorkoutLog(userID, date string) (*models.WorkoutLog, error)
	ListWorkoutLogs(userID string) ([]*models.WorkoutLog, error)

	Close() error
}

// Tier identifies which backend served an operation.
type Tier string

const (
	TierRemote Tier = "remote"
	TierLocal  Tier = "local"
)
