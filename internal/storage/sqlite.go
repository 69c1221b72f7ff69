// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"chatfit/internal/models"
)

// SQLiteStore is the local tier: one row per logical record, payload
// stored as JSON. Malformed payloads are treated as absent data.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, log: log}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profiles (
        id TEXT PRIMARY KEY,
        data TEXT NOT NULL,
        updated_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS nutrition_logs (
        user_id TEXT NOT NULL,
        date TEXT NOT NULL,
        data TEXT NOT NULL,
        updated_at DATETIME NOT NULL,
        PRIMARY KEY (user_id, date)
    );

    CREATE TABLE IF NOT EXISTS workout_logs (
        user_id TEXT NOT NULL,
        date TEXT NOT NULL,
        data TEXT NOT NULL,
        updated_at DATETIME NOT NULL,
        PRIMARY KEY (user_id, date)
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) SaveProfile(profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
        INSERT INTO profiles (id, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
    `
	if _, err := s.db.Exec(query, profile.ID, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProfile(id string) (*models.UserProfile, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM profiles WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile := &models.UserProfile{}
	if err := json.Unmarshal([]byte(data), profile); err != nil {
		s.log.Warn("discarding malformed stored profile", zap.String("id", id), zap.Error(err))
		return nil, nil
	}
	return profile, nil
}

func (s *SQLiteStore) SaveNutritionLog(userID string, log *models.NutritionLog) error {
	return s.saveLog("nutrition_logs", userID, log.Date, log)
}

func (s *SQLiteStore) GetNutritionLog(userID, date string) (*models.NutritionLog, error) {
	log := &models.NutritionLog{}
	ok, err := s.loadLog("nutrition_logs", userID, date, log)
	if err != nil || !ok {
		return nil, err
	}
	return log, nil
}

func (s *SQLiteStore) SaveWorkoutLog(userID string, log *models.WorkoutLog) error {
	return s.saveLog("workout_logs", userID, log.Date, log)
}

func (s *SQLiteStore) GetWorkoutLog(userID, date string) (*models.WorkoutLog, error) {
	log := &models.WorkoutLog{}
	ok, err := s.loadLog("workout_logs", userID, date, log)
	if err != nil || !ok {
		return nil, err
	}
	return log, nil
}

func (s *SQLiteStore) ListWorkoutLogs(userID string) ([]*models.WorkoutLog, error) {
	rows, err := s.db.Query(`SELECT date, data FROM workout_logs WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workout logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WorkoutLog
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			return nil, fmt.Errorf("failed to scan workout log: %w", err)
		}

		log := &models.WorkoutLog{}
		if err := json.Unmarshal([]byte(data), log); err != nil {
			s.log.Warn("discarding malformed workout log", zap.String("date", date), zap.Error(err))
			continue
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *SQLiteStore) saveLog(table, userID, date string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (user_id, date, data, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(user_id, date) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
    `, table)
	if _, err := s.db.Exec(query, userID, date, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadLog(table, userID, date string, record interface{}) (bool, error) {
	var data string
	query := fmt.Sprintf(`SELECT data FROM %s WHERE user_id = ? AND date = ?`, table)
	err := s.db.QueryRow(query, userID, date).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query log: %w", err)
	}

	if err := json.Unmarshal([]byte(data), record); err != nil {
		s.log.Warn("discarding malformed stored log",
			zap.String("table", table), zap.String("date", date), zap.Error(err))
		return false, nil
	}
	return true, nil
}
