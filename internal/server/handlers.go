// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"chatfit/internal/models"
)

const tierHeader = "X-Storage-Tier"

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type summaryResponse struct {
	Date      string               `json:"date"`
	Nutrition *models.NutritionLog `json:"nutrition,omitempty"`
	Workouts  *models.WorkoutLog   `json:"workouts,omitempty"`
	Streak    int                  `json:"streak"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	profile, _, err := s.store.GetProfile(s.userID)
	if err != nil {
		s.log.Error("failed to load profile", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil || !profile.OnboardingComplete {
		s.writeError(w, http.StatusConflict, "profile not set up yet")
		return
	}

	reply := s.bot.Reply(profile, req.Message)
	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, tier, err := s.store.GetProfile(s.userID)
	if err != nil {
		s.log.Error("failed to load profile", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		s.writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	w.Header().Set(tierHeader, string(tier))
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	// SaveProfile recomputes the derived targets, so any client-supplied
	// daily_calories/daily_macros values are overwritten.
	if err := s.logs.SaveProfile(&profile); err != nil {
		s.log.Error("failed to save profile", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	s.writeJSON(w, http.StatusOK, &profile)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.logs.Today()
	}

	summary, err := s.buildSummary(date)
	if err != nil {
		s.log.Error("failed to build summary", zap.String("date", date), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.logs.WorkoutStreak()
	if err != nil {
		s.log.Error("failed to compute streak", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to compute streak")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

func (s *Server) buildSummary(date string) (*summaryResponse, error) {
	nutritionLog, err := s.logs.NutritionLogFor(date)
	if err != nil {
		return nil, err
	}
	workoutLog, err := s.logs.WorkoutLogFor(date)
	if err != nil {
		return nil, err
	}
	streak, err := s.logs.WorkoutStreak()
	if err != nil {
		return nil, err
	}

	return &summaryResponse{
		Date:      date,
		Nutrition: nutritionLog,
		Workouts:  workoutLog,
		Streak:    streak,
	}, nil
}
