// internal/server/server_test.go
package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatfit/internal/chat"
	"chatfit/internal/logstore"
	"chatfit/internal/models"
	"chatfit/internal/storage"
)

var testToday = time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	local, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	store := storage.NewTiered(nil, local, zap.NewNop())
	logs := logstore.New(store, "u1", zap.NewNop(),
		logstore.WithClock(func() time.Time { return testToday }))
	bot := chat.NewBot(logs, zap.NewNop(), chat.WithRand(rand.New(rand.NewSource(1))))

	return New(&Config{Host: "127.0.0.1", Port: 0}, store, logs, bot, "u1", zap.NewNop())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func onboard(t *testing.T, s *Server) models.UserProfile {
	t.Helper()
	rec := doRequest(t, s, http.MethodPut, "/api/profile", models.UserProfile{
		Name:               "Sam",
		Age:                30,
		Weight:             70,
		Height:             175,
		Gender:             "male",
		ActivityLevel:      models.ModeratelyActive,
		Goal:               models.WeightLoss,
		OnboardingComplete: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	return saved
}

func TestPutProfileRecomputesTargets(t *testing.T) {
	s := newTestServer(t)

	saved := onboard(t, s)
	assert.Equal(t, 2056, saved.DailyCalories)
	assert.Equal(t, models.Macros{Protein: 206, Carbs: 154, Fat: 69}, saved.DailyMacros)
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	onboard(t, s)

	rec = doRequest(t, s, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local", rec.Header().Get(tierHeader))

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Sam", profile.Name)
}

func TestChatRequiresProfile(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{Message: "hello"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestChatGreeting(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello! How can I help you today with your fitness and nutrition goals?", resp.Reply)
}

func TestChatLogsMealAndSummaryReflectsIt(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{Message: "I had chicken breast and a banana"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "2026-08-30", summary.Date)
	require.NotNil(t, summary.Nutrition)
	assert.Equal(t, 270.0, summary.Nutrition.TotalCalories)
	assert.Zero(t, summary.Streak)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreakEndpoint(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{Message: "I ran for 30 minutes"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/streak", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["streak"])
}

func TestToolCallChat(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	body := map[string]interface{}{
		"name":      "chat",
		"arguments": map[string]interface{}{"message": "hello"},
	}
	rec := doRequest(t, s, http.MethodPost, "/mcp", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "How can I help you today")
}

func TestToolCallUnknownTool(t *testing.T) {
	s := newTestServer(t)

	body := map[string]interface{}{"name": "teleport", "arguments": map[string]interface{}{}}
	rec := doRequest(t, s, http.MethodPost, "/mcp", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToolCallSummary(t *testing.T) {
	s := newTestServer(t)
	onboard(t, s)

	doRequest(t, s, http.MethodPost, "/api/chat", chatRequest{Message: "I had a banana"})

	body := map[string]interface{}{
		"name":      "get_daily_summary",
		"arguments": map[string]interface{}{"date": "2026-08-30"},
	}
	rec := doRequest(t, s, http.MethodPost, "/mcp", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2026-08-30")
}
