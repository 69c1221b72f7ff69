// internal/server/tools.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"go.uber.org/zap"
)

type ChatParams struct {
	Message string `json:"message" description:"Free-text message for the fitness assistant"`
}

type SummaryParams struct {
	Date string `json:"date,omitempty" description:"Date to summarize (YYYY-MM-DD, defaults to today)"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

// handleToolCall serves MCP-style tool calls over plain HTTP, routing
// by tool name.
func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	var result *protocol.CallToolResult
	var err error

	switch request.Name {
	case "chat":
		result, err = s.handleChatTool(&request)
	case "get_daily_summary":
		result, err = s.handleSummaryTool(&request)
	case "get_streak":
		result, err = s.handleStreakTool(&request)
	default:
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("failed to encode tool result", zap.Error(err))
	}
}

func (s *Server) handleChatTool(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ChatParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	profile, _, err := s.store.GetProfile(s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !profile.OnboardingComplete {
		return nil, fmt.Errorf("profile not set up yet")
	}

	reply := s.bot.Reply(profile, params.Message)

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: reply,
			},
		},
	}, nil
}

func (s *Server) handleSummaryTool(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SummaryParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	date := params.Date
	if date == "" {
		date = s.logs.Today()
	}

	summary, err := s.buildSummary(date)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	return s.createJSONResponse(summary)
}

func (s *Server) handleStreakTool(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	streak, err := s.logs.WorkoutStreak()
	if err != nil {
		return nil, fmt.Errorf("failed to compute streak: %w", err)
	}

	return s.createJSONResponse(map[string]int{"streak": streak})
}

func (s *Server) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
