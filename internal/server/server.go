// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"chatfit/internal/chat"
	"chatfit/internal/logstore"
	"chatfit/internal/storage"
)

type Config struct {
	Host string
	Port int
}

// Server exposes the chat assistant and the dashboard reads over HTTP,
// plus a tool-call endpoint at /mcp for MCP-style clients.
type Server struct {
	httpServer *http.Server
	store      *storage.Tiered
	logs       *logstore.Service
	bot        *chat.Bot
	userID     string
	log        *zap.Logger
}

func New(cfg *Config, store *storage.Tiered, logs *logstore.Service, bot *chat.Bot, userID string, log *zap.Logger) *Server {
	s := &Server{
		store:  store,
		logs:   logs,
		bot:    bot,
		userID: userID,
		log:    log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/chat", s.handleChat).Methods("POST")
	r.HandleFunc("/api/profile", s.handleGetProfile).Methods("GET")
	r.HandleFunc("/api/profile", s.handlePutProfile).Methods("PUT")
	r.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	r.HandleFunc("/api/streak", s.handleStreak).Methods("GET")
	r.HandleFunc("/mcp", s.handleToolCall).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: c.Handler(s.loggingMiddleware(r)),
	}

	return s
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	if s.store != nil {
		s.store.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapper.statusCode),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
