// Package server provides the read-only spectator HTTP server.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/bananarush/internal/server/api"
	"github.com/ayusman/bananarush/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store *store.Store
	Feed  *Feed
	// LiveInterval is the websocket broadcast period. Zero means DefaultLiveInterval.
	LiveInterval time.Duration
}

// Server represents the spectator HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	live   *LiveHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		runs := api.NewRunsHandler(s.config.Store)
		s.mux.Handle("/api/runs", runs)
		s.mux.Handle("/api/runs/", runs)
	}

	if s.config.Feed != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.live = NewLiveHandler(s.config.Feed, s.config.LiveInterval)
		s.mux.Handle("/api/live", s.live)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state with the latest snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, _ := s.config.Feed.Latest()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops the live broadcaster.
func (s *Server) Close() {
	if s.live != nil {
		s.live.Close()
	}
}
