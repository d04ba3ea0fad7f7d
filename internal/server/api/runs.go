// Package api provides HTTP API handlers for the spectator server.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/bananarush/internal/store"
)

// RunsHandler serves the run history of the session.
type RunsHandler struct {
	store *store.Store
}

// NewRunsHandler creates a new RunsHandler with the given store.
func NewRunsHandler(s *store.Store) *RunsHandler {
	return &RunsHandler{store: s}
}

type runResponse struct {
	ID         string `json:"id"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Frames     int    `json:"frames"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at"`
}

type listRunsResponse struct {
	Runs  []runResponse `json:"runs"`
	Total int           `json:"total"`
	Best  int           `json:"best"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(r *store.Run) runResponse {
	return runResponse{
		ID:         r.ID,
		Difficulty: r.Difficulty,
		Score:      r.Score,
		Frames:     r.Frames,
		StartedAt:  r.StartedAt.Format(time.RFC3339),
		EndedAt:    r.EndedAt.Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP routes /api/runs and /api/runs/{id}.
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/runs")
	id = strings.TrimPrefix(id, "/")
	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, id)
}

// list handles GET /api/runs[?limit=N], newest first.
func (h *RunsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	repo := h.store.Runs()
	runs, err := repo.List(limit)
	if err != nil {
		log.Printf("api: list runs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	total, err := repo.Count()
	if err != nil {
		log.Printf("api: count runs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to count runs")
		return
	}
	best, err := repo.Best()
	if err != nil {
		log.Printf("api: best run: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get best score")
		return
	}

	resp := listRunsResponse{
		Runs:  make([]runResponse, 0, len(runs)),
		Total: total,
		Best:  best,
	}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, toResponse(run))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/runs/{id}.
func (h *RunsHandler) get(w http.ResponseWriter, id string) {
	run, err := h.store.Runs().GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("api: get run %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(run))
}
