package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"focusd/internal/config"
	"focusd/internal/database"
	"focusd/internal/session"
	"focusd/internal/stats"
)

// Handler is the HTTP boundary of the session engine: it translates requests
// into engine commands and engine events into an SSE stream.
type Handler struct {
	config     *config.Config
	controller *session.Controller
	repo       *database.Repository
	reporter   *stats.Reporter
}

func NewHandler(cfg *config.Config, controller *session.Controller, repo *database.Repository) *Handler {
	return &Handler{
		config:     cfg,
		controller: controller,
		repo:       repo,
		reporter:   stats.New(repo),
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/session/start", h.handleStart)
	mux.HandleFunc("/api/session/stop", h.handleStop)
	mux.HandleFunc("/api/session/status", h.handleStatus)
	mux.HandleFunc("/api/activity", h.handleActivity)
	mux.HandleFunc("/api/mode", h.handleMode)
	mux.HandleFunc("/api/events", h.handleEvents)
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/history/note", h.handleNote)
	mux.HandleFunc("/api/stats", h.handleStats)
	mux.HandleFunc("/api/report", h.handleReport)

	mux.HandleFunc("/health", h.handleHealth)
}

type startRequest struct {
	DurationSeconds int    `json:"duration_seconds"`
	Mode            string `json:"mode"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	duration := req.DurationSeconds
	if duration == 0 {
		duration = int(h.config.Session.DefaultDuration.Seconds())
	}

	if err := h.controller.Start(duration, session.Mode(req.Mode)); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, map[string]string{"status": "started"})
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.controller.Stop(); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, map[string]string{"status": "stopped"})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, h.controller.Status())
}

type activityRequest struct {
	Time int64 `json:"time"` // epoch ms, optional
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req activityRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var at time.Time
	if req.Time > 0 {
		at = time.UnixMilli(req.Time)
	}
	h.controller.NotifyActivity(at)
	w.WriteHeader(http.StatusNoContent)
}

type modeRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) handleMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req modeRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	threshold, err := h.controller.SetMode(session.Mode(req.Mode))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"mode":                   req.Mode,
		"idle_threshold_seconds": int(threshold.Seconds()),
	})
}

// handleEvents streams engine broadcasts as server-sent events: update_time
// on every tick, session_complete once per session.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.controller.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.repo.Records()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch history: %v", err), http.StatusInternalServerError)
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(records) {
			records = records[:limit]
		}
	}

	respondJSON(w, records)
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) handleNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		http.Error(w, "note cannot be empty", http.StatusBadRequest)
		return
	}

	if err := h.repo.AttachNote(note); err != nil {
		http.Error(w, fmt.Sprintf("Failed to attach note: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"status": "saved"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.repo.GamificationState()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load stats: %v", err), http.StatusInternalServerError)
		return
	}

	streaks, err := h.reporter.Streaks()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute streaks: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{
		"points":         state.Points,
		"streaks":        state.Streaks,
		"achievements":   state.Achievements,
		"current_streak": streaks.Current,
		"longest_streak": streaks.Longest,
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate report: %v", err), http.StatusBadRequest)
		return
	}

	respondJSON(w, report)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// respondEngineError maps engine sentinels to HTTP statuses: validation
// failures are 400, lifecycle no-ops are 409.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidDuration), errors.Is(err, session.ErrInvalidMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrAlreadyRunning), errors.Is(err, session.ErrNotRunning):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
