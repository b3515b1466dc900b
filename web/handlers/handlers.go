// Package handlers provides the HTTP API of the analysis service.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cogitolab/cogito/internal/service"
	"github.com/cogitolab/cogito/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	svc   *service.Service
	store storage.Storage
}

// New creates a new Handler. store may be nil when persistence is disabled.
func New(svc *service.Service, store storage.Storage) *Handler {
	return &Handler{
		svc:   svc,
		store: store,
	}
}

// Routes builds the service router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/debate", h.handleDebate)
	r.Post("/api/cancel", h.handleCancel)
	r.Get("/api/health", h.handleHealth)
	r.Get("/api/reports", h.handleReports)

	return r
}

type debateRequest struct {
	Topic string `json:"topic"`
}

// handleDebate runs one debate and returns the decision matrix. The
// client aborting the request cancels the debate through the request
// context.
func (h *Handler) handleDebate(w http.ResponseWriter, r *http.Request) {
	var req debateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	result := h.svc.RunDebate(r.Context(), topic)
	writeJSON(w, http.StatusOK, result)
}

// handleCancel aborts all active debates.
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	cleared := h.svc.CancelAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "cancelled",
		"cleared": cleared,
	})
}

// handleHealth reports service health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"active_debates": h.svc.ActiveCount(),
	})
}

// handleReports lists persisted reports, newest first.
func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []*storage.ReportSummary{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	summaries, err := h.store.ListReports(limit, offset)
	if err != nil {
		slog.Error("Failed to list reports", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if summaries == nil {
		summaries = []*storage.ReportSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
