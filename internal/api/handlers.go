package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/rwy-assign/internal/config"
	"github.com/yegors/rwy-assign/internal/sequencer"
	"github.com/yegors/rwy-assign/internal/storage/sqlite"
	"github.com/yegors/rwy-assign/pkg/logger"
)

// Handler holds the API request handlers
type Handler struct {
	sequencer *sequencer.Service
	storage   *sqlite.AssignmentStorage
	config    *config.Config
	logger    *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(seq *sequencer.Service, storage *sqlite.AssignmentStorage, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		sequencer: seq,
		storage:   storage,
		config:    cfg,
		logger:    log.Named("api-handler"),
	}
}

// GetAssignments returns the latest classification cycle
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"aircraft": h.sequencer.Latest(),
	})
}

// GetAssignmentHistory returns recent persisted assignments
func (h *Handler) GetAssignmentHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.GetRecent(h.historyLimit(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to query assignment history")
		h.logger.Error("Failed to query assignment history", logger.Error(err))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"assignments": records})
}

// GetAssignmentsByCallsign returns persisted assignments for one callsign
func (h *Handler) GetAssignmentsByCallsign(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")
	records, err := h.storage.GetByCallsign(callsign, h.historyLimit(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to query assignments")
		h.logger.Error("Failed to query assignments by callsign",
			logger.String("callsign", callsign), logger.Error(err))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"assignments": records})
}

// GetAssignmentsByRunway returns persisted assignments for one runway direction
func (h *Handler) GetAssignmentsByRunway(w http.ResponseWriter, r *http.Request) {
	runwayID := chi.URLParam(r, "id")
	records, err := h.storage.GetByRunway(runwayID, h.historyLimit(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to query assignments")
		h.logger.Error("Failed to query assignments by runway",
			logger.String("runway", runwayID), logger.Error(err))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"assignments": records})
}

// GetRunways returns the runway-direction table in use
func (h *Handler) GetRunways(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.sequencer.Table())
}

// GetStation returns the station configuration
func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.config.Station)
}

// GetScoringParams returns the active scoring parameters
func (h *Handler) GetScoringParams(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.sequencer.Params())
}

// GetHealth returns service health including last fetch status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	lastFetch, ok := h.sequencer.Status()

	status := "ok"
	code := http.StatusOK
	if !ok {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	h.respondJSON(w, code, map[string]interface{}{
		"status":        status,
		"last_fetch":    lastFetch.Format(time.RFC3339),
		"last_fetch_ok": ok,
	})
}

func (h *Handler) historyLimit(r *http.Request) int {
	limit := h.config.Storage.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed < limit {
			limit = parsed
		}
	}
	return limit
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
