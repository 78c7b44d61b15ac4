package handlers

import (
	"log/slog"
	"net/http"

	appmatches "github.com/preston-bernstein/live-scores-service/internal/app/matches"
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
)

// Restarter drops presentation state that belongs to the previous board.
type Restarter interface {
	Restart()
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	svc        *appmatches.Service
	seed       []matches.Match
	token      string
	logger     *slog.Logger
	restarters []Restarter
}

// NewAdminHandler constructs an AdminHandler that restarts the board from seed.
// Each restarter runs after the new board is in place.
func NewAdminHandler(svc *appmatches.Service, seed []matches.Match, token string, logger *slog.Logger, restarters ...Restarter) *AdminHandler {
	kept := make([]matches.Match, 0, len(seed))
	for i := range seed {
		kept = append(kept, seed[i].Clone())
	}
	return &AdminHandler{
		svc:        svc,
		seed:       kept,
		token:      token,
		logger:     logger,
		restarters: restarters,
	}
}

// ResetMatches discards the current board and starts a new one from the seed,
// the same state a fresh process starts with. Highlights and feed subscribers
// are restarted with it. Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) ResetMatches(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", middleware.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	h.svc.ReplaceMatches(h.seed)
	for _, rs := range h.restarters {
		if rs != nil {
			rs.Restart()
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "restarted",
		"count":  len(h.seed),
	}, logger)
	logging.Info(logger, "board restarted from seed", slog.Int(logging.FieldCount, len(h.seed)))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
