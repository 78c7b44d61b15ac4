package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/gorilla/mux"

	appmatches "github.com/preston-bernstein/live-scores-service/internal/app/matches"
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/scheduler"
)

// Highlights reports which scores changed recently.
type Highlights interface {
	Active(matchID int, side matches.Side) bool
}

// HighlightView flags the sides whose score changed recently.
type HighlightView struct {
	A bool `json:"a"`
	B bool `json:"b"`
}

// MatchView is a match plus its current highlight state.
type MatchView struct {
	matches.Match
	Highlight HighlightView `json:"highlight"`
}

// ListResponse is the body of GET /matches.
type ListResponse struct {
	Count   int         `json:"count"`
	Matches []MatchView `json:"matches"`
}

// Handler wires HTTP routes to the match service.
type Handler struct {
	svc        *appmatches.Service
	highlights Highlights
	logger     *slog.Logger
	statusFn   func() scheduler.Status
}

// NewHandler constructs a Handler. highlights and statusFn may be nil.
func NewHandler(svc *appmatches.Service, highlights Highlights, logger *slog.Logger, statusFn func() scheduler.Status) *Handler {
	return &Handler{
		svc:        svc,
		highlights: highlights,
		logger:     logger,
		statusFn:   statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the score scheduler is running and healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"status":    "ready",
			"runs":      status.Runs,
			"nextRunAt": status.NextRunAt,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Matches lists matches, optionally filtered by sport and status.
func (h *Handler) Matches(w nethttp.ResponseWriter, r *nethttp.Request) {
	query := r.URL.Query()

	var (
		sport  matches.Sport
		status matches.Status
		err    error
	)
	if raw := query.Get("sport"); raw != "" {
		if sport, err = matches.ParseSport(raw); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid sport", h.logger)
			return
		}
	}
	if raw := query.Get("status"); raw != "" {
		if status, err = matches.ParseStatus(raw); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid status", h.logger)
			return
		}
	}

	list := h.svc.Filter(sport, status)
	views := make([]MatchView, 0, len(list))
	for _, m := range list {
		views = append(views, h.view(m))
	}

	logging.Debug(loggerFromContext(r, h.logger), "served matches", logging.FieldCount, len(views))
	writeJSON(w, nethttp.StatusOK, ListResponse{Count: len(views), Matches: views}, h.logger)
}

// MatchByID returns a specific match if present.
func (h *Handler) MatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}

	m, err := h.svc.MatchByID(id)
	if errors.Is(err, matches.ErrMatchNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load match", h.logger)
		return
	}

	writeJSON(w, nethttp.StatusOK, h.view(m), h.logger)
}

func (h *Handler) view(m matches.Match) MatchView {
	v := MatchView{Match: m}
	if h.highlights != nil {
		v.Highlight = HighlightView{
			A: h.highlights.Active(m.ID, matches.SideA),
			B: h.highlights.Active(m.ID, matches.SideB),
		}
	}
	return v
}
